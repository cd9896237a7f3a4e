package model

// Provincias de Costa Rica
var Provincias = []string{
	"San José", "Alajuela", "Cartago", "Heredia",
	"Guanacaste", "Puntarenas", "Limón",
}

// Etiquetas de centro
var (
	UbicacionesCentro       = []string{"rural", "urbano"}
	TiposInstitucion        = []string{"unidocente", "multidocente", "especial", "privado"}
	NivelesOfrecidosCentro  = []string{"preescolar", "primaria", "secundaria", "técnico", "nocturno", "IB"}
)

// ProvinciaValida indica si la provincia pertenece a la enumeración.
func ProvinciaValida(p string) bool {
	for _, v := range Provincias {
		if v == p {
			return true
		}
	}
	return false
}

// CentroEducativo institución educativa — tabla centros_educativos
type CentroEducativo struct {
	CentroID            string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	Nombre              string      `gorm:"type:varchar(200);not null"                     json:"nombre"`
	CodigoMEP           *string     `gorm:"type:varchar(20);uniqueIndex;column:codigo_mep" json:"codigoMEP,omitempty"`
	Provincia           string      `gorm:"type:varchar(20);not null"                      json:"provincia"`
	Canton              string      `gorm:"type:varchar(100);not null"                     json:"canton"`
	Distrito            string      `gorm:"type:varchar(100);not null"                     json:"distrito"`
	ResponsableNombre   string      `gorm:"type:varchar(150);not null"                     json:"responsableNombre"`
	ResponsableTelefono *string     `gorm:"type:varchar(8)"                                json:"responsableTelefono,omitempty"`
	ResponsableEmail    string      `gorm:"type:varchar(255);not null"                     json:"responsableEmail"`
	Ubicacion           string      `gorm:"type:varchar(10);not null"                      json:"ubicacion"`
	TipoInstitucion     string      `gorm:"type:varchar(20);not null"                      json:"tipoInstitucion"`
	NivelesOfrecidos    StringArray `gorm:"type:text[];column:niveles_ofrecidos"           json:"nivelesEducativos"`
	Estado              string      `gorm:"type:varchar(10);not null;default:'activo'"     json:"estado"`
	BaseModel
}

// TableName nombre de la tabla
func (CentroEducativo) TableName() string { return "centros_educativos" }

// DireccionCompleta distrito, cantón, provincia.
func (c *CentroEducativo) DireccionCompleta() string {
	return c.Distrito + ", " + c.Canton + ", " + c.Provincia
}
