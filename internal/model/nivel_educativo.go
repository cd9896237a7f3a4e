package model

// AmbitoGeneral ámbito compartido entre todos los centros
const AmbitoGeneral = "General"

// NivelEducativo nivel con ámbito de centro — tabla niveles_educativos
// Unicidad: (nombre, ambito). El ámbito es el id del centro o "General".
type NivelEducativo struct {
	NivelID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	Nombre      string  `gorm:"type:varchar(100);not null"                     json:"nombre"`
	Descripcion *string `gorm:"type:text"                                      json:"descripcion,omitempty"`
	Ambito      string  `gorm:"type:varchar(50);not null;default:'General'"    json:"centroEducativo"`
	Activo      bool    `gorm:"not null;default:true"                          json:"activo"`
	BaseModel
}

// TableName nombre de la tabla
func (NivelEducativo) TableName() string { return "niveles_educativos" }
