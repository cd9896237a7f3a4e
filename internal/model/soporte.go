package model

// Tipos y estados de mensajes de soporte
var (
	TiposSoporte   = []string{"sugerencia", "error", "consulta"}
	EstadosSoporte = []string{"pendiente", "en revisión", "resuelto"}
)

// TipoSoporteValido indica si el tipo pertenece a la enumeración.
func TipoSoporteValido(t string) bool {
	for _, v := range TiposSoporte {
		if v == t {
			return true
		}
	}
	return false
}

// EstadoSoporteValido indica si el estado pertenece a la enumeración.
func EstadoSoporteValido(e string) bool {
	for _, v := range EstadosSoporte {
		if v == e {
			return true
		}
	}
	return false
}

// Soporte mensaje de soporte de un usuario — tabla soporte
type Soporte struct {
	SoporteID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	UsuarioID      string  `gorm:"type:uuid;not null"                             json:"usuario"`
	Tipo           string  `gorm:"type:varchar(12);not null"                      json:"tipo"`
	Mensaje        string  `gorm:"type:text;not null"                             json:"mensaje"`
	Estado         string  `gorm:"type:varchar(12);not null;default:'pendiente'"  json:"estado"`
	Respuesta      *string `gorm:"type:text"                                      json:"respuesta,omitempty"`
	BaseModel

	Usuario *Usuario `gorm:"foreignKey:UsuarioID;references:UsuarioID" json:"usuarioDetalle,omitempty"`
}

// TableName nombre de la tabla
func (Soporte) TableName() string { return "soporte" }
