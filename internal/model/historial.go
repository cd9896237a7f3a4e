package model

import "time"

// Historial entrada de bitácora — tabla historial.
// Append-only: la aplicación nunca actualiza ni borra estas filas.
type Historial struct {
	HistorialID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	UsuarioID    string    `gorm:"type:uuid;not null"                             json:"usuario"`
	Rol          string    `gorm:"type:varchar(20);not null"                      json:"rol"`
	Accion       string    `gorm:"type:varchar(200);not null"                     json:"accion"`
	Entidad      *string   `gorm:"type:varchar(50)"                               json:"entidad,omitempty"`
	ReferenciaID *string   `gorm:"type:uuid;column:referencia_id"                 json:"referenciaId,omitempty"`
	Detalle      *string   `gorm:"type:text"                                      json:"detalle,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"fecha"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID;references:UsuarioID" json:"usuarioDetalle,omitempty"`
}

// TableName nombre de la tabla
func (Historial) TableName() string { return "historial" }
