package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ItemMaterial par (material, cantidad) dentro de una lista
type ItemMaterial struct {
	MaterialID string `json:"materialId"`
	Cantidad   int    `json:"cantidad"`
}

// ItemsMaterial columna JSONB con los materiales de la lista
type ItemsMaterial []ItemMaterial

// Scan deserializa el JSONB.
func (m *ItemsMaterial) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("ItemsMaterial.Scan: tipo no soportado %T", src)
	}
	return json.Unmarshal(b, m)
}

// Value serializa a JSONB.
func (m ItemsMaterial) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// ListaUtiles lista de útiles creada por un docente — tabla listas_utiles
type ListaUtiles struct {
	ListaID        string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	Nombre         string        `gorm:"type:varchar(200);not null"                     json:"nombre"`
	NivelEducativo string        `gorm:"type:varchar(100);not null;column:nivel_educativo" json:"nivelEducativo"`
	Materiales     ItemsMaterial `gorm:"type:jsonb;not null"                            json:"materiales"`
	CreadoPorID    string        `gorm:"type:uuid;not null;column:creado_por"           json:"creadoPor"`
	CentroID       *string       `gorm:"type:uuid"                                      json:"centroEducativo,omitempty"`
	FechaLimite    *time.Time    `gorm:"column:fecha_limite"                            json:"fechaLimite,omitempty"`
	Activo         bool          `gorm:"not null;default:true"                          json:"activo"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"fechaCreacion"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"fechaActualizacion"`
	ActualizadoPor *string       `gorm:"type:uuid;column:actualizado_por"               json:"-"`

	Docente *Usuario         `gorm:"foreignKey:CreadoPorID;references:UsuarioID" json:"docente,omitempty"`
	Centro  *CentroEducativo `gorm:"foreignKey:CentroID;references:CentroID"     json:"centro,omitempty"`
}

// TableName nombre de la tabla
func (ListaUtiles) TableName() string { return "listas_utiles" }
