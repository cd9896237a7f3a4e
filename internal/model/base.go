package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// ── Tipo TEXT[] de PostgreSQL ──

// StringArray corresponde a TEXT[]; implementa Scanner/Valuer para GORM.
type StringArray []string

// Scan interpreta el texto {a,b,c} devuelto por PostgreSQL.
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("StringArray.Scan: tipo no soportado %T", src)
	}
	s = strings.Trim(s, "{}")
	if s == "" {
		*a = StringArray{}
		return nil
	}
	parts := strings.Split(s, ",")
	arr := make(StringArray, 0, len(parts))
	for _, p := range parts {
		arr = append(arr, strings.Trim(strings.TrimSpace(p), `"`))
	}
	*a = arr
	return nil
}

// Value serializa como {a,b,c}.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	parts := make([]string, len(a))
	for i, s := range a {
		parts[i] = `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// Contains indica si el arreglo contiene el valor.
func (a StringArray) Contains(v string) bool {
	for _, s := range a {
		if s == v {
			return true
		}
	}
	return false
}

// BaseModel campos de auditoría comunes a todas las entidades
type BaseModel struct {
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"fechaCreacion"`
	CreadoPor       *string   `gorm:"type:uuid"                          json:"creadoPor,omitempty"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"fechaActualizacion"`
	ActualizadoPor  *string   `gorm:"type:uuid;column:actualizado_por"   json:"actualizadoPor,omitempty"`
}
