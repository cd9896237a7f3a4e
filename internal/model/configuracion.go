package model

import (
	"time"

	"gorm.io/datatypes"
)

// TextosNoticias textos configurables de la sección de noticias
type TextosNoticias struct {
	TituloNoticias string            `json:"tituloNoticias"`
	Categorias     map[string]string `json:"categorias"`
}

// TextosNoticiasPorDefecto valores iniciales de la sección de noticias.
func TextosNoticiasPorDefecto() TextosNoticias {
	return TextosNoticias{
		TituloNoticias: "Noticias y Novedades",
		Categorias: map[string]string{
			"importante":    "Importante",
			"actualizacion": "Actualización",
			"mejora":        "Mejora",
			"formacion":     "Formación",
			"soporte":       "Soporte",
		},
	}
}

// Configuracion registro único de configuración global — tabla configuracion.
// El discriminador `singleton` con restricción de unicidad garantiza un solo
// registro aunque dos lecturas iniciales intenten crearlo a la vez.
type Configuracion struct {
	Singleton      bool                                  `gorm:"primaryKey;default:true"                    json:"-"`
	NombreSistema  string                                `gorm:"type:varchar(150);not null;default:'Sistema de útiles escolares'" json:"nombreSistema"`
	MensajeGlobal  *string                               `gorm:"type:text"                                  json:"mensajeGlobal,omitempty"`
	LogoURL        *string                               `gorm:"type:text;column:logo_url"                  json:"logoURL,omitempty"`
	TextosNoticias datatypes.JSONType[TextosNoticias]    `gorm:"type:jsonb;column:textos_noticias"          json:"textosNoticias"`
	CreatedAt      time.Time                             `gorm:"not null;default:CURRENT_TIMESTAMP"         json:"fechaCreacion"`
	UpdatedAt      time.Time                             `gorm:"not null;default:CURRENT_TIMESTAMP"         json:"fechaActualizacion"`
	ActualizadoPor *string                               `gorm:"type:uuid;column:actualizado_por"           json:"actualizadoPor,omitempty"`
}

// TableName nombre de la tabla
func (Configuracion) TableName() string { return "configuracion" }
