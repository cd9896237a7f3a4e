package dto

import "github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"

// ActualizarConfiguracionRequest cuerpo de PUT /api/configuracion.
// Campos en nil conservan el valor vigente.
type ActualizarConfiguracionRequest struct {
	NombreSistema  *string               `json:"nombreSistema" binding:"omitempty,min=3,max=150"`
	MensajeGlobal  *string               `json:"mensajeGlobal" binding:"omitempty,max=500"`
	LogoURL        *string               `json:"logoURL" binding:"omitempty,url"`
	TextosNoticias *model.TextosNoticias `json:"textosNoticias"`
}
