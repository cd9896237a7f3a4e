package dto

import "github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"

// CrearListaRequest cuerpo de POST /api/listas. El nivel puede llegar como
// "nivel" o "nivelEducativo" según la versión del cliente.
type CrearListaRequest struct {
	Nombre         string               `json:"nombre" binding:"required,min=3,max=200"`
	Nivel          string               `json:"nivel"`
	NivelEducativo string               `json:"nivelEducativo"`
	Materiales     []model.ItemMaterial `json:"materiales" binding:"required,min=1,dive"`
	FechaLimite    *string              `json:"fechaLimite"`
}

// NivelNormalizado nivel educativo normalizado entre alias
func (r CrearListaRequest) NivelNormalizado() string {
	return primeroNoVacio(r.Nivel, r.NivelEducativo)
}

// ActualizarListaRequest cuerpo de PUT /api/listas/:id. Cuando Materiales no
// es nil reemplaza el contenido completo de la lista.
type ActualizarListaRequest struct {
	Nombre         *string              `json:"nombre" binding:"omitempty,min=3,max=200"`
	Nivel          *string              `json:"nivel"`
	NivelEducativo *string              `json:"nivelEducativo"`
	Materiales     []model.ItemMaterial `json:"materiales" binding:"omitempty,min=1,dive"`
	FechaLimite    *string              `json:"fechaLimite"`
	Activo         *bool                `json:"activo"`
}

// NivelNormalizado nivel educativo normalizado entre alias; nil si no viene
func (r ActualizarListaRequest) NivelNormalizado() *string {
	if r.Nivel != nil && *r.Nivel != "" {
		return r.Nivel
	}
	if r.NivelEducativo != nil && *r.NivelEducativo != "" {
		return r.NivelEducativo
	}
	return nil
}

// ListasQuery filtros de GET /api/listas
type ListasQuery struct {
	PageQuery
	Nivel    string `form:"nivel"`
	CentroID string `form:"centroEducativo" binding:"omitempty,uuid"`
	Docente  string `form:"docente" binding:"omitempty,uuid"`
}
