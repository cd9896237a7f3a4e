package dto

// CrearMaterialRequest cuerpo de POST /api/materiales
type CrearMaterialRequest struct {
	Nombre                 string  `json:"nombre" binding:"required,min=2,max=150"`
	CategoriaID            string  `json:"categoria" binding:"required,uuid"`
	Descripcion            *string `json:"descripcion"`
	DisponibleParaDocentes *bool   `json:"disponibleParaDocentes"`
}

// ActualizarMaterialRequest cuerpo de PUT /api/materiales/:id
type ActualizarMaterialRequest struct {
	Nombre                 *string `json:"nombre" binding:"omitempty,min=2,max=150"`
	CategoriaID            *string `json:"categoria" binding:"omitempty,uuid"`
	Descripcion            *string `json:"descripcion"`
	Activo                 *bool   `json:"activo"`
	DisponibleParaDocentes *bool   `json:"disponibleParaDocentes"`
}

// AsignarCentrosRequest cuerpo de PUT /api/materiales/:id/centros,
// reemplaza el conjunto de centros a los que el material está asignado
type AsignarCentrosRequest struct {
	Centros []string `json:"centros" binding:"required,dive,uuid"`
}

// MaterialesQuery filtros de GET /api/materiales
type MaterialesQuery struct {
	PageQuery
	CategoriaID string `form:"categoria" binding:"omitempty,uuid"`
	CentroID    string `form:"centroEducativo" binding:"omitempty,uuid"`
}
