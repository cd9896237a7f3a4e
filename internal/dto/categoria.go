package dto

// CrearCategoriaRequest cuerpo de POST /api/categorias
type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre" binding:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

// ActualizarCategoriaRequest cuerpo de PUT /api/categorias/:id
type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre" binding:"omitempty,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
	Activo      *bool   `json:"activo"`
}
