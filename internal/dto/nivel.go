package dto

// CrearNivelRequest cuerpo de POST /api/niveles. El ámbito no viene en el
// cuerpo: lo fija el servicio según el centro del administrador que crea.
type CrearNivelRequest struct {
	Nombre      string  `json:"nombre" binding:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

// ActualizarNivelRequest cuerpo de PUT /api/niveles/:id
type ActualizarNivelRequest struct {
	Nombre      *string `json:"nombre" binding:"omitempty,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
	Activo      *bool   `json:"activo"`
}
