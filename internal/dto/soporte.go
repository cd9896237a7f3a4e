package dto

// CrearSoporteRequest cuerpo de POST /api/soporte
type CrearSoporteRequest struct {
	Tipo    string `json:"tipo" binding:"required,oneof=sugerencia error consulta"`
	Mensaje string `json:"mensaje" binding:"required,min=5,max=2000"`
}

// ResponderSoporteRequest cuerpo de PUT /api/soporte/:id (solo coordinador)
type ResponderSoporteRequest struct {
	Estado    *string `json:"estado" binding:"omitempty,oneof=pendiente 'en revisión' resuelto"`
	Respuesta *string `json:"respuesta" binding:"omitempty,max=2000"`
}

// SoporteQuery filtros de GET /api/soporte
type SoporteQuery struct {
	PageQuery
	Tipo   string `form:"tipo" binding:"omitempty,oneof=sugerencia error consulta"`
	Estado string `form:"estado" binding:"omitempty,oneof=pendiente 'en revisión' resuelto"`
}
