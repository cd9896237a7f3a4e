package dto

// CrearCentroRequest cuerpo de POST /api/centros
type CrearCentroRequest struct {
	Nombre              string   `json:"nombre" binding:"required,min=3,max=200"`
	CodigoMEP           *string  `json:"codigoMEP" binding:"omitempty,max=20"`
	Provincia           string   `json:"provincia" binding:"required"`
	Canton              string   `json:"canton" binding:"required,max=100"`
	Distrito            string   `json:"distrito" binding:"required,max=100"`
	ResponsableNombre   string   `json:"responsableNombre" binding:"required,max=150"`
	ResponsableTelefono *string  `json:"responsableTelefono" binding:"omitempty,len=8,numeric"`
	ResponsableEmail    string   `json:"responsableEmail" binding:"required,email"`
	Ubicacion           string   `json:"ubicacion" binding:"required,oneof=rural urbano"`
	TipoInstitucion     string   `json:"tipoInstitucion" binding:"required,oneof=unidocente multidocente especial privado"`
	NivelesOfrecidos    []string `json:"nivelesOfrecidos" binding:"omitempty,dive,oneof=preescolar primaria secundaria técnico nocturno IB"`
}

// ActualizarCentroRequest cuerpo de PUT /api/centros/:id
type ActualizarCentroRequest struct {
	Nombre              *string  `json:"nombre" binding:"omitempty,min=3,max=200"`
	CodigoMEP           *string  `json:"codigoMEP" binding:"omitempty,max=20"`
	Provincia           *string  `json:"provincia"`
	Canton              *string  `json:"canton" binding:"omitempty,max=100"`
	Distrito            *string  `json:"distrito" binding:"omitempty,max=100"`
	ResponsableNombre   *string  `json:"responsableNombre" binding:"omitempty,max=150"`
	ResponsableTelefono *string  `json:"responsableTelefono" binding:"omitempty,len=8,numeric"`
	ResponsableEmail    *string  `json:"responsableEmail" binding:"omitempty,email"`
	Ubicacion           *string  `json:"ubicacion" binding:"omitempty,oneof=rural urbano"`
	TipoInstitucion     *string  `json:"tipoInstitucion" binding:"omitempty,oneof=unidocente multidocente especial privado"`
	NivelesOfrecidos    []string `json:"nivelesOfrecidos" binding:"omitempty,dive,oneof=preescolar primaria secundaria técnico nocturno IB"`
	Estado              *string  `json:"estado" binding:"omitempty,oneof=activo inactivo"`
}

// CentrosQuery filtros de GET /api/centros
type CentrosQuery struct {
	PageQuery
	Provincia string `form:"provincia"`
	Estado    string `form:"estado" binding:"omitempty,oneof=activo inactivo"`
}
