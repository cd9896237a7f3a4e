package dto

// CrearEstudianteRequest cuerpo de POST /api/estudiantes (el padre autenticado
// agrega un estudiante a su núcleo familiar)
type CrearEstudianteRequest struct {
	Nombre          string  `json:"nombre" binding:"required,min=2,max=150"`
	Cedula          string  `json:"cedula" binding:"required"`
	Nivel           string  `json:"nivel" binding:"required"`
	Grado           string  `json:"grado" binding:"required"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	CentroID        *string `json:"centroEducativo" binding:"omitempty,uuid"`
	Observaciones   *string `json:"observaciones"`
}

// ActualizarEstudianteRequest cuerpo de PUT /api/estudiantes/:id.
// La cédula no se corrige por esta vía: identifica al estudiante.
type ActualizarEstudianteRequest struct {
	Nombre          *string `json:"nombre" binding:"omitempty,min=2,max=150"`
	Nivel           *string `json:"nivel"`
	Grado           *string `json:"grado"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	CentroID        *string `json:"centroEducativo" binding:"omitempty,uuid"`
	Estado          *string `json:"estado" binding:"omitempty,oneof=activo inactivo transferido"`
	Observaciones   *string `json:"observaciones"`
}

// EstudiantesQuery filtros de GET /api/estudiantes
type EstudiantesQuery struct {
	PageQuery
	Nivel    string `form:"nivel"`
	Grado    string `form:"grado"`
	CentroID string `form:"centroEducativo" binding:"omitempty,uuid"`
	PadreID  string `form:"padre" binding:"omitempty,uuid"`
}
