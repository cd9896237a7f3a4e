package dto

// ReporteQuery filtros comunes de los reportes agregados
type ReporteQuery struct {
	CentroID string `form:"centroEducativo" binding:"omitempty,uuid"`
	Nivel    string `form:"nivel"`
	Formato  string `form:"formato" binding:"omitempty,oneof=json excel pdf"`
}

// ConteoPorClave fila de un reporte agregado (conteos por nivel, por docente
// o por categoría)
type ConteoPorClave struct {
	Clave  string `json:"clave"`
	Nombre string `json:"nombre"`
	Total  int64  `json:"total"`
}

// ResumenGeneral totales globales del panel del coordinador
type ResumenGeneral struct {
	Centros     int64 `json:"centros"`
	Usuarios    int64 `json:"usuarios"`
	Estudiantes int64 `json:"estudiantes"`
	Listas      int64 `json:"listas"`
	Materiales  int64 `json:"materiales"`
}
