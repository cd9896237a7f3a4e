// Package dto define los cuerpos de petición y respuesta de la API.
// Los structs de petición llevan etiquetas binding para la validación de gin;
// la normalización de alias heredados del cliente se resuelve aquí para que
// los servicios reciban un solo nombre canónico por campo.
package dto

// PageQuery parámetros comunes de paginación y filtro
type PageQuery struct {
	Page   int    `form:"page,default=1"  binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Buscar string `form:"buscar" binding:"omitempty,max=200"`
}

// Offset desplazamiento para la consulta paginada
func (q PageQuery) Offset() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * q.Size()
}

// Size tamaño de página acotado
func (q PageQuery) Size() int {
	if q.Limit < 1 {
		return 20
	}
	if q.Limit > 100 {
		return 100
	}
	return q.Limit
}

// primeroNoVacio devuelve el primer valor no vacío; soporte para alias
// heredados donde el mismo campo llega con distintos nombres según la
// versión del cliente.
func primeroNoVacio(valores ...string) string {
	for _, v := range valores {
		if v != "" {
			return v
		}
	}
	return ""
}
