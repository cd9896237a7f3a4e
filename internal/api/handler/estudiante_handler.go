package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/middleware"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// EstudianteHandler gestión de estudiantes asociados a padres
type EstudianteHandler struct {
	estudianteSvc service.EstudianteService
}

// NewEstudianteHandler crea el EstudianteHandler
func NewEstudianteHandler(estudianteSvc service.EstudianteService) *EstudianteHandler {
	return &EstudianteHandler{estudianteSvc: estudianteSvc}
}

// Crear registra un estudiante adicional del padre autenticado
// POST /api/estudiantes
func (h *EstudianteHandler) Crear(c *gin.Context) {
	padre, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.CrearEstudianteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos del estudiante incompletos o inválidos")
		return
	}

	estudiante, err := h.estudianteSvc.Crear(c.Request.Context(), padre, &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.Created(c, estudiante)
}

// MisEstudiantes estudiantes del padre autenticado
// GET /api/estudiantes/mis-estudiantes
func (h *EstudianteHandler) MisEstudiantes(c *gin.Context) {
	padre, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	estudiantes, err := h.estudianteSvc.MisEstudiantes(c.Request.Context(), padre.UsuarioID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, estudiantes)
}

// Obtener detalle de un estudiante
// GET /api/estudiantes/:id
func (h *EstudianteHandler) Obtener(c *gin.Context) {
	caller, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	estudiante, err := h.estudianteSvc.Obtener(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OK(c, estudiante)
}

// Actualizar edición de un estudiante
// PUT /api/estudiantes/:id
func (h *EstudianteHandler) Actualizar(c *gin.Context) {
	caller, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.ActualizarEstudianteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos del estudiante inválidos")
		return
	}

	estudiante, err := h.estudianteSvc.Actualizar(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OK(c, estudiante)
}

// Desactivar baja lógica de un estudiante
// DELETE /api/estudiantes/:id
func (h *EstudianteHandler) Desactivar(c *gin.Context) {
	caller, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	if err := h.estudianteSvc.Desactivar(c.Request.Context(), caller, c.Param("id")); err != nil {
		h.responderError(c, err)
		return
	}

	response.OKMsg(c, "Estudiante desactivado", nil)
}

// Listar estudiantes con filtros. El padre solo ve los propios.
// GET /api/estudiantes
func (h *EstudianteHandler) Listar(c *gin.Context) {
	caller, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var q dto.EstudiantesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Filtros de búsqueda inválidos")
		return
	}

	estudiantes, total, err := h.estudianteSvc.Listar(c.Request.Context(), caller, q)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OKPage(c, estudiantes, total, q.Page, q.Size())
}

func (h *EstudianteHandler) responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEstudianteNoEncontrado):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAccesoDenegado):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrCedulaRegistrada),
		errors.Is(err, service.ErrCedulaInvalida),
		errors.Is(err, service.ErrNivelInvalido),
		errors.Is(err, service.ErrGradoInvalido),
		errors.Is(err, service.ErrFechaNacimientoInvalida):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
