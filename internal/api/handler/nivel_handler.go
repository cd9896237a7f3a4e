package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/middleware"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// NivelHandler niveles educativos por ámbito de centro
type NivelHandler struct {
	nivelSvc service.NivelService
}

// NewNivelHandler crea el NivelHandler
func NewNivelHandler(nivelSvc service.NivelService) *NivelHandler {
	return &NivelHandler{nivelSvc: nivelSvc}
}

// Crear alta de un nivel en el ámbito del administrador
// POST /api/niveles
func (h *NivelHandler) Crear(c *gin.Context) {
	admin, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.CrearNivelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos del nivel incompletos o inválidos")
		return
	}

	nivel, err := h.nivelSvc.Crear(c.Request.Context(), admin, &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.Created(c, nivel)
}

// Actualizar edición de un nivel propio
// PUT /api/niveles/:id
func (h *NivelHandler) Actualizar(c *gin.Context) {
	admin, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.ActualizarNivelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos del nivel inválidos")
		return
	}

	nivel, err := h.nivelSvc.Actualizar(c.Request.Context(), admin, c.Param("id"), &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OK(c, nivel)
}

// Desactivar baja lógica de un nivel propio
// DELETE /api/niveles/:id
func (h *NivelHandler) Desactivar(c *gin.Context) {
	admin, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	if err := h.nivelSvc.Desactivar(c.Request.Context(), admin, c.Param("id")); err != nil {
		h.responderError(c, err)
		return
	}

	response.OKMsg(c, "Nivel desactivado", nil)
}

// Listar niveles visibles para el usuario: los generales más los del
// centro al que pertenece
// GET /api/niveles
func (h *NivelHandler) Listar(c *gin.Context) {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	niveles, err := h.nivelSvc.ListarVisibles(c.Request.Context(), usuario)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, niveles)
}

func (h *NivelHandler) responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNivelNoEncontrado):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNivelAjeno),
		errors.Is(err, service.ErrNivelGeneral):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNivelDuplicado),
		errors.Is(err, service.ErrCentroRequerido):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
