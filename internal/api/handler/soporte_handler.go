package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/middleware"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// SoporteHandler mensajes de soporte y su atención
type SoporteHandler struct {
	soporteSvc service.SoporteService
}

// NewSoporteHandler crea el SoporteHandler
func NewSoporteHandler(soporteSvc service.SoporteService) *SoporteHandler {
	return &SoporteHandler{soporteSvc: soporteSvc}
}

// Crear envía un mensaje de soporte en nombre del usuario autenticado
// POST /api/soporte
func (h *SoporteHandler) Crear(c *gin.Context) {
	autor, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.CrearSoporteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "El tipo y el mensaje son obligatorios")
		return
	}

	mensaje, err := h.soporteSvc.Crear(c.Request.Context(), autor, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, mensaje)
}

// Responder registra la respuesta del coordinador y el cambio de estado
// PUT /api/soporte/:id
func (h *SoporteHandler) Responder(c *gin.Context) {
	coordinador, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.ResponderSoporteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de la respuesta inválidos")
		return
	}

	mensaje, err := h.soporteSvc.Responder(c.Request.Context(), coordinador, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrSoporteNoEncontrado) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, mensaje)
}

// Listar mensajes de soporte con filtros y paginación
// GET /api/soporte
func (h *SoporteHandler) Listar(c *gin.Context) {
	var q dto.SoporteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Filtros de búsqueda inválidos")
		return
	}

	mensajes, total, err := h.soporteSvc.Listar(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, mensajes, total, q.Page, q.Size())
}

// MisMensajes mensajes enviados por el usuario autenticado
// GET /api/soporte/mis-mensajes
func (h *SoporteHandler) MisMensajes(c *gin.Context) {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	mensajes, err := h.soporteSvc.MisMensajes(c.Request.Context(), usuario.UsuarioID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, mensajes)
}
