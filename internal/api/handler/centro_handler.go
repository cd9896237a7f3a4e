package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/middleware"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// CentroHandler gestión de centros educativos
type CentroHandler struct {
	centroSvc service.CentroService
}

// NewCentroHandler crea el CentroHandler
func NewCentroHandler(centroSvc service.CentroService) *CentroHandler {
	return &CentroHandler{centroSvc: centroSvc}
}

// Crear alta de un centro educativo
// POST /api/centros
func (h *CentroHandler) Crear(c *gin.Context) {
	creador, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.CrearCentroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos del centro incompletos o inválidos")
		return
	}

	centro, err := h.centroSvc.Crear(c.Request.Context(), creador, &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.Created(c, centro)
}

// Obtener detalle de un centro
// GET /api/centros/:id
func (h *CentroHandler) Obtener(c *gin.Context) {
	centro, err := h.centroSvc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responderError(c, err)
		return
	}
	response.OK(c, centro)
}

// Actualizar edición de un centro
// PUT /api/centros/:id
func (h *CentroHandler) Actualizar(c *gin.Context) {
	editor, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.ActualizarCentroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos del centro inválidos")
		return
	}

	centro, err := h.centroSvc.Actualizar(c.Request.Context(), editor, c.Param("id"), &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OK(c, centro)
}

// Desactivar baja lógica de un centro
// DELETE /api/centros/:id
func (h *CentroHandler) Desactivar(c *gin.Context) {
	editor, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	if err := h.centroSvc.Desactivar(c.Request.Context(), editor, c.Param("id")); err != nil {
		h.responderError(c, err)
		return
	}

	response.OKMsg(c, "Centro educativo desactivado", nil)
}

// Listar centros con filtros y paginación
// GET /api/centros
func (h *CentroHandler) Listar(c *gin.Context) {
	var q dto.CentrosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Filtros de búsqueda inválidos")
		return
	}

	centros, total, err := h.centroSvc.Listar(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, centros, total, q.Page, q.Size())
}

// ListaPublica centros activos para el formulario de autorregistro,
// sin autenticación y con campos reducidos
// GET /api/centros/publico
func (h *CentroHandler) ListaPublica(c *gin.Context) {
	centros, err := h.centroSvc.ListaPublica(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, centros)
}

func (h *CentroHandler) responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCentroNoEncontrado):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCodigoMEPRegistrado),
		errors.Is(err, service.ErrProvinciaInvalida):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
