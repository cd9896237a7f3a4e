package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/middleware"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// ListaHandler listas de útiles escolares
type ListaHandler struct {
	listaSvc service.ListaService
}

// NewListaHandler crea el ListaHandler
func NewListaHandler(listaSvc service.ListaService) *ListaHandler {
	return &ListaHandler{listaSvc: listaSvc}
}

// Crear alta de una lista de útiles por el docente autenticado
// POST /api/listas
func (h *ListaHandler) Crear(c *gin.Context) {
	docente, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.CrearListaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de la lista incompletos o inválidos")
		return
	}

	lista, err := h.listaSvc.Crear(c.Request.Context(), docente, &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.Created(c, lista)
}

// Obtener detalle de una lista
// GET /api/listas/:id
func (h *ListaHandler) Obtener(c *gin.Context) {
	caller, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	lista, err := h.listaSvc.Obtener(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OK(c, lista)
}

// Actualizar edición de una lista por su docente propietario
// PUT /api/listas/:id
func (h *ListaHandler) Actualizar(c *gin.Context) {
	caller, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.ActualizarListaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de la lista inválidos")
		return
	}

	lista, err := h.listaSvc.Actualizar(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OK(c, lista)
}

// Desactivar baja lógica de una lista
// DELETE /api/listas/:id
func (h *ListaHandler) Desactivar(c *gin.Context) {
	caller, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	if err := h.listaSvc.Desactivar(c.Request.Context(), caller, c.Param("id")); err != nil {
		h.responderError(c, err)
		return
	}

	response.OKMsg(c, "Lista desactivada", nil)
}

// Listar listas con filtros. El docente solo ve las propias.
// GET /api/listas
func (h *ListaHandler) Listar(c *gin.Context) {
	caller, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var q dto.ListasQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Filtros de búsqueda inválidos")
		return
	}

	listas, total, err := h.listaSvc.Listar(c.Request.Context(), caller, q)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OKPage(c, listas, total, q.Page, q.Size())
}

// MisListas listas del docente autenticado
// GET /api/listas/mis-listas
func (h *ListaHandler) MisListas(c *gin.Context) {
	docente, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	listas, err := h.listaSvc.MisListas(c.Request.Context(), docente.UsuarioID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, listas)
}

// VistaPadre listas agrupadas por estudiante según el nivel de cada
// hijo activo del padre autenticado
// GET /api/listas/por-estudiante
func (h *ListaHandler) VistaPadre(c *gin.Context) {
	padre, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	vistas, err := h.listaSvc.VistaPadre(c.Request.Context(), padre.UsuarioID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, vistas)
}

func (h *ListaHandler) responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrListaNoEncontrada):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAccesoDenegado):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrListaSinMateriales),
		errors.Is(err, service.ErrMaterialNoPermitido),
		errors.Is(err, service.ErrMaterialNoEncontrado),
		errors.Is(err, service.ErrCantidadInvalida),
		errors.Is(err, service.ErrFechaLimiteInvalida),
		errors.Is(err, service.ErrNivelInvalido):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
