package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/middleware"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// MaterialHandler catálogo de materiales y su asignación a centros
type MaterialHandler struct {
	materialSvc service.MaterialService
}

// NewMaterialHandler crea el MaterialHandler
func NewMaterialHandler(materialSvc service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialSvc: materialSvc}
}

// Crear alta de un material
// POST /api/materiales
func (h *MaterialHandler) Crear(c *gin.Context) {
	creador, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.CrearMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos del material incompletos o inválidos")
		return
	}

	material, err := h.materialSvc.Crear(c.Request.Context(), creador, &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.Created(c, material)
}

// Obtener detalle de un material
// GET /api/materiales/:id
func (h *MaterialHandler) Obtener(c *gin.Context) {
	material, err := h.materialSvc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responderError(c, err)
		return
	}
	response.OK(c, material)
}

// Actualizar edición de un material
// PUT /api/materiales/:id
func (h *MaterialHandler) Actualizar(c *gin.Context) {
	editor, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.ActualizarMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos del material inválidos")
		return
	}

	material, err := h.materialSvc.Actualizar(c.Request.Context(), editor, c.Param("id"), &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OK(c, material)
}

// Desactivar baja lógica de un material
// DELETE /api/materiales/:id
func (h *MaterialHandler) Desactivar(c *gin.Context) {
	editor, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	if err := h.materialSvc.Desactivar(c.Request.Context(), editor, c.Param("id")); err != nil {
		h.responderError(c, err)
		return
	}

	response.OKMsg(c, "Material desactivado", nil)
}

// AsignarCentros reemplaza los centros a los que el material está asignado
// PUT /api/materiales/:id/centros
func (h *MaterialHandler) AsignarCentros(c *gin.Context) {
	editor, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.AsignarCentrosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "La lista de centros es inválida")
		return
	}

	material, err := h.materialSvc.AsignarCentros(c.Request.Context(), editor, c.Param("id"), req.Centros)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OK(c, material)
}

// Listar materiales con filtros y paginación
// GET /api/materiales
func (h *MaterialHandler) Listar(c *gin.Context) {
	var q dto.MaterialesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Filtros de búsqueda inválidos")
		return
	}

	materiales, total, err := h.materialSvc.Listar(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, materiales, total, q.Page, q.Size())
}

// ParaDocente materiales que el docente autenticado puede incluir en
// sus listas: los de disponibilidad general más los asignados a su centro
// GET /api/materiales/para-docente
func (h *MaterialHandler) ParaDocente(c *gin.Context) {
	docente, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	materiales, err := h.materialSvc.ListarParaDocente(c.Request.Context(), docente)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, materiales)
}

func (h *MaterialHandler) responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMaterialNoEncontrado):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrMaterialDuplicado),
		errors.Is(err, service.ErrCategoriaInactiva),
		errors.Is(err, service.ErrCategoriaNoEncontrada),
		errors.Is(err, service.ErrCentroNoEncontrado):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
