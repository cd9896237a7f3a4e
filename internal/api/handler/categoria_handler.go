package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/middleware"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// CategoriaHandler catálogo global de categorías de materiales
type CategoriaHandler struct {
	categoriaSvc service.CategoriaService
}

// NewCategoriaHandler crea el CategoriaHandler
func NewCategoriaHandler(categoriaSvc service.CategoriaService) *CategoriaHandler {
	return &CategoriaHandler{categoriaSvc: categoriaSvc}
}

// Crear alta de una categoría
// POST /api/categorias
func (h *CategoriaHandler) Crear(c *gin.Context) {
	creador, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.CrearCategoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "El nombre de la categoría es obligatorio")
		return
	}

	categoria, err := h.categoriaSvc.Crear(c.Request.Context(), creador, &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.Created(c, categoria)
}

// Actualizar edición de una categoría
// PUT /api/categorias/:id
func (h *CategoriaHandler) Actualizar(c *gin.Context) {
	editor, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.ActualizarCategoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de la categoría inválidos")
		return
	}

	categoria, err := h.categoriaSvc.Actualizar(c.Request.Context(), editor, c.Param("id"), &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OK(c, categoria)
}

// Desactivar baja lógica de una categoría sin materiales activos
// DELETE /api/categorias/:id
func (h *CategoriaHandler) Desactivar(c *gin.Context) {
	editor, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	if err := h.categoriaSvc.Desactivar(c.Request.Context(), editor, c.Param("id")); err != nil {
		h.responderError(c, err)
		return
	}

	response.OKMsg(c, "Categoría desactivada", nil)
}

// Listar categorías. Por defecto solo las activas; ?todas=true incluye
// las desactivadas.
// GET /api/categorias
func (h *CategoriaHandler) Listar(c *gin.Context) {
	soloActivas := c.Query("todas") != "true"

	categorias, err := h.categoriaSvc.Listar(c.Request.Context(), soloActivas)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, categorias)
}

func (h *CategoriaHandler) responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoriaNoEncontrada):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCategoriaDuplicada),
		errors.Is(err, service.ErrCategoriaConMateriales):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
