package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// HistorialHandler consulta de la bitácora de acciones
type HistorialHandler struct {
	historialSvc service.HistorialService
}

// NewHistorialHandler crea el HistorialHandler
func NewHistorialHandler(historialSvc service.HistorialService) *HistorialHandler {
	return &HistorialHandler{historialSvc: historialSvc}
}

// Listar bitácora con filtros opcionales por usuario y entidad
// GET /api/historial
func (h *HistorialHandler) Listar(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Filtros de búsqueda inválidos")
		return
	}

	registros, total, err := h.historialSvc.Listar(
		c.Request.Context(), q, c.Query("usuario"), c.Query("entidad"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, registros, total, q.Page, q.Size())
}
