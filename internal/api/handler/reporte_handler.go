package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

const (
	mimeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF   = "application/pdf"
	mimeICS   = "text/calendar"
)

// ReporteHandler reportes agregados y exportaciones
type ReporteHandler struct {
	reporteSvc service.ReporteService
}

// NewReporteHandler crea el ReporteHandler
func NewReporteHandler(reporteSvc service.ReporteService) *ReporteHandler {
	return &ReporteHandler{reporteSvc: reporteSvc}
}

// Resumen conteos generales del sistema
// GET /api/reportes/resumen
func (h *ReporteHandler) Resumen(c *gin.Context) {
	resumen, err := h.reporteSvc.Resumen(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resumen)
}

// ListasPorNivel cantidad de listas activas por nivel educativo
// GET /api/reportes/listas-por-nivel
func (h *ReporteHandler) ListasPorNivel(c *gin.Context) {
	conteos, err := h.reporteSvc.ListasPorNivel(c.Request.Context())
	if err != nil {
		h.responderError(c, err)
		return
	}
	response.OK(c, conteos)
}

// ListasPorDocente cantidad de listas activas por docente
// GET /api/reportes/listas-por-docente
func (h *ReporteHandler) ListasPorDocente(c *gin.Context) {
	conteos, err := h.reporteSvc.ListasPorDocente(c.Request.Context())
	if err != nil {
		h.responderError(c, err)
		return
	}
	response.OK(c, conteos)
}

// MaterialesPorCategoria cantidad de materiales activos por categoría
// GET /api/reportes/materiales-por-categoria
func (h *ReporteHandler) MaterialesPorCategoria(c *gin.Context) {
	conteos, err := h.reporteSvc.MaterialesPorCategoria(c.Request.Context())
	if err != nil {
		h.responderError(c, err)
		return
	}
	response.OK(c, conteos)
}

// EstudiantesPorNivel cantidad de estudiantes activos por nivel,
// opcionalmente filtrado por centro
// GET /api/reportes/estudiantes-por-nivel
func (h *ReporteHandler) EstudiantesPorNivel(c *gin.Context) {
	var q dto.ReporteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Filtros del reporte inválidos")
		return
	}

	conteos, err := h.reporteSvc.EstudiantesPorNivel(c.Request.Context(), q.CentroID)
	if err != nil {
		h.responderError(c, err)
		return
	}
	response.OK(c, conteos)
}

// ExportarListaExcel descarga una lista de útiles en formato Excel
// GET /api/reportes/listas/:id/excel
func (h *ReporteHandler) ExportarListaExcel(c *gin.Context) {
	buf, nombre, err := h.reporteSvc.ExportarListaExcel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responderError(c, err)
		return
	}
	h.responderDescarga(c, mimeExcel, nombre, buf.Bytes())
}

// ExportarListaPDF descarga una lista de útiles en formato PDF
// GET /api/reportes/listas/:id/pdf
func (h *ReporteHandler) ExportarListaPDF(c *gin.Context) {
	buf, nombre, err := h.reporteSvc.ExportarListaPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responderError(c, err)
		return
	}
	h.responderDescarga(c, mimePDF, nombre, buf.Bytes())
}

// CalendarioFechasLimite calendario iCalendar con las fechas límite de
// entrega de las listas activas
// GET /api/reportes/calendario.ics
func (h *ReporteHandler) CalendarioFechasLimite(c *gin.Context) {
	buf, nombre, err := h.reporteSvc.CalendarioFechasLimite(c.Request.Context())
	if err != nil {
		h.responderError(c, err)
		return
	}
	h.responderDescarga(c, mimeICS, nombre, buf.Bytes())
}

func (h *ReporteHandler) responderDescarga(c *gin.Context, mime, nombre string, contenido []byte) {
	codificado := url.QueryEscape(nombre)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+codificado)
	c.Data(http.StatusOK, mime, contenido)
}

func (h *ReporteHandler) responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrListaNoEncontrada):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrReporteSinDatos):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c)
	}
}
