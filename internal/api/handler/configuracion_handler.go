package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/middleware"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// ConfiguracionHandler configuración institucional del sistema
type ConfiguracionHandler struct {
	configSvc service.ConfiguracionService
}

// NewConfiguracionHandler crea el ConfiguracionHandler
func NewConfiguracionHandler(configSvc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{configSvc: configSvc}
}

// Obtener configuración vigente. Pública: el frontend la necesita antes
// de iniciar sesión para nombre, logo y textos de la pantalla inicial.
// GET /api/configuracion
func (h *ConfiguracionHandler) Obtener(c *gin.Context) {
	cfg, err := h.configSvc.Obtener(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, cfg)
}

// Actualizar edición parcial de la configuración por el coordinador
// PUT /api/configuracion
func (h *ConfiguracionHandler) Actualizar(c *gin.Context) {
	editor, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.ActualizarConfiguracionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de configuración inválidos")
		return
	}

	cfg, err := h.configSvc.Actualizar(c.Request.Context(), editor, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, cfg)
}
