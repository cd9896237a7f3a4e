package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/middleware"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// AuthHandler autenticación y ciclo de vida de la sesión
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler crea el AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login inicio de sesión
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Correo y contraseña son obligatorios")
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredencialesInvalidas):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// Logout cierra la sesión invalidando el token vigente
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsActuales(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		response.InternalError(c)
		return
	}

	response.OKMsg(c, "Sesión cerrada", nil)
}

// RegistrarPadre autorregistro de padre con sus estudiantes
// POST /api/auth/registro-padre
func (h *AuthHandler) RegistrarPadre(c *gin.Context) {
	var req dto.RegistroPadreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de registro incompletos o inválidos")
		return
	}

	resp, err := h.authSvc.RegistrarPadre(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCorreoRegistrado),
			errors.Is(err, service.ErrCedulaRegistrada),
			errors.Is(err, service.ErrCedulaInvalida),
			errors.Is(err, service.ErrDatosEstudiante),
			errors.Is(err, service.ErrContrasenaCorta),
			errors.Is(err, service.ErrNivelInvalido),
			errors.Is(err, service.ErrGradoInvalido):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, resp)
}

// CambiarContrasena cambio de contraseña del usuario autenticado
// PUT /api/auth/cambiar-contrasenna
func (h *AuthHandler) CambiarContrasena(c *gin.Context) {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.CambiarContrasenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "La contraseña actual y la nueva son obligatorias")
		return
	}

	if err := h.authSvc.CambiarContrasena(c.Request.Context(), usuario.UsuarioID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrContrasenaActual):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrContrasenaCorta):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMsg(c, "Contraseña actualizada", nil)
}

// OlvidoContrasena solicita el enlace de restablecimiento por correo
// POST /api/auth/olvido-contrasenna
func (h *AuthHandler) OlvidoContrasena(c *gin.Context) {
	var req dto.OlvidoContrasenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "El correo es obligatorio")
		return
	}

	if err := h.authSvc.SolicitarRestablecimiento(c.Request.Context(), req.Correo); err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			response.NotFound(c, "No existe una cuenta con ese correo")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKMsg(c, "Se envió un enlace de restablecimiento al correo indicado", nil)
}

// RestablecerContrasena consume el token de restablecimiento
// POST /api/auth/restablecer-contrasenna
func (h *AuthHandler) RestablecerContrasena(c *gin.Context) {
	var req dto.RestablecerContrasenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "El token y la nueva contraseña son obligatorios")
		return
	}

	if err := h.authSvc.Restablecer(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrTokenResetInvalido):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrContrasenaCorta):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMsg(c, "Contraseña restablecida, ya puede iniciar sesión", nil)
}
