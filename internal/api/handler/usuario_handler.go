package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/middleware"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// UsuarioHandler gestión de cuentas y perfil propio
type UsuarioHandler struct {
	usuarioSvc service.UsuarioService
}

// NewUsuarioHandler crea el UsuarioHandler
func NewUsuarioHandler(usuarioSvc service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{usuarioSvc: usuarioSvc}
}

// MiPerfil datos del usuario autenticado
// GET /api/usuarios/perfil
func (h *UsuarioHandler) MiPerfil(c *gin.Context) {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}
	response.OK(c, usuario)
}

// ActualizarMiPerfil datos de contacto del usuario autenticado
// PUT /api/usuarios/perfil
func (h *UsuarioHandler) ActualizarMiPerfil(c *gin.Context) {
	usuario, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.ActualizarPerfilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de perfil inválidos")
		return
	}

	actualizado, err := h.usuarioSvc.ActualizarPerfil(c.Request.Context(), usuario.UsuarioID, &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OK(c, actualizado)
}

// Crear alta de usuario por coordinador o administrador
// POST /api/usuarios
func (h *UsuarioHandler) Crear(c *gin.Context) {
	creador, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.CrearUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de usuario incompletos o inválidos")
		return
	}

	usuario, err := h.usuarioSvc.Crear(c.Request.Context(), creador, &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.Created(c, usuario)
}

// Obtener detalle de un usuario
// GET /api/usuarios/:id
func (h *UsuarioHandler) Obtener(c *gin.Context) {
	usuario, err := h.usuarioSvc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responderError(c, err)
		return
	}
	response.OK(c, usuario)
}

// Actualizar edición de un usuario por id
// PUT /api/usuarios/:id
func (h *UsuarioHandler) Actualizar(c *gin.Context) {
	editor, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	var req dto.ActualizarUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Datos de usuario inválidos")
		return
	}

	usuario, err := h.usuarioSvc.Actualizar(c.Request.Context(), editor, c.Param("id"), &req)
	if err != nil {
		h.responderError(c, err)
		return
	}

	response.OK(c, usuario)
}

// Desactivar baja lógica de un usuario
// DELETE /api/usuarios/:id
func (h *UsuarioHandler) Desactivar(c *gin.Context) {
	editor, ok := middleware.UsuarioActual(c)
	if !ok {
		response.Unauthorized(c, "No autenticado")
		return
	}

	if err := h.usuarioSvc.Desactivar(c.Request.Context(), editor, c.Param("id")); err != nil {
		h.responderError(c, err)
		return
	}

	response.OKMsg(c, "Usuario desactivado", nil)
}

// Listar usuarios con filtros y paginación
// GET /api/usuarios
func (h *UsuarioHandler) Listar(c *gin.Context) {
	var q dto.UsuariosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Filtros de búsqueda inválidos")
		return
	}

	usuarios, total, err := h.usuarioSvc.Listar(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, usuarios, total, q.Page, q.Size())
}

func (h *UsuarioHandler) responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUsuarioNoEncontrado):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAccesoDenegado),
		errors.Is(err, service.ErrRolNoPermitido):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrCorreoRegistrado),
		errors.Is(err, service.ErrCorreoNoInstitucional),
		errors.Is(err, service.ErrCentroRequerido),
		errors.Is(err, service.ErrCedulaInvalida),
		errors.Is(err, service.ErrContrasenaCorta):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrCentroNoEncontrado):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
