package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/authz"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/jwt"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/redis"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// Claves del contexto de gin
const (
	CtxUsuario = "usuario"
	CtxClaims  = "claims"
)

// JWTAuth valida el token Bearer, revisa la lista negra y carga el usuario
// desde la base para confirmar que sigue activo. rdb en nil omite la lista
// negra (modo degradado, igual que el resto del sistema sin Redis).
func JWTAuth(jwtMgr *jwt.Manager, repo *repository.Repository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Falta el encabezado de autorización")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Encabezado de autorización inválido")
			c.Abort()
			return
		}

		claims, err := jwtMgr.Verificar(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpirado) {
				response.Unauthorized(c, "La sesión expiró, inicie sesión de nuevo")
			} else {
				response.Unauthorized(c, "Token inválido")
			}
			c.Abort()
			return
		}

		if rdb != nil {
			bloqueado, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && bloqueado {
				response.Unauthorized(c, "La sesión fue cerrada")
				c.Abort()
				return
			}
		}

		// una cuenta desactivada después de emitir el token pierde acceso
		// en la siguiente petición
		usuario, err := repo.Usuario.GetByID(c.Request.Context(), claims.UID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Unauthorized(c, "La cuenta ya no existe")
			} else {
				response.InternalError(c)
			}
			c.Abort()
			return
		}
		if !usuario.PuedeIngresar() {
			response.Unauthorized(c, "La cuenta está inactiva o suspendida")
			c.Abort()
			return
		}

		c.Set(CtxUsuario, usuario)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// RequierePermiso verifica la acción contra la tabla de permisos
func RequierePermiso(accion authz.Accion) gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario, ok := UsuarioActual(c)
		if !ok {
			response.Unauthorized(c, "No autenticado")
			c.Abort()
			return
		}
		if !authz.CanPerform(usuario.Rol, accion) {
			response.Forbidden(c, "No tiene permisos para esta operación")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequiereRol limita la ruta a los roles indicados
func RequiereRol(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario, ok := UsuarioActual(c)
		if !ok {
			response.Unauthorized(c, "No autenticado")
			c.Abort()
			return
		}
		for _, rol := range roles {
			if usuario.Rol == rol {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "No tiene permisos para esta operación")
		c.Abort()
	}
}

// UsuarioActual usuario autenticado inyectado por JWTAuth
func UsuarioActual(c *gin.Context) (*model.Usuario, bool) {
	v, ok := c.Get(CtxUsuario)
	if !ok {
		return nil, false
	}
	usuario, ok := v.(*model.Usuario)
	return usuario, ok
}

// ClaimsActuales declaraciones del token vigente
func ClaimsActuales(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
