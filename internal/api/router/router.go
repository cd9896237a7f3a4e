package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/config"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/handler"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/middleware"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/authz"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/jwt"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/redis"
)

// Setup arma el motor de gin con middlewares y todas las rutas
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Middlewares globales ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── Salud ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// límite estricto para los endpoints de credenciales
	limiteCredenciales := middleware.RateLimit(rdb, 10, time.Minute)

	api := r.Group("/api")
	{
		// ── Rutas públicas ──
		auth := api.Group("/auth")
		{
			auth.POST("/login", limiteCredenciales, h.Auth.Login)
			auth.POST("/registro-padre", limiteCredenciales, h.Auth.RegistrarPadre)
			auth.POST("/olvido-contrasenna", limiteCredenciales, h.Auth.OlvidoContrasena)
			auth.POST("/restablecer-contrasenna", limiteCredenciales, h.Auth.RestablecerContrasena)
		}
		api.GET("/centros/publico", h.Centro.ListaPublica)
		api.GET("/configuracion", h.Configuracion.Obtener)

		// ── Rutas autenticadas ──
		autorizado := api.Group("")
		autorizado.Use(middleware.JWTAuth(jwtMgr, repo, rdb))
		{
			autorizado.POST("/auth/logout", h.Auth.Logout)
			autorizado.PUT("/auth/cambiar-contrasenna", h.Auth.CambiarContrasena)

			// Perfil propio: cualquier rol, incluido alumno
			autorizado.GET("/usuarios/perfil", h.Usuario.MiPerfil)
			autorizado.PUT("/usuarios/perfil", h.Usuario.ActualizarMiPerfil)

			usuarios := autorizado.Group("/usuarios")
			{
				usuarios.POST("", middleware.RequierePermiso(authz.UsuarioCrear), h.Usuario.Crear)
				usuarios.GET("", middleware.RequierePermiso(authz.UsuarioListar), h.Usuario.Listar)
				usuarios.GET("/:id", middleware.RequierePermiso(authz.UsuarioListar), h.Usuario.Obtener)
				// edición de terceros se resuelve en el servicio: propietario o permiso
				usuarios.PUT("/:id", h.Usuario.Actualizar)
				usuarios.DELETE("/:id", middleware.RequierePermiso(authz.UsuarioEditar), h.Usuario.Desactivar)
			}

			estudiantes := autorizado.Group("/estudiantes")
			{
				estudiantes.POST("", middleware.RequiereRol(model.RolPadre), h.Estudiante.Crear)
				estudiantes.GET("/mis-estudiantes", middleware.RequiereRol(model.RolPadre), h.Estudiante.MisEstudiantes)
				estudiantes.GET("", h.Estudiante.Listar)
				estudiantes.GET("/:id", h.Estudiante.Obtener)
				estudiantes.PUT("/:id", h.Estudiante.Actualizar)
				estudiantes.DELETE("/:id", h.Estudiante.Desactivar)
			}

			centros := autorizado.Group("/centros")
			{
				centros.POST("", middleware.RequierePermiso(authz.CentroGestionar), h.Centro.Crear)
				centros.GET("", h.Centro.Listar)
				centros.GET("/:id", h.Centro.Obtener)
				centros.PUT("/:id", middleware.RequierePermiso(authz.CentroGestionar), h.Centro.Actualizar)
				centros.DELETE("/:id", middleware.RequierePermiso(authz.CentroGestionar), h.Centro.Desactivar)
			}

			niveles := autorizado.Group("/niveles")
			{
				niveles.GET("", h.Nivel.Listar)
				niveles.POST("", middleware.RequierePermiso(authz.NivelGestionar), h.Nivel.Crear)
				niveles.PUT("/:id", middleware.RequierePermiso(authz.NivelGestionar), h.Nivel.Actualizar)
				niveles.DELETE("/:id", middleware.RequierePermiso(authz.NivelGestionar), h.Nivel.Desactivar)
			}

			categorias := autorizado.Group("/categorias")
			{
				categorias.GET("", h.Categoria.Listar)
				categorias.POST("", middleware.RequierePermiso(authz.CategoriaGestionar), h.Categoria.Crear)
				categorias.PUT("/:id", middleware.RequierePermiso(authz.CategoriaGestionar), h.Categoria.Actualizar)
				categorias.DELETE("/:id", middleware.RequierePermiso(authz.CategoriaGestionar), h.Categoria.Desactivar)
			}

			materiales := autorizado.Group("/materiales")
			{
				materiales.GET("/para-docente", middleware.RequierePermiso(authz.MaterialVerDocente), h.Material.ParaDocente)
				materiales.GET("", h.Material.Listar)
				materiales.GET("/:id", h.Material.Obtener)
				materiales.POST("", middleware.RequierePermiso(authz.MaterialGestionar), h.Material.Crear)
				materiales.PUT("/:id", middleware.RequierePermiso(authz.MaterialGestionar), h.Material.Actualizar)
				materiales.PUT("/:id/centros", middleware.RequierePermiso(authz.MaterialAsignar), h.Material.AsignarCentros)
				materiales.DELETE("/:id", middleware.RequierePermiso(authz.MaterialGestionar), h.Material.Desactivar)
			}

			listas := autorizado.Group("/listas")
			{
				listas.POST("", middleware.RequierePermiso(authz.ListaCrear), h.Lista.Crear)
				listas.GET("/mis-listas", middleware.RequierePermiso(authz.ListaCrear), h.Lista.MisListas)
				listas.GET("/por-estudiante", middleware.RequierePermiso(authz.ListaVerPadre), h.Lista.VistaPadre)
				listas.GET("", h.Lista.Listar)
				listas.GET("/:id", h.Lista.Obtener)
				listas.PUT("/:id", middleware.RequierePermiso(authz.ListaCrear), h.Lista.Actualizar)
				listas.DELETE("/:id", h.Lista.Desactivar)
			}

			soporte := autorizado.Group("/soporte")
			{
				soporte.POST("", h.Soporte.Crear)
				soporte.GET("/mis-mensajes", h.Soporte.MisMensajes)
				soporte.GET("", middleware.RequierePermiso(authz.SoporteResponder), h.Soporte.Listar)
				soporte.PUT("/:id", middleware.RequierePermiso(authz.SoporteResponder), h.Soporte.Responder)
			}

			autorizado.PUT("/configuracion", middleware.RequierePermiso(authz.ConfiguracionEditar), h.Configuracion.Actualizar)

			autorizado.GET("/historial", middleware.RequierePermiso(authz.HistorialVerGlobal), h.Historial.Listar)

			reportes := autorizado.Group("/reportes")
			reportes.Use(middleware.RequierePermiso(authz.ReporteGenerar))
			{
				reportes.GET("/resumen", h.Reporte.Resumen)
				reportes.GET("/listas-por-nivel", h.Reporte.ListasPorNivel)
				reportes.GET("/listas-por-docente", h.Reporte.ListasPorDocente)
				reportes.GET("/materiales-por-categoria", h.Reporte.MaterialesPorCategoria)
				reportes.GET("/estudiantes-por-nivel", h.Reporte.EstudiantesPorNivel)
				reportes.GET("/listas/:id/excel", h.Reporte.ExportarListaExcel)
				reportes.GET("/listas/:id/pdf", h.Reporte.ExportarListaPDF)
				reportes.GET("/calendario.ics", h.Reporte.CalendarioFechasLimite)
			}
		}
	}

	return r
}
