package service

import (
	"go.uber.org/zap"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/config"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/mailer"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/jwt"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/redis"
)

// Service agregado de todos los servicios de negocio
type Service struct {
	Auth          AuthService
	Usuario       UsuarioService
	Estudiante    EstudianteService
	Centro        CentroService
	Nivel         NivelService
	Categoria     CategoriaService
	Material      MaterialService
	Lista         ListaService
	Soporte       SoporteService
	Configuracion ConfiguracionService
	Historial     HistorialService
	Reporte       ReporteService
}

// NewService construye el agregado de servicios. rdb puede ser nil cuando
// Redis no está disponible.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail mailer.Mailer,
	logger *zap.Logger,
) *Service {
	historial := NewHistorialService(repo, logger)

	return &Service{
		Auth:          NewAuthService(cfg, repo, jwtMgr, rdb, mail, historial, logger),
		Usuario:       NewUsuarioService(cfg, repo, mail, historial, logger),
		Estudiante:    NewEstudianteService(repo, historial, logger),
		Centro:        NewCentroService(repo, historial, logger),
		Nivel:         NewNivelService(repo, historial, logger),
		Categoria:     NewCategoriaService(repo, historial, logger),
		Material:      NewMaterialService(repo, historial, logger),
		Lista:         NewListaService(repo, historial, logger),
		Soporte:       NewSoporteService(repo, historial, logger),
		Configuracion: NewConfiguracionService(repo, historial, logger),
		Historial:     historial,
		Reporte:       NewReporteService(repo, logger),
	}
}
