package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

// ConfiguracionService registro único de configuración global del sistema
type ConfiguracionService interface {
	// Obtener devuelve la configuración vigente; la crea con los valores
	// por defecto si aún no existe.
	Obtener(ctx context.Context) (*model.Configuracion, error)
	Actualizar(ctx context.Context, editor *model.Usuario, req *dto.ActualizarConfiguracionRequest) (*model.Configuracion, error)
}

type configuracionService struct {
	repo      *repository.Repository
	historial HistorialService
	logger    *zap.Logger
}

// NewConfiguracionService crea el servicio de configuración
func NewConfiguracionService(repo *repository.Repository, historial HistorialService, logger *zap.Logger) ConfiguracionService {
	return &configuracionService{repo: repo, historial: historial, logger: logger}
}

func (s *configuracionService) Obtener(ctx context.Context) (*model.Configuracion, error) {
	return s.repo.Configuracion.Get(ctx)
}

func (s *configuracionService) Actualizar(ctx context.Context, editor *model.Usuario, req *dto.ActualizarConfiguracionRequest) (*model.Configuracion, error) {
	cfg, err := s.repo.Configuracion.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.NombreSistema != nil {
		cfg.NombreSistema = *req.NombreSistema
	}
	if req.MensajeGlobal != nil {
		cfg.MensajeGlobal = req.MensajeGlobal
	}
	if req.LogoURL != nil {
		cfg.LogoURL = req.LogoURL
	}
	if req.TextosNoticias != nil {
		cfg.TextosNoticias = datatypes.NewJSONType(*req.TextosNoticias)
	}
	cfg.ActualizadoPor = &editor.UsuarioID

	if err := s.repo.Configuracion.Update(ctx, cfg); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, editor.UsuarioID, editor.Rol, "actualización de configuración global",
		ptr("configuracion"), nil, nil)
	return cfg, nil
}
