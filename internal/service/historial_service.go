package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

// HistorialService bitácora de acciones de usuarios
type HistorialService interface {
	// Registrar inserta una entrada. Es de mejor esfuerzo: un fallo se
	// registra en el log pero nunca interrumpe la operación que lo originó.
	Registrar(ctx context.Context, usuarioID, rol, accion string, entidad, referenciaID, detalle *string)
	Listar(ctx context.Context, q dto.PageQuery, usuarioID, entidad string) ([]model.Historial, int64, error)
}

type historialService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHistorialService crea el servicio de bitácora
func NewHistorialService(repo *repository.Repository, logger *zap.Logger) HistorialService {
	return &historialService{repo: repo, logger: logger}
}

func (s *historialService) Registrar(ctx context.Context, usuarioID, rol, accion string, entidad, referenciaID, detalle *string) {
	// sin actor no hay entrada que anotar
	if usuarioID == "" {
		return
	}
	entrada := &model.Historial{
		UsuarioID:    usuarioID,
		Rol:          rol,
		Accion:       accion,
		Entidad:      entidad,
		ReferenciaID: referenciaID,
		Detalle:      detalle,
	}
	if err := s.repo.Historial.Create(ctx, entrada); err != nil {
		s.logger.Warn("no se pudo registrar la entrada de bitácora",
			zap.String("accion", accion),
			zap.String("usuario", usuarioID),
			zap.Error(err))
	}
}

func (s *historialService) Listar(ctx context.Context, q dto.PageQuery, usuarioID, entidad string) ([]model.Historial, int64, error) {
	return s.repo.Historial.List(ctx, q, usuarioID, entidad)
}

// ptr ayuda a construir los campos opcionales de la bitácora
func ptr(s string) *string { return &s }
