package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/authz"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

var ErrSoporteNoEncontrado = errors.New("mensaje de soporte no encontrado")

// SoporteService mensajes de soporte: cualquier usuario autenticado crea;
// solo el coordinador lista todo y responde
type SoporteService interface {
	Crear(ctx context.Context, autor *model.Usuario, req *dto.CrearSoporteRequest) (*model.Soporte, error)
	Responder(ctx context.Context, coordinador *model.Usuario, id string, req *dto.ResponderSoporteRequest) (*model.Soporte, error)
	Listar(ctx context.Context, q dto.SoporteQuery) ([]model.Soporte, int64, error)
	MisMensajes(ctx context.Context, usuarioID string) ([]model.Soporte, error)
}

type soporteService struct {
	repo      *repository.Repository
	historial HistorialService
	logger    *zap.Logger
}

// NewSoporteService crea el servicio de soporte
func NewSoporteService(repo *repository.Repository, historial HistorialService, logger *zap.Logger) SoporteService {
	return &soporteService{repo: repo, historial: historial, logger: logger}
}

func (s *soporteService) Crear(ctx context.Context, autor *model.Usuario, req *dto.CrearSoporteRequest) (*model.Soporte, error) {
	mensaje := &model.Soporte{
		UsuarioID: autor.UsuarioID,
		Tipo:      req.Tipo,
		Mensaje:   req.Mensaje,
		Estado:    "pendiente",
	}
	mensaje.CreadoPor = &autor.UsuarioID
	if err := s.repo.Soporte.Create(ctx, mensaje); err != nil {
		return nil, err
	}
	s.historial.Registrar(ctx, autor.UsuarioID, autor.Rol, "creación de mensaje de soporte",
		ptr("soporte"), &mensaje.SoporteID, &mensaje.Tipo)
	return mensaje, nil
}

func (s *soporteService) Responder(ctx context.Context, coordinador *model.Usuario, id string, req *dto.ResponderSoporteRequest) (*model.Soporte, error) {
	if !authz.CanPerform(coordinador.Rol, authz.SoporteResponder) {
		return nil, ErrAccesoDenegado
	}
	mensaje, err := s.repo.Soporte.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSoporteNoEncontrado
		}
		return nil, err
	}

	if req.Estado != nil {
		mensaje.Estado = *req.Estado
	}
	if req.Respuesta != nil {
		mensaje.Respuesta = req.Respuesta
		if req.Estado == nil && mensaje.Estado == "pendiente" {
			mensaje.Estado = "en revisión"
		}
	}
	mensaje.ActualizadoPor = &coordinador.UsuarioID

	if err := s.repo.Soporte.Update(ctx, mensaje); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, coordinador.UsuarioID, coordinador.Rol, "respuesta a mensaje de soporte",
		ptr("soporte"), &mensaje.SoporteID, &mensaje.Estado)
	return mensaje, nil
}

func (s *soporteService) Listar(ctx context.Context, q dto.SoporteQuery) ([]model.Soporte, int64, error) {
	return s.repo.Soporte.List(ctx, q)
}

func (s *soporteService) MisMensajes(ctx context.Context, usuarioID string) ([]model.Soporte, error) {
	return s.repo.Soporte.ListByUsuario(ctx, usuarioID)
}
