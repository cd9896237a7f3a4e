package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

var (
	ErrNivelNoEncontrado = errors.New("nivel educativo no encontrado")
	ErrNivelDuplicado    = errors.New("ya existe un nivel con ese nombre en el ámbito")
	ErrNivelAjeno        = errors.New("el nivel pertenece a otro centro")
	ErrNivelGeneral      = errors.New("los niveles del ámbito General no se modifican por esta vía")
)

// NivelService niveles educativos por ámbito. Los del ámbito General los
// siembra la migración y son de solo lectura; cada administrador gestiona
// los de su propio centro.
type NivelService interface {
	Crear(ctx context.Context, admin *model.Usuario, req *dto.CrearNivelRequest) (*model.NivelEducativo, error)
	Actualizar(ctx context.Context, admin *model.Usuario, id string, req *dto.ActualizarNivelRequest) (*model.NivelEducativo, error)
	Desactivar(ctx context.Context, admin *model.Usuario, id string) error
	// ListarVisibles niveles General más los del ámbito del usuario
	ListarVisibles(ctx context.Context, usuario *model.Usuario) ([]model.NivelEducativo, error)
}

type nivelService struct {
	repo      *repository.Repository
	historial HistorialService
	logger    *zap.Logger
}

// NewNivelService crea el servicio de niveles
func NewNivelService(repo *repository.Repository, historial HistorialService, logger *zap.Logger) NivelService {
	return &nivelService{repo: repo, historial: historial, logger: logger}
}

// ambitoDe el ámbito de trabajo del administrador es su centro
func ambitoDe(u *model.Usuario) string {
	if u.CentroID != nil && *u.CentroID != "" {
		return *u.CentroID
	}
	return model.AmbitoGeneral
}

func (s *nivelService) Crear(ctx context.Context, admin *model.Usuario, req *dto.CrearNivelRequest) (*model.NivelEducativo, error) {
	ambito := ambitoDe(admin)
	if ambito == model.AmbitoGeneral {
		return nil, ErrCentroRequerido
	}

	nombre := strings.TrimSpace(req.Nombre)
	if _, err := s.repo.Nivel.GetByNombreYAmbito(ctx, nombre, ambito); err == nil {
		return nil, ErrNivelDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	nivel := &model.NivelEducativo{
		Nombre:      nombre,
		Descripcion: req.Descripcion,
		Ambito:      ambito,
		Activo:      true,
	}
	nivel.CreadoPor = &admin.UsuarioID
	if err := s.repo.Nivel.Create(ctx, nivel); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, admin.UsuarioID, admin.Rol, "creación de nivel educativo",
		ptr("nivel"), &nivel.NivelID, &nivel.Nombre)
	return nivel, nil
}

// obtenerPropio carga el nivel y verifica que sea del ámbito del administrador
func (s *nivelService) obtenerPropio(ctx context.Context, admin *model.Usuario, id string) (*model.NivelEducativo, error) {
	nivel, err := s.repo.Nivel.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNivelNoEncontrado
		}
		return nil, err
	}
	if nivel.Ambito == model.AmbitoGeneral {
		return nil, ErrNivelGeneral
	}
	if nivel.Ambito != ambitoDe(admin) {
		return nil, ErrNivelAjeno
	}
	return nivel, nil
}

func (s *nivelService) Actualizar(ctx context.Context, admin *model.Usuario, id string, req *dto.ActualizarNivelRequest) (*model.NivelEducativo, error) {
	nivel, err := s.obtenerPropio(ctx, admin, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if !strings.EqualFold(nombre, nivel.Nombre) {
			if _, err := s.repo.Nivel.GetByNombreYAmbito(ctx, nombre, nivel.Ambito); err == nil {
				return nil, ErrNivelDuplicado
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		nivel.Nombre = nombre
	}
	if req.Descripcion != nil {
		nivel.Descripcion = req.Descripcion
	}
	if req.Activo != nil {
		nivel.Activo = *req.Activo
	}
	nivel.ActualizadoPor = &admin.UsuarioID

	if err := s.repo.Nivel.Update(ctx, nivel); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, admin.UsuarioID, admin.Rol, "actualización de nivel educativo",
		ptr("nivel"), &nivel.NivelID, nil)
	return nivel, nil
}

func (s *nivelService) Desactivar(ctx context.Context, admin *model.Usuario, id string) error {
	nivel, err := s.obtenerPropio(ctx, admin, id)
	if err != nil {
		return err
	}
	nivel.Activo = false
	nivel.ActualizadoPor = &admin.UsuarioID
	if err := s.repo.Nivel.Update(ctx, nivel); err != nil {
		return err
	}
	s.historial.Registrar(ctx, admin.UsuarioID, admin.Rol, "desactivación de nivel educativo",
		ptr("nivel"), &nivel.NivelID, &nivel.Nombre)
	return nil
}

func (s *nivelService) ListarVisibles(ctx context.Context, usuario *model.Usuario) ([]model.NivelEducativo, error) {
	return s.repo.Nivel.ListVisibles(ctx, ambitoDe(usuario))
}
