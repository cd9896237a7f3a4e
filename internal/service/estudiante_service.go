package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/authz"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

var (
	ErrEstudianteNoEncontrado  = errors.New("estudiante no encontrado")
	ErrNivelInvalido           = errors.New("nivel educativo inválido")
	ErrGradoInvalido           = errors.New("grado inválido")
	ErrFechaNacimientoInvalida = errors.New("la fecha de nacimiento es inválida o futura")
)

// parseFechaNacimiento acepta AAAA-MM-DD y rechaza fechas futuras
func parseFechaNacimiento(valor string) (*time.Time, error) {
	fecha, err := time.Parse("2006-01-02", valor)
	if err != nil || !model.FechaNacimientoValida(fecha) {
		return nil, ErrFechaNacimientoInvalida
	}
	return &fecha, nil
}

// EstudianteService gestión de estudiantes por sus padres; lectura global
// para coordinadores y administradores
type EstudianteService interface {
	Crear(ctx context.Context, padre *model.Usuario, req *dto.CrearEstudianteRequest) (*model.Estudiante, error)
	Obtener(ctx context.Context, caller *model.Usuario, id string) (*model.Estudiante, error)
	Actualizar(ctx context.Context, caller *model.Usuario, id string, req *dto.ActualizarEstudianteRequest) (*model.Estudiante, error)
	Desactivar(ctx context.Context, caller *model.Usuario, id string) error
	Listar(ctx context.Context, caller *model.Usuario, q dto.EstudiantesQuery) ([]model.Estudiante, int64, error)
	MisEstudiantes(ctx context.Context, padreID string) ([]model.Estudiante, error)
}

type estudianteService struct {
	repo      *repository.Repository
	historial HistorialService
	logger    *zap.Logger
}

// NewEstudianteService crea el servicio de estudiantes
func NewEstudianteService(repo *repository.Repository, historial HistorialService, logger *zap.Logger) EstudianteService {
	return &estudianteService{repo: repo, historial: historial, logger: logger}
}

func (s *estudianteService) Crear(ctx context.Context, padre *model.Usuario, req *dto.CrearEstudianteRequest) (*model.Estudiante, error) {
	if padre.Rol != model.RolPadre {
		return nil, ErrAccesoDenegado
	}
	if !model.CedulaValida(req.Cedula) {
		return nil, ErrCedulaInvalida
	}
	if !model.NivelEstudianteValido(req.Nivel) {
		return nil, ErrNivelInvalido
	}
	if !model.GradoValido(req.Grado) {
		return nil, ErrGradoInvalido
	}

	if _, err := s.repo.Estudiante.GetByCedula(ctx, req.Cedula); err == nil {
		return nil, ErrCedulaRegistrada
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.CentroID != nil && *req.CentroID != "" {
		if _, err := s.repo.Centro.GetByID(ctx, *req.CentroID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCentroNoEncontrado
			}
			return nil, err
		}
	}

	estudiante := &model.Estudiante{
		Nombre:        strings.TrimSpace(req.Nombre),
		Cedula:        req.Cedula,
		Nivel:         req.Nivel,
		Grado:         req.Grado,
		PadreID:       padre.UsuarioID,
		CentroID:      req.CentroID,
		Estado:        model.EstadoActivo,
		Observaciones: req.Observaciones,
	}
	if req.FechaNacimiento != nil {
		fecha, err := parseFechaNacimiento(*req.FechaNacimiento)
		if err != nil {
			return nil, err
		}
		estudiante.FechaNacimiento = fecha
	}
	estudiante.CreadoPor = &padre.UsuarioID

	if err := s.repo.Estudiante.Create(ctx, estudiante); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, padre.UsuarioID, padre.Rol, "registro de estudiante",
		ptr("estudiante"), &estudiante.EstudianteID, &estudiante.Nombre)
	return estudiante, nil
}

func (s *estudianteService) Obtener(ctx context.Context, caller *model.Usuario, id string) (*model.Estudiante, error) {
	estudiante, err := s.repo.Estudiante.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstudianteNoEncontrado
		}
		return nil, err
	}
	if !s.puedeVer(caller, estudiante) {
		return nil, ErrAccesoDenegado
	}
	return estudiante, nil
}

// puedeVer el padre ve solo a los suyos; coordinador y administrador a todos
func (s *estudianteService) puedeVer(caller *model.Usuario, e *model.Estudiante) bool {
	if authz.CanPerform(caller.Rol, authz.EstudianteVerTodos) {
		return true
	}
	return authz.EsPropietario(caller.UsuarioID, e.PadreID)
}

func (s *estudianteService) Actualizar(ctx context.Context, caller *model.Usuario, id string, req *dto.ActualizarEstudianteRequest) (*model.Estudiante, error) {
	estudiante, err := s.Obtener(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if !authz.EsPropietario(caller.UsuarioID, estudiante.PadreID) &&
		!authz.CanPerform(caller.Rol, authz.EstudianteVerTodos) {
		return nil, ErrAccesoDenegado
	}

	if req.Nombre != nil {
		estudiante.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Nivel != nil {
		if !model.NivelEstudianteValido(*req.Nivel) {
			return nil, ErrNivelInvalido
		}
		estudiante.Nivel = *req.Nivel
	}
	if req.Grado != nil {
		if !model.GradoValido(*req.Grado) {
			return nil, ErrGradoInvalido
		}
		estudiante.Grado = *req.Grado
	}
	if req.FechaNacimiento != nil {
		fecha, err := parseFechaNacimiento(*req.FechaNacimiento)
		if err != nil {
			return nil, err
		}
		estudiante.FechaNacimiento = fecha
	}
	if req.CentroID != nil {
		if _, err := s.repo.Centro.GetByID(ctx, *req.CentroID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCentroNoEncontrado
			}
			return nil, err
		}
		estudiante.CentroID = req.CentroID
	}
	if req.Estado != nil {
		estudiante.Estado = *req.Estado
	}
	if req.Observaciones != nil {
		estudiante.Observaciones = req.Observaciones
	}
	estudiante.ActualizadoPor = &caller.UsuarioID

	if err := s.repo.Estudiante.Update(ctx, estudiante); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, caller.UsuarioID, caller.Rol, "actualización de estudiante",
		ptr("estudiante"), &estudiante.EstudianteID, nil)
	return estudiante, nil
}

// Desactivar baja lógica: el registro se conserva con estado inactivo.
func (s *estudianteService) Desactivar(ctx context.Context, caller *model.Usuario, id string) error {
	estudiante, err := s.Obtener(ctx, caller, id)
	if err != nil {
		return err
	}
	estudiante.Estado = model.EstadoInactivo
	estudiante.ActualizadoPor = &caller.UsuarioID
	if err := s.repo.Estudiante.Update(ctx, estudiante); err != nil {
		return err
	}
	s.historial.Registrar(ctx, caller.UsuarioID, caller.Rol, "desactivación de estudiante",
		ptr("estudiante"), &estudiante.EstudianteID, &estudiante.Nombre)
	return nil
}

func (s *estudianteService) Listar(ctx context.Context, caller *model.Usuario, q dto.EstudiantesQuery) ([]model.Estudiante, int64, error) {
	// un padre solo lista a los suyos aunque pida otro filtro
	if !authz.CanPerform(caller.Rol, authz.EstudianteVerTodos) {
		q.PadreID = caller.UsuarioID
	}
	return s.repo.Estudiante.List(ctx, q)
}

func (s *estudianteService) MisEstudiantes(ctx context.Context, padreID string) ([]model.Estudiante, error) {
	return s.repo.Estudiante.ListByPadre(ctx, padreID)
}
