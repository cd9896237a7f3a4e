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
	ErrMaterialNoEncontrado = errors.New("material no encontrado")
	ErrMaterialDuplicado    = errors.New("ya existe un material con ese nombre")
	ErrCategoriaInactiva    = errors.New("la categoría está inactiva")
)

// MaterialService catálogo de materiales, su asignación a centros y la
// vista filtrada que ven los docentes
type MaterialService interface {
	Crear(ctx context.Context, creador *model.Usuario, req *dto.CrearMaterialRequest) (*model.Material, error)
	Obtener(ctx context.Context, id string) (*model.Material, error)
	Actualizar(ctx context.Context, editor *model.Usuario, id string, req *dto.ActualizarMaterialRequest) (*model.Material, error)
	Desactivar(ctx context.Context, editor *model.Usuario, id string) error
	AsignarCentros(ctx context.Context, editor *model.Usuario, id string, centros []string) (*model.Material, error)
	Listar(ctx context.Context, q dto.MaterialesQuery) ([]model.Material, int64, error)
	ListarParaDocente(ctx context.Context, docente *model.Usuario) ([]model.Material, error)
}

type materialService struct {
	repo      *repository.Repository
	historial HistorialService
	logger    *zap.Logger
}

// NewMaterialService crea el servicio de materiales
func NewMaterialService(repo *repository.Repository, historial HistorialService, logger *zap.Logger) MaterialService {
	return &materialService{repo: repo, historial: historial, logger: logger}
}

func (s *materialService) Crear(ctx context.Context, creador *model.Usuario, req *dto.CrearMaterialRequest) (*model.Material, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if _, err := s.repo.Material.GetByNombre(ctx, nombre); err == nil {
		return nil, ErrMaterialDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	categoria, err := s.repo.Categoria.GetByID(ctx, req.CategoriaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoriaNoEncontrada
		}
		return nil, err
	}
	if !categoria.Activo {
		return nil, ErrCategoriaInactiva
	}

	disponible := true
	if req.DisponibleParaDocentes != nil {
		disponible = *req.DisponibleParaDocentes
	}

	material := &model.Material{
		Nombre:                 nombre,
		CategoriaID:            req.CategoriaID,
		Descripcion:            req.Descripcion,
		Activo:                 true,
		DisponibleParaDocentes: disponible,
		CentrosAsignados:       model.StringArray{},
	}
	material.CreadoPor = &creador.UsuarioID
	if err := s.repo.Material.Create(ctx, material); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, creador.UsuarioID, creador.Rol, "creación de material",
		ptr("material"), &material.MaterialID, &material.Nombre)
	return material, nil
}

func (s *materialService) Obtener(ctx context.Context, id string) (*model.Material, error) {
	material, err := s.repo.Material.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNoEncontrado
		}
		return nil, err
	}
	return material, nil
}

func (s *materialService) Actualizar(ctx context.Context, editor *model.Usuario, id string, req *dto.ActualizarMaterialRequest) (*model.Material, error) {
	material, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if !strings.EqualFold(nombre, material.Nombre) {
			if _, err := s.repo.Material.GetByNombre(ctx, nombre); err == nil {
				return nil, ErrMaterialDuplicado
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		material.Nombre = nombre
	}
	if req.CategoriaID != nil {
		categoria, err := s.repo.Categoria.GetByID(ctx, *req.CategoriaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoriaNoEncontrada
			}
			return nil, err
		}
		if !categoria.Activo {
			return nil, ErrCategoriaInactiva
		}
		material.CategoriaID = *req.CategoriaID
	}
	if req.Descripcion != nil {
		material.Descripcion = req.Descripcion
	}
	if req.Activo != nil {
		material.Activo = *req.Activo
	}
	if req.DisponibleParaDocentes != nil {
		material.DisponibleParaDocentes = *req.DisponibleParaDocentes
	}
	material.ActualizadoPor = &editor.UsuarioID

	if err := s.repo.Material.Update(ctx, material); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, editor.UsuarioID, editor.Rol, "actualización de material",
		ptr("material"), &material.MaterialID, nil)
	return material, nil
}

func (s *materialService) Desactivar(ctx context.Context, editor *model.Usuario, id string) error {
	material, err := s.Obtener(ctx, id)
	if err != nil {
		return err
	}
	material.Activo = false
	material.ActualizadoPor = &editor.UsuarioID
	if err := s.repo.Material.Update(ctx, material); err != nil {
		return err
	}
	s.historial.Registrar(ctx, editor.UsuarioID, editor.Rol, "desactivación de material",
		ptr("material"), &material.MaterialID, &material.Nombre)
	return nil
}

// AsignarCentros reemplaza el conjunto completo de centros asignados.
func (s *materialService) AsignarCentros(ctx context.Context, editor *model.Usuario, id string, centros []string) (*model.Material, error) {
	material, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, centroID := range centros {
		if _, err := s.repo.Centro.GetByID(ctx, centroID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCentroNoEncontrado
			}
			return nil, err
		}
	}
	material.CentrosAsignados = model.StringArray(centros)
	material.ActualizadoPor = &editor.UsuarioID
	if err := s.repo.Material.Update(ctx, material); err != nil {
		return nil, err
	}
	s.historial.Registrar(ctx, editor.UsuarioID, editor.Rol, "asignación de material a centros",
		ptr("material"), &material.MaterialID, nil)
	return material, nil
}

func (s *materialService) Listar(ctx context.Context, q dto.MaterialesQuery) ([]model.Material, int64, error) {
	return s.repo.Material.List(ctx, q)
}

// ListarParaDocente materiales disponibles globalmente más los asignados
// al centro del docente.
func (s *materialService) ListarParaDocente(ctx context.Context, docente *model.Usuario) ([]model.Material, error) {
	centroID := ""
	if docente.CentroID != nil {
		centroID = *docente.CentroID
	}
	return s.repo.Material.ListParaDocente(ctx, centroID)
}
