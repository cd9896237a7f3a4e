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
	ErrCategoriaNoEncontrada  = errors.New("categoría no encontrada")
	ErrCategoriaDuplicada     = errors.New("ya existe una categoría con ese nombre")
	ErrCategoriaConMateriales = errors.New("la categoría tiene materiales activos y no puede desactivarse")
)

// CategoriaService catálogo de categorías de materiales (solo coordinador)
type CategoriaService interface {
	Crear(ctx context.Context, creador *model.Usuario, req *dto.CrearCategoriaRequest) (*model.Categoria, error)
	Actualizar(ctx context.Context, editor *model.Usuario, id string, req *dto.ActualizarCategoriaRequest) (*model.Categoria, error)
	Desactivar(ctx context.Context, editor *model.Usuario, id string) error
	Listar(ctx context.Context, soloActivas bool) ([]model.Categoria, error)
}

type categoriaService struct {
	repo      *repository.Repository
	historial HistorialService
	logger    *zap.Logger
}

// NewCategoriaService crea el servicio de categorías
func NewCategoriaService(repo *repository.Repository, historial HistorialService, logger *zap.Logger) CategoriaService {
	return &categoriaService{repo: repo, historial: historial, logger: logger}
}

func (s *categoriaService) Crear(ctx context.Context, creador *model.Usuario, req *dto.CrearCategoriaRequest) (*model.Categoria, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if _, err := s.repo.Categoria.GetByNombre(ctx, nombre); err == nil {
		return nil, ErrCategoriaDuplicada
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	categoria := &model.Categoria{
		Nombre:      nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	categoria.CreadoPor = &creador.UsuarioID
	if err := s.repo.Categoria.Create(ctx, categoria); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, creador.UsuarioID, creador.Rol, "creación de categoría",
		ptr("categoria"), &categoria.CategoriaID, &categoria.Nombre)
	return categoria, nil
}

func (s *categoriaService) obtener(ctx context.Context, id string) (*model.Categoria, error) {
	categoria, err := s.repo.Categoria.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoriaNoEncontrada
		}
		return nil, err
	}
	return categoria, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, editor *model.Usuario, id string, req *dto.ActualizarCategoriaRequest) (*model.Categoria, error) {
	categoria, err := s.obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if !strings.EqualFold(nombre, categoria.Nombre) {
			if _, err := s.repo.Categoria.GetByNombre(ctx, nombre); err == nil {
				return nil, ErrCategoriaDuplicada
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		categoria.Nombre = nombre
	}
	if req.Descripcion != nil {
		categoria.Descripcion = req.Descripcion
	}
	if req.Activo != nil {
		if !*req.Activo {
			if err := s.verificarSinMateriales(ctx, id); err != nil {
				return nil, err
			}
		}
		categoria.Activo = *req.Activo
	}
	categoria.ActualizadoPor = &editor.UsuarioID

	if err := s.repo.Categoria.Update(ctx, categoria); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, editor.UsuarioID, editor.Rol, "actualización de categoría",
		ptr("categoria"), &categoria.CategoriaID, nil)
	return categoria, nil
}

// verificarSinMateriales impide desactivar categorías referenciadas
func (s *categoriaService) verificarSinMateriales(ctx context.Context, id string) error {
	total, err := s.repo.Categoria.CountMateriales(ctx, id)
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrCategoriaConMateriales
	}
	return nil
}

func (s *categoriaService) Desactivar(ctx context.Context, editor *model.Usuario, id string) error {
	categoria, err := s.obtener(ctx, id)
	if err != nil {
		return err
	}
	if err := s.verificarSinMateriales(ctx, id); err != nil {
		return err
	}
	categoria.Activo = false
	categoria.ActualizadoPor = &editor.UsuarioID
	if err := s.repo.Categoria.Update(ctx, categoria); err != nil {
		return err
	}
	s.historial.Registrar(ctx, editor.UsuarioID, editor.Rol, "desactivación de categoría",
		ptr("categoria"), &categoria.CategoriaID, &categoria.Nombre)
	return nil
}

func (s *categoriaService) Listar(ctx context.Context, soloActivas bool) ([]model.Categoria, error) {
	return s.repo.Categoria.List(ctx, soloActivas)
}
