package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

// CategoriaRepository acceso a datos de categorías de materiales
type CategoriaRepository interface {
	Create(ctx context.Context, c *model.Categoria) error
	GetByID(ctx context.Context, id string) (*model.Categoria, error)
	GetByNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	Update(ctx context.Context, c *model.Categoria) error
	List(ctx context.Context, soloActivas bool) ([]model.Categoria, error)
	CountMateriales(ctx context.Context, categoriaID string) (int64, error)
}

type categoriaRepo struct {
	db *gorm.DB
}

// NewCategoriaRepo crea la implementación GORM
func NewCategoriaRepo(db *gorm.DB) CategoriaRepository {
	return &categoriaRepo{db: db}
}

func (r *categoriaRepo) Create(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepo) GetByID(ctx context.Context, id string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).
		Where("categoria_id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) GetByNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) = LOWER(?)", nombre).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) Update(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepo) List(ctx context.Context, soloActivas bool) ([]model.Categoria, error) {
	var categorias []model.Categoria
	db := r.db.WithContext(ctx)
	if soloActivas {
		db = db.Where("activo")
	}
	err := db.Order("nombre ASC").Find(&categorias).Error
	if err != nil {
		return nil, err
	}
	return categorias, nil
}

// CountMateriales materiales activos que referencian la categoría; una
// categoría con materiales no puede desactivarse.
func (r *categoriaRepo) CountMateriales(ctx context.Context, categoriaID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Material{}).
		Where("categoria_id = ? AND activo", categoriaID).
		Count(&total).Error
	return total, err
}
