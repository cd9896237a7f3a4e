package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

// MaterialRepository acceso a datos del catálogo de materiales
type MaterialRepository interface {
	Create(ctx context.Context, m *model.Material) error
	GetByID(ctx context.Context, id string) (*model.Material, error)
	GetByNombre(ctx context.Context, nombre string) (*model.Material, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Material, error)
	Update(ctx context.Context, m *model.Material) error
	List(ctx context.Context, q dto.MaterialesQuery) ([]model.Material, int64, error)
	// ListParaDocente materiales activos visibles para docentes del centro:
	// disponibles globalmente o asignados al centro
	ListParaDocente(ctx context.Context, centroID string) ([]model.Material, error)
	CountByCategoria(ctx context.Context) ([]dto.ConteoPorClave, error)
}

type materialRepo struct {
	db *gorm.DB
}

// NewMaterialRepo crea la implementación GORM
func NewMaterialRepo(db *gorm.DB) MaterialRepository {
	return &materialRepo{db: db}
}

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) GetByID(ctx context.Context, id string) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Where("material_id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) GetByNombre(ctx context.Context, nombre string) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) = LOWER(?)", nombre).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Material, error) {
	var materiales []model.Material
	if len(ids) == 0 {
		return materiales, nil
	}
	err := r.db.WithContext(ctx).
		Where("material_id IN ?", ids).
		Find(&materiales).Error
	if err != nil {
		return nil, err
	}
	return materiales, nil
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materialRepo) List(ctx context.Context, q dto.MaterialesQuery) ([]model.Material, int64, error) {
	var materiales []model.Material
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Material{})
	if q.CategoriaID != "" {
		db = db.Where("categoria_id = ?", q.CategoriaID)
	}
	if q.CentroID != "" {
		db = db.Where("? = ANY(centros_asignados)", q.CentroID)
	}
	if q.Buscar != "" {
		db = db.Where("nombre ILIKE ?", "%"+q.Buscar+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("Categoria").
		Offset(q.Offset()).Limit(q.Size()).
		Order("nombre ASC").
		Find(&materiales).Error; err != nil {
		return nil, 0, err
	}
	return materiales, total, nil
}

func (r *materialRepo) ListParaDocente(ctx context.Context, centroID string) ([]model.Material, error) {
	var materiales []model.Material
	db := r.db.WithContext(ctx).
		Preload("Categoria").
		Where("activo")
	if centroID == "" {
		db = db.Where("disponible_para_docentes")
	} else {
		db = db.Where("disponible_para_docentes OR ? = ANY(centros_asignados)", centroID)
	}
	err := db.Order("nombre ASC").Find(&materiales).Error
	if err != nil {
		return nil, err
	}
	return materiales, nil
}

func (r *materialRepo) CountByCategoria(ctx context.Context) ([]dto.ConteoPorClave, error) {
	var filas []dto.ConteoPorClave
	err := r.db.WithContext(ctx).
		Model(&model.Material{}).
		Select("categorias.categoria_id AS clave, categorias.nombre AS nombre, COUNT(*) AS total").
		Joins("JOIN categorias ON categorias.categoria_id = materiales.categoria_id").
		Where("materiales.activo").
		Group("categorias.categoria_id, categorias.nombre").
		Order("nombre").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}
	return filas, nil
}
