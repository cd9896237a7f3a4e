package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

// CentroRepository acceso a datos de centros educativos
type CentroRepository interface {
	Create(ctx context.Context, c *model.CentroEducativo) error
	GetByID(ctx context.Context, id string) (*model.CentroEducativo, error)
	GetByCodigoMEP(ctx context.Context, codigo string) (*model.CentroEducativo, error)
	Update(ctx context.Context, c *model.CentroEducativo) error
	List(ctx context.Context, q dto.CentrosQuery) ([]model.CentroEducativo, int64, error)
	ListActivos(ctx context.Context) ([]model.CentroEducativo, error)
	Count(ctx context.Context) (int64, error)
}

type centroRepo struct {
	db *gorm.DB
}

// NewCentroRepo crea la implementación GORM
func NewCentroRepo(db *gorm.DB) CentroRepository {
	return &centroRepo{db: db}
}

func (r *centroRepo) Create(ctx context.Context, c *model.CentroEducativo) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *centroRepo) GetByID(ctx context.Context, id string) (*model.CentroEducativo, error) {
	var c model.CentroEducativo
	err := r.db.WithContext(ctx).
		Where("centro_id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *centroRepo) GetByCodigoMEP(ctx context.Context, codigo string) (*model.CentroEducativo, error) {
	var c model.CentroEducativo
	err := r.db.WithContext(ctx).
		Where("codigo_mep = ?", codigo).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *centroRepo) Update(ctx context.Context, c *model.CentroEducativo) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *centroRepo) List(ctx context.Context, q dto.CentrosQuery) ([]model.CentroEducativo, int64, error) {
	var centros []model.CentroEducativo
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CentroEducativo{})
	if q.Provincia != "" {
		db = db.Where("provincia = ?", q.Provincia)
	}
	if q.Estado != "" {
		db = db.Where("estado = ?", q.Estado)
	}
	if q.Buscar != "" {
		patron := "%" + q.Buscar + "%"
		db = db.Where("nombre ILIKE ? OR codigo_mep ILIKE ?", patron, patron)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Offset(q.Offset()).Limit(q.Size()).
		Order("nombre ASC").
		Find(&centros).Error; err != nil {
		return nil, 0, err
	}
	return centros, total, nil
}

// ListActivos lista pública para el formulario de autorregistro;
// solo nombre y ubicación de centros activos, sin paginar.
func (r *centroRepo) ListActivos(ctx context.Context) ([]model.CentroEducativo, error) {
	var centros []model.CentroEducativo
	err := r.db.WithContext(ctx).
		Select("centro_id", "nombre", "provincia", "canton", "distrito", "tipo_institucion").
		Where("estado = ?", model.EstadoActivo).
		Order("nombre ASC").
		Find(&centros).Error
	if err != nil {
		return nil, err
	}
	return centros, nil
}

func (r *centroRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.CentroEducativo{}).
		Where("estado = ?", model.EstadoActivo).
		Count(&total).Error
	return total, err
}
