package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

// SoporteRepository acceso a datos de mensajes de soporte
type SoporteRepository interface {
	Create(ctx context.Context, s *model.Soporte) error
	GetByID(ctx context.Context, id string) (*model.Soporte, error)
	Update(ctx context.Context, s *model.Soporte) error
	List(ctx context.Context, q dto.SoporteQuery) ([]model.Soporte, int64, error)
	ListByUsuario(ctx context.Context, usuarioID string) ([]model.Soporte, error)
}

type soporteRepo struct {
	db *gorm.DB
}

// NewSoporteRepo crea la implementación GORM
func NewSoporteRepo(db *gorm.DB) SoporteRepository {
	return &soporteRepo{db: db}
}

func (r *soporteRepo) Create(ctx context.Context, s *model.Soporte) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *soporteRepo) GetByID(ctx context.Context, id string) (*model.Soporte, error) {
	var s model.Soporte
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Where("soporte_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *soporteRepo) Update(ctx context.Context, s *model.Soporte) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *soporteRepo) List(ctx context.Context, q dto.SoporteQuery) ([]model.Soporte, int64, error) {
	var mensajes []model.Soporte
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Soporte{})
	if q.Tipo != "" {
		db = db.Where("tipo = ?", q.Tipo)
	}
	if q.Estado != "" {
		db = db.Where("estado = ?", q.Estado)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("Usuario").
		Offset(q.Offset()).Limit(q.Size()).
		Order("created_at DESC").
		Find(&mensajes).Error; err != nil {
		return nil, 0, err
	}
	return mensajes, total, nil
}

func (r *soporteRepo) ListByUsuario(ctx context.Context, usuarioID string) ([]model.Soporte, error) {
	var mensajes []model.Soporte
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Find(&mensajes).Error
	if err != nil {
		return nil, err
	}
	return mensajes, nil
}
