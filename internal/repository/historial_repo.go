package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

// HistorialRepository acceso a la bitácora. Solo inserta y lista; las
// entradas nunca se actualizan ni se borran.
type HistorialRepository interface {
	Create(ctx context.Context, h *model.Historial) error
	List(ctx context.Context, q dto.PageQuery, usuarioID, entidad string) ([]model.Historial, int64, error)
}

type historialRepo struct {
	db *gorm.DB
}

// NewHistorialRepo crea la implementación GORM
func NewHistorialRepo(db *gorm.DB) HistorialRepository {
	return &historialRepo{db: db}
}

func (r *historialRepo) Create(ctx context.Context, h *model.Historial) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *historialRepo) List(ctx context.Context, q dto.PageQuery, usuarioID, entidad string) ([]model.Historial, int64, error) {
	var entradas []model.Historial
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Historial{})
	if usuarioID != "" {
		db = db.Where("usuario_id = ?", usuarioID)
	}
	if entidad != "" {
		db = db.Where("entidad = ?", entidad)
	}
	if q.Buscar != "" {
		db = db.Where("accion ILIKE ?", "%"+q.Buscar+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("Usuario").
		Offset(q.Offset()).Limit(q.Size()).
		Order("created_at DESC").
		Find(&entradas).Error; err != nil {
		return nil, 0, err
	}
	return entradas, total, nil
}
