package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

// NivelRepository acceso a datos de niveles educativos
type NivelRepository interface {
	Create(ctx context.Context, n *model.NivelEducativo) error
	GetByID(ctx context.Context, id string) (*model.NivelEducativo, error)
	GetByNombreYAmbito(ctx context.Context, nombre, ambito string) (*model.NivelEducativo, error)
	Update(ctx context.Context, n *model.NivelEducativo) error
	// ListVisibles niveles del ámbito General más los del ámbito dado
	ListVisibles(ctx context.Context, ambito string) ([]model.NivelEducativo, error)
	ListByAmbito(ctx context.Context, ambito string) ([]model.NivelEducativo, error)
}

type nivelRepo struct {
	db *gorm.DB
}

// NewNivelRepo crea la implementación GORM
func NewNivelRepo(db *gorm.DB) NivelRepository {
	return &nivelRepo{db: db}
}

func (r *nivelRepo) Create(ctx context.Context, n *model.NivelEducativo) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *nivelRepo) GetByID(ctx context.Context, id string) (*model.NivelEducativo, error) {
	var n model.NivelEducativo
	err := r.db.WithContext(ctx).
		Where("nivel_id = ?", id).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *nivelRepo) GetByNombreYAmbito(ctx context.Context, nombre, ambito string) (*model.NivelEducativo, error) {
	var n model.NivelEducativo
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) = LOWER(?) AND ambito = ?", nombre, ambito).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *nivelRepo) Update(ctx context.Context, n *model.NivelEducativo) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *nivelRepo) ListVisibles(ctx context.Context, ambito string) ([]model.NivelEducativo, error) {
	var niveles []model.NivelEducativo
	db := r.db.WithContext(ctx).Where("activo")
	if ambito == "" || ambito == model.AmbitoGeneral {
		db = db.Where("ambito = ?", model.AmbitoGeneral)
	} else {
		db = db.Where("ambito IN ?", []string{model.AmbitoGeneral, ambito})
	}
	err := db.Order("ambito, nombre").Find(&niveles).Error
	if err != nil {
		return nil, err
	}
	return niveles, nil
}

func (r *nivelRepo) ListByAmbito(ctx context.Context, ambito string) ([]model.NivelEducativo, error) {
	var niveles []model.NivelEducativo
	err := r.db.WithContext(ctx).
		Where("ambito = ?", ambito).
		Order("nombre").
		Find(&niveles).Error
	if err != nil {
		return nil, err
	}
	return niveles, nil
}
