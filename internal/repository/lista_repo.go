package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

// ListaRepository acceso a datos de listas de útiles
type ListaRepository interface {
	Create(ctx context.Context, l *model.ListaUtiles) error
	GetByID(ctx context.Context, id string) (*model.ListaUtiles, error)
	Update(ctx context.Context, l *model.ListaUtiles) error
	List(ctx context.Context, q dto.ListasQuery) ([]model.ListaUtiles, int64, error)
	ListByDocente(ctx context.Context, docenteID string) ([]model.ListaUtiles, error)
	// ListParaNiveles listas activas cuyo nivel está en el conjunto dado;
	// alimenta la vista del padre según los niveles de sus estudiantes
	ListParaNiveles(ctx context.Context, niveles []string) ([]model.ListaUtiles, error)
	ListConFechaLimite(ctx context.Context) ([]model.ListaUtiles, error)
	CountByNivel(ctx context.Context) ([]dto.ConteoPorClave, error)
	CountByDocente(ctx context.Context) ([]dto.ConteoPorClave, error)
}

type listaRepo struct {
	db *gorm.DB
}

// NewListaRepo crea la implementación GORM
func NewListaRepo(db *gorm.DB) ListaRepository {
	return &listaRepo{db: db}
}

func (r *listaRepo) Create(ctx context.Context, l *model.ListaUtiles) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *listaRepo) GetByID(ctx context.Context, id string) (*model.ListaUtiles, error) {
	var l model.ListaUtiles
	err := r.db.WithContext(ctx).
		Preload("Docente").
		Preload("Centro").
		Where("lista_id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listaRepo) Update(ctx context.Context, l *model.ListaUtiles) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *listaRepo) List(ctx context.Context, q dto.ListasQuery) ([]model.ListaUtiles, int64, error) {
	var listas []model.ListaUtiles
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ListaUtiles{})
	if q.Nivel != "" {
		db = db.Where("nivel_educativo = ?", q.Nivel)
	}
	if q.CentroID != "" {
		db = db.Where("centro_id = ?", q.CentroID)
	}
	if q.Docente != "" {
		db = db.Where("creado_por = ?", q.Docente)
	}
	if q.Buscar != "" {
		db = db.Where("nombre ILIKE ?", "%"+q.Buscar+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("Docente").Preload("Centro").
		Offset(q.Offset()).Limit(q.Size()).
		Order("created_at DESC").
		Find(&listas).Error; err != nil {
		return nil, 0, err
	}
	return listas, total, nil
}

func (r *listaRepo) ListByDocente(ctx context.Context, docenteID string) ([]model.ListaUtiles, error) {
	var listas []model.ListaUtiles
	err := r.db.WithContext(ctx).
		Where("creado_por = ?", docenteID).
		Order("created_at DESC").
		Find(&listas).Error
	if err != nil {
		return nil, err
	}
	return listas, nil
}

func (r *listaRepo) ListParaNiveles(ctx context.Context, niveles []string) ([]model.ListaUtiles, error) {
	var listas []model.ListaUtiles
	if len(niveles) == 0 {
		return listas, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Docente").
		Preload("Centro").
		Where("activo AND nivel_educativo IN ?", niveles).
		Order("nivel_educativo, created_at DESC").
		Find(&listas).Error
	if err != nil {
		return nil, err
	}
	return listas, nil
}

func (r *listaRepo) ListConFechaLimite(ctx context.Context) ([]model.ListaUtiles, error) {
	var listas []model.ListaUtiles
	err := r.db.WithContext(ctx).
		Preload("Docente").
		Where("activo AND fecha_limite IS NOT NULL").
		Order("fecha_limite ASC").
		Find(&listas).Error
	if err != nil {
		return nil, err
	}
	return listas, nil
}

func (r *listaRepo) CountByNivel(ctx context.Context) ([]dto.ConteoPorClave, error) {
	var filas []dto.ConteoPorClave
	err := r.db.WithContext(ctx).
		Model(&model.ListaUtiles{}).
		Select("nivel_educativo AS clave, nivel_educativo AS nombre, COUNT(*) AS total").
		Where("activo").
		Group("nivel_educativo").
		Order("nivel_educativo").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}
	return filas, nil
}

func (r *listaRepo) CountByDocente(ctx context.Context) ([]dto.ConteoPorClave, error) {
	var filas []dto.ConteoPorClave
	err := r.db.WithContext(ctx).
		Model(&model.ListaUtiles{}).
		Select("usuarios.usuario_id AS clave, usuarios.nombre AS nombre, COUNT(*) AS total").
		Joins("JOIN usuarios ON usuarios.usuario_id = listas_utiles.creado_por").
		Where("listas_utiles.activo").
		Group("usuarios.usuario_id, usuarios.nombre").
		Order("nombre").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}
	return filas, nil
}
