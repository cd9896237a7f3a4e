package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

// EstudianteRepository acceso a datos de estudiantes
type EstudianteRepository interface {
	Create(ctx context.Context, e *model.Estudiante) error
	CreateBatch(ctx context.Context, estudiantes []model.Estudiante) error
	GetByID(ctx context.Context, id string) (*model.Estudiante, error)
	GetByCedula(ctx context.Context, cedula string) (*model.Estudiante, error)
	Update(ctx context.Context, e *model.Estudiante) error
	List(ctx context.Context, q dto.EstudiantesQuery) ([]model.Estudiante, int64, error)
	ListByPadre(ctx context.Context, padreID string) ([]model.Estudiante, error)
	CountByNivel(ctx context.Context, centroID string) ([]dto.ConteoPorClave, error)
}

type estudianteRepo struct {
	db *gorm.DB
}

// NewEstudianteRepo crea la implementación GORM
func NewEstudianteRepo(db *gorm.DB) EstudianteRepository {
	return &estudianteRepo{db: db}
}

func (r *estudianteRepo) Create(ctx context.Context, e *model.Estudiante) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// CreateBatch inserta los estudiantes del autorregistro en una sola
// transacción junto con los que ya trae la sesión.
func (r *estudianteRepo) CreateBatch(ctx context.Context, estudiantes []model.Estudiante) error {
	if len(estudiantes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&estudiantes).Error
}

func (r *estudianteRepo) GetByID(ctx context.Context, id string) (*model.Estudiante, error) {
	var e model.Estudiante
	err := r.db.WithContext(ctx).
		Preload("Centro").
		Where("estudiante_id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *estudianteRepo) GetByCedula(ctx context.Context, cedula string) (*model.Estudiante, error) {
	var e model.Estudiante
	err := r.db.WithContext(ctx).
		Where("cedula = ?", cedula).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *estudianteRepo) Update(ctx context.Context, e *model.Estudiante) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *estudianteRepo) List(ctx context.Context, q dto.EstudiantesQuery) ([]model.Estudiante, int64, error) {
	var estudiantes []model.Estudiante
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Estudiante{})
	if q.Nivel != "" {
		db = db.Where("nivel = ?", q.Nivel)
	}
	if q.Grado != "" {
		db = db.Where("grado = ?", q.Grado)
	}
	if q.CentroID != "" {
		db = db.Where("centro_id = ?", q.CentroID)
	}
	if q.PadreID != "" {
		db = db.Where("padre_id = ?", q.PadreID)
	}
	if q.Buscar != "" {
		patron := "%" + q.Buscar + "%"
		db = db.Where("nombre ILIKE ? OR cedula ILIKE ?", patron, patron)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("Centro").
		Offset(q.Offset()).Limit(q.Size()).
		Order("nombre ASC").
		Find(&estudiantes).Error; err != nil {
		return nil, 0, err
	}
	return estudiantes, total, nil
}

func (r *estudianteRepo) ListByPadre(ctx context.Context, padreID string) ([]model.Estudiante, error) {
	var estudiantes []model.Estudiante
	err := r.db.WithContext(ctx).
		Preload("Centro").
		Where("padre_id = ?", padreID).
		Order("nombre ASC").
		Find(&estudiantes).Error
	if err != nil {
		return nil, err
	}
	return estudiantes, nil
}

func (r *estudianteRepo) CountByNivel(ctx context.Context, centroID string) ([]dto.ConteoPorClave, error) {
	var filas []dto.ConteoPorClave
	db := r.db.WithContext(ctx).
		Model(&model.Estudiante{}).
		Select("nivel AS clave, nivel AS nombre, COUNT(*) AS total").
		Where("estado = ?", model.EstadoActivo)
	if centroID != "" {
		db = db.Where("centro_id = ?", centroID)
	}
	err := db.Group("nivel").Order("nivel").Scan(&filas).Error
	if err != nil {
		return nil, err
	}
	return filas, nil
}
