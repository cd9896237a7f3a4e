package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

// UsuarioRepository acceso a datos de cuentas de usuario
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	GetByID(ctx context.Context, id string) (*model.Usuario, error)
	GetByCorreo(ctx context.Context, correo string) (*model.Usuario, error)
	GetByResetToken(ctx context.Context, token string) (*model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	RegistrarLogin(ctx context.Context, id string, cuando time.Time) error
	List(ctx context.Context, q dto.UsuariosQuery) ([]model.Usuario, int64, error)
	CountByRol(ctx context.Context) (map[string]int64, error)
}

// usuarioRepo implementación GORM de UsuarioRepository
type usuarioRepo struct {
	db *gorm.DB
}

// NewUsuarioRepo crea la implementación GORM
func NewUsuarioRepo(db *gorm.DB) UsuarioRepository {
	return &usuarioRepo{db: db}
}

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) GetByID(ctx context.Context, id string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Preload("Centro").
		Where("usuario_id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) GetByCorreo(ctx context.Context, correo string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("LOWER(correo) = LOWER(?)", correo).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) GetByResetToken(ctx context.Context, token string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("reset_token = ?", token).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// RegistrarLogin actualiza solo la fecha del último ingreso, sin tocar
// updated_at ni el resto de columnas.
func (r *usuarioRepo) RegistrarLogin(ctx context.Context, id string, cuando time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Usuario{}).
		Where("usuario_id = ?", id).
		UpdateColumn("fecha_ultimo_login", cuando).Error
}

func (r *usuarioRepo) List(ctx context.Context, q dto.UsuariosQuery) ([]model.Usuario, int64, error) {
	var usuarios []model.Usuario
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Usuario{})
	if q.Rol != "" {
		db = db.Where("rol = ?", q.Rol)
	}
	if q.CentroID != "" {
		db = db.Where("centro_id = ?", q.CentroID)
	}
	if q.Estado != "" {
		db = db.Where("estado = ?", q.Estado)
	}
	if q.Buscar != "" {
		patron := "%" + q.Buscar + "%"
		db = db.Where("nombre ILIKE ? OR correo ILIKE ?", patron, patron)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("Centro").
		Offset(q.Offset()).Limit(q.Size()).
		Order("created_at DESC").
		Find(&usuarios).Error; err != nil {
		return nil, 0, err
	}
	return usuarios, total, nil
}

func (r *usuarioRepo) CountByRol(ctx context.Context) (map[string]int64, error) {
	type fila struct {
		Rol   string
		Total int64
	}
	var filas []fila
	err := r.db.WithContext(ctx).
		Model(&model.Usuario{}).
		Select("rol, COUNT(*) AS total").
		Where("activo").
		Group("rol").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}
	conteo := make(map[string]int64, len(filas))
	for _, f := range filas {
		conteo[f.Rol] = f.Total
	}
	return conteo, nil
}
