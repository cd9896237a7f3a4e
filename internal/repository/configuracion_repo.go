package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

// ConfiguracionRepository acceso al registro único de configuración global
type ConfiguracionRepository interface {
	// Get devuelve el registro; si no existe lo crea con los valores por
	// defecto. La restricción sobre el discriminador garantiza un único
	// registro aunque dos peticiones lo creen a la vez.
	Get(ctx context.Context) (*model.Configuracion, error)
	Update(ctx context.Context, c *model.Configuracion) error
}

type configuracionRepo struct {
	db *gorm.DB
}

// NewConfiguracionRepo crea la implementación GORM
func NewConfiguracionRepo(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) Get(ctx context.Context) (*model.Configuracion, error) {
	var c model.Configuracion
	err := r.db.WithContext(ctx).First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c = model.Configuracion{
		Singleton:      true,
		TextosNoticias: datatypes.NewJSONType(model.TextosNoticiasPorDefecto()),
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&c).Error; err != nil {
		return nil, err
	}
	// relee por si otra petición ganó la inserción
	if err := r.db.WithContext(ctx).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *configuracionRepo) Update(ctx context.Context, c *model.Configuracion) error {
	return r.db.WithContext(ctx).Save(c).Error
}
