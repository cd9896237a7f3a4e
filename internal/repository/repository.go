package repository

import "gorm.io/gorm"

// Repository agregado de acceso a datos; un campo por entidad
type Repository struct {
	Usuario       UsuarioRepository
	Estudiante    EstudianteRepository
	Centro        CentroRepository
	Nivel         NivelRepository
	Categoria     CategoriaRepository
	Material      MaterialRepository
	Lista         ListaRepository
	Soporte       SoporteRepository
	Configuracion ConfiguracionRepository
	Historial     HistorialRepository
}

// NewRepository construye el agregado sobre una conexión GORM
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Usuario:       NewUsuarioRepo(db),
		Estudiante:    NewEstudianteRepo(db),
		Centro:        NewCentroRepo(db),
		Nivel:         NewNivelRepo(db),
		Categoria:     NewCategoriaRepo(db),
		Material:      NewMaterialRepo(db),
		Lista:         NewListaRepo(db),
		Soporte:       NewSoporteRepo(db),
		Configuracion: NewConfiguracionRepo(db),
		Historial:     NewHistorialRepo(db),
	}
}
