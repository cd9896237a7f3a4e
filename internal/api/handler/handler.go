package handler

import "github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"

// Handler agregado de todos los manejadores HTTP
type Handler struct {
	Auth          *AuthHandler
	Usuario       *UsuarioHandler
	Estudiante    *EstudianteHandler
	Centro        *CentroHandler
	Nivel         *NivelHandler
	Categoria     *CategoriaHandler
	Material      *MaterialHandler
	Lista         *ListaHandler
	Soporte       *SoporteHandler
	Configuracion *ConfiguracionHandler
	Historial     *HistorialHandler
	Reporte       *ReporteHandler
}

// NewHandler construye el agregado a partir de los servicios
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth),
		Usuario:       NewUsuarioHandler(svc.Usuario),
		Estudiante:    NewEstudianteHandler(svc.Estudiante),
		Centro:        NewCentroHandler(svc.Centro),
		Nivel:         NewNivelHandler(svc.Nivel),
		Categoria:     NewCategoriaHandler(svc.Categoria),
		Material:      NewMaterialHandler(svc.Material),
		Lista:         NewListaHandler(svc.Lista),
		Soporte:       NewSoporteHandler(svc.Soporte),
		Configuracion: NewConfiguracionHandler(svc.Configuracion),
		Historial:     NewHistorialHandler(svc.Historial),
		Reporte:       NewReporteHandler(svc.Reporte),
	}
}
