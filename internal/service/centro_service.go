package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

var (
	ErrCodigoMEPRegistrado = errors.New("el código MEP ya está registrado")
	ErrProvinciaInvalida   = errors.New("provincia inválida")
)

// CentroService gestión de centros educativos (solo coordinador) y la
// lista pública para el formulario de registro
type CentroService interface {
	Crear(ctx context.Context, creador *model.Usuario, req *dto.CrearCentroRequest) (*model.CentroEducativo, error)
	Obtener(ctx context.Context, id string) (*model.CentroEducativo, error)
	Actualizar(ctx context.Context, editor *model.Usuario, id string, req *dto.ActualizarCentroRequest) (*model.CentroEducativo, error)
	Desactivar(ctx context.Context, editor *model.Usuario, id string) error
	Listar(ctx context.Context, q dto.CentrosQuery) ([]model.CentroEducativo, int64, error)
	ListaPublica(ctx context.Context) ([]model.CentroEducativo, error)
}

type centroService struct {
	repo      *repository.Repository
	historial HistorialService
	logger    *zap.Logger
}

// NewCentroService crea el servicio de centros
func NewCentroService(repo *repository.Repository, historial HistorialService, logger *zap.Logger) CentroService {
	return &centroService{repo: repo, historial: historial, logger: logger}
}

func (s *centroService) Crear(ctx context.Context, creador *model.Usuario, req *dto.CrearCentroRequest) (*model.CentroEducativo, error) {
	if !model.ProvinciaValida(req.Provincia) {
		return nil, ErrProvinciaInvalida
	}
	if req.CodigoMEP != nil && *req.CodigoMEP != "" {
		if _, err := s.repo.Centro.GetByCodigoMEP(ctx, *req.CodigoMEP); err == nil {
			return nil, ErrCodigoMEPRegistrado
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	centro := &model.CentroEducativo{
		Nombre:              strings.TrimSpace(req.Nombre),
		CodigoMEP:           req.CodigoMEP,
		Provincia:           req.Provincia,
		Canton:              req.Canton,
		Distrito:            req.Distrito,
		ResponsableNombre:   req.ResponsableNombre,
		ResponsableTelefono: req.ResponsableTelefono,
		ResponsableEmail:    strings.ToLower(req.ResponsableEmail),
		Ubicacion:           req.Ubicacion,
		TipoInstitucion:     req.TipoInstitucion,
		NivelesOfrecidos:    model.StringArray(req.NivelesOfrecidos),
		Estado:              model.EstadoActivo,
	}
	centro.CreadoPor = &creador.UsuarioID

	if err := s.repo.Centro.Create(ctx, centro); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, creador.UsuarioID, creador.Rol, "creación de centro educativo",
		ptr("centro"), &centro.CentroID, &centro.Nombre)
	return centro, nil
}

func (s *centroService) Obtener(ctx context.Context, id string) (*model.CentroEducativo, error) {
	centro, err := s.repo.Centro.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCentroNoEncontrado
		}
		return nil, err
	}
	return centro, nil
}

func (s *centroService) Actualizar(ctx context.Context, editor *model.Usuario, id string, req *dto.ActualizarCentroRequest) (*model.CentroEducativo, error) {
	centro, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CodigoMEP != nil && *req.CodigoMEP != "" &&
		(centro.CodigoMEP == nil || *centro.CodigoMEP != *req.CodigoMEP) {
		if otro, err := s.repo.Centro.GetByCodigoMEP(ctx, *req.CodigoMEP); err == nil && otro.CentroID != id {
			return nil, ErrCodigoMEPRegistrado
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		centro.CodigoMEP = req.CodigoMEP
	}
	if req.Nombre != nil {
		centro.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Provincia != nil {
		if !model.ProvinciaValida(*req.Provincia) {
			return nil, ErrProvinciaInvalida
		}
		centro.Provincia = *req.Provincia
	}
	if req.Canton != nil {
		centro.Canton = *req.Canton
	}
	if req.Distrito != nil {
		centro.Distrito = *req.Distrito
	}
	if req.ResponsableNombre != nil {
		centro.ResponsableNombre = *req.ResponsableNombre
	}
	if req.ResponsableTelefono != nil {
		centro.ResponsableTelefono = req.ResponsableTelefono
	}
	if req.ResponsableEmail != nil {
		centro.ResponsableEmail = strings.ToLower(*req.ResponsableEmail)
	}
	if req.Ubicacion != nil {
		centro.Ubicacion = *req.Ubicacion
	}
	if req.TipoInstitucion != nil {
		centro.TipoInstitucion = *req.TipoInstitucion
	}
	if req.NivelesOfrecidos != nil {
		centro.NivelesOfrecidos = model.StringArray(req.NivelesOfrecidos)
	}
	if req.Estado != nil {
		centro.Estado = *req.Estado
	}
	centro.ActualizadoPor = &editor.UsuarioID

	if err := s.repo.Centro.Update(ctx, centro); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, editor.UsuarioID, editor.Rol, "actualización de centro educativo",
		ptr("centro"), &centro.CentroID, nil)
	return centro, nil
}

// Desactivar baja lógica; los usuarios y listas del centro se conservan.
func (s *centroService) Desactivar(ctx context.Context, editor *model.Usuario, id string) error {
	centro, err := s.Obtener(ctx, id)
	if err != nil {
		return err
	}
	centro.Estado = model.EstadoInactivo
	centro.ActualizadoPor = &editor.UsuarioID
	if err := s.repo.Centro.Update(ctx, centro); err != nil {
		return err
	}
	s.historial.Registrar(ctx, editor.UsuarioID, editor.Rol, "desactivación de centro educativo",
		ptr("centro"), &centro.CentroID, &centro.Nombre)
	return nil
}

func (s *centroService) Listar(ctx context.Context, q dto.CentrosQuery) ([]model.CentroEducativo, int64, error) {
	return s.repo.Centro.List(ctx, q)
}

// ListaPublica centros activos sin autenticación, para el autorregistro.
func (s *centroService) ListaPublica(ctx context.Context) ([]model.CentroEducativo, error) {
	return s.repo.Centro.ListActivos(ctx)
}
