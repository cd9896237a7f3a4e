package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/authz"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

var (
	ErrListaNoEncontrada   = errors.New("lista no encontrada")
	ErrListaSinMateriales  = errors.New("la lista debe tener al menos un material")
	ErrMaterialNoPermitido = errors.New("el material no está disponible para el docente")
	ErrCantidadInvalida    = errors.New("la cantidad de cada material debe ser mayor que cero")
	ErrFechaLimiteInvalida = errors.New("la fecha límite es inválida")
)

// ListaVistaPadre listas agrupadas por estudiante para la vista del padre
type ListaVistaPadre struct {
	Estudiante model.Estudiante    `json:"estudiante"`
	Listas     []model.ListaUtiles `json:"listas"`
}

// ListaService creación y consulta de listas de útiles
type ListaService interface {
	Crear(ctx context.Context, docente *model.Usuario, req *dto.CrearListaRequest) (*model.ListaUtiles, error)
	Obtener(ctx context.Context, caller *model.Usuario, id string) (*model.ListaUtiles, error)
	Actualizar(ctx context.Context, caller *model.Usuario, id string, req *dto.ActualizarListaRequest) (*model.ListaUtiles, error)
	Desactivar(ctx context.Context, caller *model.Usuario, id string) error
	Listar(ctx context.Context, caller *model.Usuario, q dto.ListasQuery) ([]model.ListaUtiles, int64, error)
	MisListas(ctx context.Context, docenteID string) ([]model.ListaUtiles, error)
	// VistaPadre listas activas por cada estudiante del padre según su nivel
	VistaPadre(ctx context.Context, padreID string) ([]ListaVistaPadre, error)
}

type listaService struct {
	repo      *repository.Repository
	historial HistorialService
	logger    *zap.Logger
}

// NewListaService crea el servicio de listas
func NewListaService(repo *repository.Repository, historial HistorialService, logger *zap.Logger) ListaService {
	return &listaService{repo: repo, historial: historial, logger: logger}
}

// validarMateriales comprueba cantidades y que cada material exista, esté
// activo y sea visible para el docente
func (s *listaService) validarMateriales(ctx context.Context, docente *model.Usuario, items []model.ItemMaterial) error {
	if len(items) == 0 {
		return ErrListaSinMateriales
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.Cantidad <= 0 {
			return ErrCantidadInvalida
		}
		ids = append(ids, item.MaterialID)
	}

	materiales, err := s.repo.Material.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	porID := make(map[string]*model.Material, len(materiales))
	for i := range materiales {
		porID[materiales[i].MaterialID] = &materiales[i]
	}

	for _, item := range items {
		m, ok := porID[item.MaterialID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMaterialNoEncontrado, item.MaterialID)
		}
		if !m.Activo {
			return fmt.Errorf("%w: %s", ErrMaterialNoPermitido, m.Nombre)
		}
		if !m.DisponibleParaDocentes {
			if docente.CentroID == nil || !m.CentrosAsignados.Contains(*docente.CentroID) {
				return fmt.Errorf("%w: %s", ErrMaterialNoPermitido, m.Nombre)
			}
		}
	}
	return nil
}

func parseFechaLimite(valor string) (*time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if fecha, err := time.Parse(layout, valor); err == nil {
			return &fecha, nil
		}
	}
	return nil, ErrFechaLimiteInvalida
}

func (s *listaService) Crear(ctx context.Context, docente *model.Usuario, req *dto.CrearListaRequest) (*model.ListaUtiles, error) {
	if !authz.CanPerform(docente.Rol, authz.ListaCrear) {
		return nil, ErrAccesoDenegado
	}

	nivel := req.NivelNormalizado()
	if nivel == "" {
		return nil, ErrNivelInvalido
	}
	if err := s.validarMateriales(ctx, docente, req.Materiales); err != nil {
		return nil, err
	}

	lista := &model.ListaUtiles{
		Nombre:         strings.TrimSpace(req.Nombre),
		NivelEducativo: nivel,
		Materiales:     model.ItemsMaterial(req.Materiales),
		CreadoPorID:    docente.UsuarioID,
		CentroID:       docente.CentroID,
		Activo:         true,
	}
	if req.FechaLimite != nil && *req.FechaLimite != "" {
		fecha, err := parseFechaLimite(*req.FechaLimite)
		if err != nil {
			return nil, err
		}
		lista.FechaLimite = fecha
	}

	if err := s.repo.Lista.Create(ctx, lista); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, docente.UsuarioID, docente.Rol, "creación de lista de útiles",
		ptr("lista"), &lista.ListaID, &lista.Nombre)
	return lista, nil
}

func (s *listaService) Obtener(ctx context.Context, caller *model.Usuario, id string) (*model.ListaUtiles, error) {
	lista, err := s.repo.Lista.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListaNoEncontrada
		}
		return nil, err
	}
	if !s.puedeVer(caller, lista) {
		return nil, ErrAccesoDenegado
	}
	return lista, nil
}

func (s *listaService) puedeVer(caller *model.Usuario, lista *model.ListaUtiles) bool {
	if authz.CanPerform(caller.Rol, authz.ListaVerTodas) {
		return true
	}
	if authz.EsPropietario(caller.UsuarioID, lista.CreadoPorID) {
		return true
	}
	// los padres ven cualquier lista activa; el filtrado por nivel de sus
	// estudiantes ocurre en VistaPadre
	return caller.Rol == model.RolPadre && lista.Activo
}

func (s *listaService) Actualizar(ctx context.Context, caller *model.Usuario, id string, req *dto.ActualizarListaRequest) (*model.ListaUtiles, error) {
	lista, err := s.repo.Lista.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListaNoEncontrada
		}
		return nil, err
	}
	// solo el docente dueño modifica su lista
	if !authz.EsPropietario(caller.UsuarioID, lista.CreadoPorID) {
		return nil, ErrAccesoDenegado
	}

	if req.Nombre != nil {
		lista.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if nivel := req.NivelNormalizado(); nivel != nil {
		lista.NivelEducativo = *nivel
	}
	if req.Materiales != nil {
		if err := s.validarMateriales(ctx, caller, req.Materiales); err != nil {
			return nil, err
		}
		lista.Materiales = model.ItemsMaterial(req.Materiales)
	}
	if req.FechaLimite != nil {
		if *req.FechaLimite == "" {
			lista.FechaLimite = nil
		} else {
			fecha, err := parseFechaLimite(*req.FechaLimite)
			if err != nil {
				return nil, err
			}
			lista.FechaLimite = fecha
		}
	}
	if req.Activo != nil {
		lista.Activo = *req.Activo
	}
	lista.ActualizadoPor = &caller.UsuarioID

	if err := s.repo.Lista.Update(ctx, lista); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, caller.UsuarioID, caller.Rol, "actualización de lista de útiles",
		ptr("lista"), &lista.ListaID, nil)
	return lista, nil
}

// Desactivar baja lógica de la lista por su docente o por quien ve todas.
func (s *listaService) Desactivar(ctx context.Context, caller *model.Usuario, id string) error {
	lista, err := s.repo.Lista.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListaNoEncontrada
		}
		return err
	}
	if !authz.EsPropietario(caller.UsuarioID, lista.CreadoPorID) &&
		!authz.CanPerform(caller.Rol, authz.ListaVerTodas) {
		return ErrAccesoDenegado
	}
	lista.Activo = false
	lista.ActualizadoPor = &caller.UsuarioID
	if err := s.repo.Lista.Update(ctx, lista); err != nil {
		return err
	}
	s.historial.Registrar(ctx, caller.UsuarioID, caller.Rol, "desactivación de lista de útiles",
		ptr("lista"), &lista.ListaID, &lista.Nombre)
	return nil
}

func (s *listaService) Listar(ctx context.Context, caller *model.Usuario, q dto.ListasQuery) ([]model.ListaUtiles, int64, error) {
	// un docente solo lista las suyas
	if !authz.CanPerform(caller.Rol, authz.ListaVerTodas) {
		q.Docente = caller.UsuarioID
	}
	return s.repo.Lista.List(ctx, q)
}

func (s *listaService) MisListas(ctx context.Context, docenteID string) ([]model.ListaUtiles, error) {
	return s.repo.Lista.ListByDocente(ctx, docenteID)
}

func (s *listaService) VistaPadre(ctx context.Context, padreID string) ([]ListaVistaPadre, error) {
	estudiantes, err := s.repo.Estudiante.ListByPadre(ctx, padreID)
	if err != nil {
		return nil, err
	}

	niveles := make([]string, 0, len(estudiantes))
	visto := make(map[string]bool)
	for _, e := range estudiantes {
		if e.Estado == model.EstadoActivo && !visto[e.Nivel] {
			visto[e.Nivel] = true
			niveles = append(niveles, e.Nivel)
		}
	}

	listas, err := s.repo.Lista.ListParaNiveles(ctx, niveles)
	if err != nil {
		return nil, err
	}
	porNivel := make(map[string][]model.ListaUtiles)
	for _, l := range listas {
		porNivel[l.NivelEducativo] = append(porNivel[l.NivelEducativo], l)
	}

	vista := make([]ListaVistaPadre, 0, len(estudiantes))
	for _, e := range estudiantes {
		if e.Estado != model.EstadoActivo {
			continue
		}
		vista = append(vista, ListaVistaPadre{
			Estudiante: e,
			Listas:     porNivel[e.Nivel],
		})
	}
	return vista, nil
}
