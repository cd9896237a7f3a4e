package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/config"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/authz"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/mailer"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

var (
	ErrUsuarioNoEncontrado   = errors.New("usuario no encontrado")
	ErrRolNoPermitido        = errors.New("las cuentas de padres y estudiantes no se crean por esta vía")
	ErrCorreoNoInstitucional = errors.New("el correo debe pertenecer al dominio institucional")
	ErrCentroRequerido       = errors.New("el rol requiere un centro educativo asignado")
	ErrCentroNoEncontrado    = errors.New("centro educativo no encontrado")
	ErrAccesoDenegado        = errors.New("no tiene permisos para esta operación")
)

// UsuarioService gestión de cuentas por coordinadores y administradores,
// más el autoservicio de perfil
type UsuarioService interface {
	Crear(ctx context.Context, creador *model.Usuario, req *dto.CrearUsuarioRequest) (*model.Usuario, error)
	Obtener(ctx context.Context, id string) (*model.Usuario, error)
	Actualizar(ctx context.Context, editor *model.Usuario, id string, req *dto.ActualizarUsuarioRequest) (*model.Usuario, error)
	ActualizarPerfil(ctx context.Context, usuarioID string, req *dto.ActualizarPerfilRequest) (*model.Usuario, error)
	Desactivar(ctx context.Context, editor *model.Usuario, id string) error
	Listar(ctx context.Context, q dto.UsuariosQuery) ([]model.Usuario, int64, error)
}

type usuarioService struct {
	cfg       *config.Config
	repo      *repository.Repository
	mail      mailer.Mailer
	historial HistorialService
	logger    *zap.Logger
}

// NewUsuarioService crea el servicio de usuarios
func NewUsuarioService(
	cfg *config.Config,
	repo *repository.Repository,
	mail mailer.Mailer,
	historial HistorialService,
	logger *zap.Logger,
) UsuarioService {
	return &usuarioService{cfg: cfg, repo: repo, mail: mail, historial: historial, logger: logger}
}

func (s *usuarioService) Crear(ctx context.Context, creador *model.Usuario, req *dto.CrearUsuarioRequest) (*model.Usuario, error) {
	if !authz.PuedeCrearRol(creador.Rol, req.Rol) {
		return nil, ErrRolNoPermitido
	}
	if len(req.Contrasena()) < largoMinimoContrasena {
		return nil, ErrContrasenaCorta
	}

	correo := strings.ToLower(strings.TrimSpace(req.Correo))
	if model.RolRequiereCorreoInstitucional(req.Rol) &&
		!strings.HasSuffix(correo, s.cfg.Institucion.DominioCorreo) {
		return nil, ErrCorreoNoInstitucional
	}

	if _, err := s.repo.Usuario.GetByCorreo(ctx, correo); err == nil {
		return nil, ErrCorreoRegistrado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	centroID := req.CentroID
	if model.RolRequiereCentro(req.Rol) {
		// un administrador solo aprovisiona cuentas de su propio centro
		if creador.Rol == model.RolAdministrador {
			centroID = creador.CentroID
		}
		if centroID == nil || *centroID == "" {
			return nil, ErrCentroRequerido
		}
		if _, err := s.repo.Centro.GetByID(ctx, *centroID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCentroNoEncontrado
			}
			return nil, err
		}
	}

	if req.Cedula != nil && *req.Cedula != "" && !model.CedulaValida(*req.Cedula) {
		return nil, ErrCedulaInvalida
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	usuario := &model.Usuario{
		Nombre:         strings.TrimSpace(req.Nombre),
		Correo:         correo,
		ContrasenaHash: string(hash),
		Rol:            req.Rol,
		CentroID:       centroID,
		Estado:         model.EstadoActivo,
		Activo:         true,
		Cedula:         req.Cedula,
		Telefono:       req.Telefono,
		Direccion:      req.Direccion,
	}
	usuario.CreadoPor = &creador.UsuarioID
	if err := s.repo.Usuario.Create(ctx, usuario); err != nil {
		return nil, err
	}

	if err := s.mail.EnviarBienvenida(ctx, usuario.Correo, usuario.Nombre, usuario.Rol); err != nil {
		// la cuenta ya existe; el correo de bienvenida no es crítico
		s.logger.Warn("no se pudo enviar el correo de bienvenida",
			zap.String("correo", usuario.Correo), zap.Error(err))
	}

	s.historial.Registrar(ctx, creador.UsuarioID, creador.Rol, "creación de usuario "+usuario.Rol,
		ptr("usuario"), &usuario.UsuarioID, &usuario.Correo)

	return usuario, nil
}

func (s *usuarioService) Obtener(ctx context.Context, id string) (*model.Usuario, error) {
	usuario, err := s.repo.Usuario.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	return usuario, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, editor *model.Usuario, id string, req *dto.ActualizarUsuarioRequest) (*model.Usuario, error) {
	if !authz.PuedeEditarPerfil(editor.Rol, editor.UsuarioID, id) {
		return nil, ErrAccesoDenegado
	}

	usuario, err := s.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	// estado, activo, correo y centro son cambios administrativos
	esAdministrativo := authz.CanPerform(editor.Rol, authz.UsuarioEditar)
	if !esAdministrativo && (req.Estado != nil || req.Activo != nil || req.Correo != nil || req.CentroID != nil) {
		return nil, ErrAccesoDenegado
	}

	if req.Nombre != nil {
		usuario.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Correo != nil {
		correo := strings.ToLower(strings.TrimSpace(*req.Correo))
		if model.RolRequiereCorreoInstitucional(usuario.Rol) &&
			!strings.HasSuffix(correo, s.cfg.Institucion.DominioCorreo) {
			return nil, ErrCorreoNoInstitucional
		}
		usuario.Correo = correo
	}
	if req.CentroID != nil {
		if _, err := s.repo.Centro.GetByID(ctx, *req.CentroID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCentroNoEncontrado
			}
			return nil, err
		}
		usuario.CentroID = req.CentroID
	}
	if req.Estado != nil {
		usuario.Estado = *req.Estado
	}
	if req.Activo != nil {
		usuario.Activo = *req.Activo
	}
	if req.Telefono != nil {
		usuario.Telefono = req.Telefono
	}
	if req.Direccion != nil {
		usuario.Direccion = req.Direccion
	}
	usuario.ActualizadoPor = &editor.UsuarioID

	if err := s.repo.Usuario.Update(ctx, usuario); err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, editor.UsuarioID, editor.Rol, "actualización de usuario",
		ptr("usuario"), &usuario.UsuarioID, nil)
	return usuario, nil
}

func (s *usuarioService) ActualizarPerfil(ctx context.Context, usuarioID string, req *dto.ActualizarPerfilRequest) (*model.Usuario, error) {
	usuario, err := s.Obtener(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil {
		usuario.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Telefono != nil {
		usuario.Telefono = req.Telefono
	}
	if req.Direccion != nil {
		usuario.Direccion = req.Direccion
	}
	usuario.ActualizadoPor = &usuario.UsuarioID
	if err := s.repo.Usuario.Update(ctx, usuario); err != nil {
		return nil, err
	}
	return usuario, nil
}

// Desactivar baja lógica: la cuenta conserva su historial y sus referencias.
func (s *usuarioService) Desactivar(ctx context.Context, editor *model.Usuario, id string) error {
	if !authz.CanPerform(editor.Rol, authz.UsuarioEditar) {
		return ErrAccesoDenegado
	}
	usuario, err := s.Obtener(ctx, id)
	if err != nil {
		return err
	}
	usuario.Activo = false
	usuario.Estado = model.EstadoInactivo
	usuario.ActualizadoPor = &editor.UsuarioID
	if err := s.repo.Usuario.Update(ctx, usuario); err != nil {
		return err
	}
	s.historial.Registrar(ctx, editor.UsuarioID, editor.Rol, "desactivación de usuario",
		ptr("usuario"), &usuario.UsuarioID, &usuario.Correo)
	return nil
}

func (s *usuarioService) Listar(ctx context.Context, q dto.UsuariosQuery) ([]model.Usuario, int64, error) {
	return s.repo.Usuario.List(ctx, q)
}
