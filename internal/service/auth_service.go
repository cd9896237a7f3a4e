package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/config"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/mailer"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/jwt"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/redis"
)

var (
	// ErrCredencialesInvalidas mensaje único para correo inexistente, cuenta
	// inactiva y contraseña incorrecta; no se revela cuál de los tres falló.
	ErrCredencialesInvalidas = errors.New("Usuario o contraseña incorrectos")
	ErrTokenResetInvalido    = errors.New("el enlace de restablecimiento es inválido o ya venció")
	ErrContrasenaCorta       = errors.New("la contraseña debe tener al menos 6 caracteres")
	ErrContrasenaActual      = errors.New("la contraseña actual no coincide")
	ErrCorreoRegistrado      = errors.New("el correo ya está registrado")
	ErrCedulaRegistrada      = errors.New("la cédula ya está registrada")
	ErrCedulaInvalida        = errors.New("la cédula debe tener el formato X-XXXX-XXXX")
	ErrDatosEstudiante       = errors.New("datos de estudiante inválidos")
)

const largoMinimoContrasena = 6

// AuthService autenticación, autorregistro de padres y ciclo de contraseñas
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, jti string, expira time.Time) error
	RegistrarPadre(ctx context.Context, req *dto.RegistroPadreRequest) (*dto.LoginResponse, error)
	CambiarContrasena(ctx context.Context, usuarioID string, req *dto.CambiarContrasenaRequest) error
	SolicitarRestablecimiento(ctx context.Context, correo string) error
	Restablecer(ctx context.Context, req *dto.RestablecerContrasenaRequest) error
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	rdb       *redis.Client
	mail      mailer.Mailer
	historial HistorialService
	logger    *zap.Logger
}

// NewAuthService crea el servicio de autenticación. rdb puede ser nil: sin
// Redis el cierre de sesión deja de invalidar tokens pero el login funciona.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail mailer.Mailer,
	historial HistorialService,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		rdb:       rdb,
		mail:      mail,
		historial: historial,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.repo.Usuario.GetByCorreo(ctx, strings.TrimSpace(req.Correo))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		s.logger.Error("error al consultar usuario en login", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.ContrasenaHash), []byte(req.Contrasena())); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	if !usuario.PuedeIngresar() {
		return nil, ErrCredencialesInvalidas
	}

	token, err := s.jwtMgr.Generar(usuario.UsuarioID, usuario.Rol)
	if err != nil {
		s.logger.Error("error al generar token", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Usuario.RegistrarLogin(ctx, usuario.UsuarioID, time.Now()); err != nil {
		// el login no se cae por no poder anotar la fecha
		s.logger.Warn("no se pudo registrar la fecha de último ingreso", zap.Error(err))
	}

	s.historial.Registrar(ctx, usuario.UsuarioID, usuario.Rol, "inicio de sesión", nil, nil, nil)

	return &dto.LoginResponse{Token: token, Usuario: usuario}, nil
}

// Logout invalida el token vigente hasta su expiración natural.
func (s *authService) Logout(ctx context.Context, jti string, expira time.Time) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expira))
}

func (s *authService) RegistrarPadre(ctx context.Context, req *dto.RegistroPadreRequest) (*dto.LoginResponse, error) {
	if len(req.Contrasena()) < largoMinimoContrasena {
		return nil, ErrContrasenaCorta
	}
	if !model.CedulaValida(req.Cedula) {
		return nil, ErrCedulaInvalida
	}

	if _, err := s.repo.Usuario.GetByCorreo(ctx, req.Correo); err == nil {
		return nil, ErrCorreoRegistrado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	for _, e := range req.Estudiantes {
		if !model.CedulaValida(e.Cedula) {
			return nil, fmt.Errorf("%w: cédula %q", ErrDatosEstudiante, e.Cedula)
		}
		if !model.NivelEstudianteValido(e.Nivel) {
			return nil, fmt.Errorf("%w: nivel %q", ErrDatosEstudiante, e.Nivel)
		}
		if !model.GradoValido(e.Grado) {
			return nil, fmt.Errorf("%w: grado %q", ErrDatosEstudiante, e.Grado)
		}
		if e.FechaNacimiento != nil {
			if _, err := parseFechaNacimiento(*e.FechaNacimiento); err != nil {
				return nil, fmt.Errorf("%w: fecha de nacimiento %q", ErrDatosEstudiante, *e.FechaNacimiento)
			}
		}
		if _, err := s.repo.Estudiante.GetByCedula(ctx, e.Cedula); err == nil {
			return nil, ErrCedulaRegistrada
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cedula := req.Cedula
	padre := &model.Usuario{
		Nombre:         strings.TrimSpace(req.Nombre),
		Correo:         strings.ToLower(strings.TrimSpace(req.Correo)),
		ContrasenaHash: string(hash),
		Rol:            model.RolPadre,
		Estado:         model.EstadoActivo,
		Activo:         true,
		Cedula:         &cedula,
		Telefono:       req.Telefono,
		Direccion:      req.Direccion,
	}
	if err := s.repo.Usuario.Create(ctx, padre); err != nil {
		return nil, err
	}

	estudiantes := make([]model.Estudiante, 0, len(req.Estudiantes))
	for _, e := range req.Estudiantes {
		est := model.Estudiante{
			Nombre:   strings.TrimSpace(e.Nombre),
			Cedula:   e.Cedula,
			Nivel:    e.Nivel,
			Grado:    e.Grado,
			PadreID:  padre.UsuarioID,
			CentroID: e.CentroID,
			Estado:   model.EstadoActivo,
		}
		if e.FechaNacimiento != nil {
			// ya validada arriba
			est.FechaNacimiento, _ = parseFechaNacimiento(*e.FechaNacimiento)
		}
		estudiantes = append(estudiantes, est)
	}
	if err := s.repo.Estudiante.CreateBatch(ctx, estudiantes); err != nil {
		return nil, err
	}
	padre.Estudiantes = estudiantes

	token, err := s.jwtMgr.Generar(padre.UsuarioID, padre.Rol)
	if err != nil {
		return nil, err
	}

	s.historial.Registrar(ctx, padre.UsuarioID, padre.Rol, "autorregistro de padre",
		ptr("usuario"), &padre.UsuarioID, ptr(fmt.Sprintf("%d estudiante(s)", len(estudiantes))))

	return &dto.LoginResponse{Token: token, Usuario: padre}, nil
}

func (s *authService) CambiarContrasena(ctx context.Context, usuarioID string, req *dto.CambiarContrasenaRequest) error {
	if len(req.Nueva()) < largoMinimoContrasena {
		return ErrContrasenaCorta
	}

	usuario, err := s.repo.Usuario.GetByID(ctx, usuarioID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.ContrasenaHash), []byte(req.Actual())); err != nil {
		return ErrContrasenaActual
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Nueva()), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	usuario.ContrasenaHash = string(hash)
	if err := s.repo.Usuario.Update(ctx, usuario); err != nil {
		return err
	}

	s.historial.Registrar(ctx, usuario.UsuarioID, usuario.Rol, "cambio de contraseña", nil, nil, nil)
	return nil
}

// SolicitarRestablecimiento genera el token de recuperación y lo envía por
// correo. Si el correo no está registrado devuelve ErrUsuarioNoEncontrado.
func (s *authService) SolicitarRestablecimiento(ctx context.Context, correo string) error {
	usuario, err := s.repo.Usuario.GetByCorreo(ctx, correo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNoEncontrado
		}
		return err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	token := hex.EncodeToString(buf)
	expira := time.Now().Add(s.cfg.Auth.ResetTokenTTL)

	usuario.ResetToken = &token
	usuario.ResetTokenExpira = &expira
	if err := s.repo.Usuario.Update(ctx, usuario); err != nil {
		return err
	}

	// el envío es de mejor esfuerzo: el token ya quedó guardado
	enlace := fmt.Sprintf("%s/restablecer-contrasenna?token=%s", s.cfg.Server.BaseURL, token)
	if err := s.mail.EnviarRestablecimiento(ctx, usuario.Correo, usuario.Nombre, enlace); err != nil {
		s.logger.Error("error al enviar correo de restablecimiento",
			zap.String("correo", usuario.Correo), zap.Error(err))
	}
	return nil
}

func (s *authService) Restablecer(ctx context.Context, req *dto.RestablecerContrasenaRequest) error {
	if len(req.Nueva()) < largoMinimoContrasena {
		return ErrContrasenaCorta
	}

	usuario, err := s.repo.Usuario.GetByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenResetInvalido
		}
		return err
	}
	if usuario.ResetTokenExpira == nil || time.Now().After(*usuario.ResetTokenExpira) {
		return ErrTokenResetInvalido
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Nueva()), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// un solo uso: el token se limpia en la misma escritura
	usuario.ContrasenaHash = string(hash)
	usuario.ResetToken = nil
	usuario.ResetTokenExpira = nil
	if err := s.repo.Usuario.Update(ctx, usuario); err != nil {
		return err
	}

	s.historial.Registrar(ctx, usuario.UsuarioID, usuario.Rol, "restablecimiento de contraseña", nil, nil, nil)
	return nil
}
