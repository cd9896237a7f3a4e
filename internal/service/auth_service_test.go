package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/config"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/jwt"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 4100, BaseURL: "http://localhost:4100"},
		Auth: config.AuthConfig{
			JWTSecret:     "secreto-de-prueba-largo",
			TokenTTL:      12 * time.Hour,
			ResetTokenTTL: 15 * time.Minute,
		},
		Institucion: config.InstitucionConfig{DominioCorreo: "@mep.go.cr"},
	}
}

func newAuthForTest(t *testing.T) (AuthService, *repository.Repository, *mockMailer) {
	t.Helper()
	cfg := testConfig()
	repo := newTestRepository()
	mail := &mockMailer{}
	logger := zap.NewNop()
	historial := NewHistorialService(repo, logger)
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, mail, historial, logger)
	return svc, repo, mail
}

func sembrarUsuario(t *testing.T, repo *repository.Repository, correo, contrasena, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(contrasena), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	u := &model.Usuario{
		Nombre:         "Usuario de Prueba",
		Correo:         correo,
		ContrasenaHash: string(hash),
		Rol:            rol,
		Estado:         model.EstadoActivo,
		Activo:         true,
	}
	if err := repo.Usuario.Create(context.Background(), u); err != nil {
		t.Fatalf("sembrar usuario: %v", err)
	}
	return u
}

func TestAuthService_Login(t *testing.T) {
	svc, repo, _ := newAuthForTest(t)
	ctx := context.Background()
	sembrarUsuario(t, repo, "docente@mep.go.cr", "secreta1", model.RolDocente)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Correo: "docente@mep.go.cr", Password: "secreta1"})
	if err != nil {
		t.Fatalf("login válido falló: %v", err)
	}
	if resp.Token == "" {
		t.Error("se esperaba un token")
	}
	if resp.Usuario.Rol != model.RolDocente {
		t.Errorf("rol = %q, se esperaba docente", resp.Usuario.Rol)
	}
	if resp.Usuario.FechaUltimoLogin == nil {
		t.Error("se esperaba fecha de último ingreso registrada")
	}
}

func TestAuthService_Login_AliasDeContrasena(t *testing.T) {
	svc, repo, _ := newAuthForTest(t)
	ctx := context.Background()
	sembrarUsuario(t, repo, "padre@example.com", "secreta1", model.RolPadre)

	// el mismo campo llega con tres nombres según la versión del cliente
	casos := []dto.LoginRequest{
		{Correo: "padre@example.com", ContrasenaTilde: "secreta1"},
		{Correo: "padre@example.com", ContrasenaNN: "secreta1"},
		{Correo: "padre@example.com", Password: "secreta1"},
	}
	for i, req := range casos {
		if _, err := svc.Login(ctx, &req); err != nil {
			t.Errorf("alias %d: login falló: %v", i, err)
		}
	}
}

func TestAuthService_Login_CredencialesInvalidas(t *testing.T) {
	svc, repo, _ := newAuthForTest(t)
	ctx := context.Background()
	sembrarUsuario(t, repo, "docente@mep.go.cr", "secreta1", model.RolDocente)

	// contraseña incorrecta y correo inexistente devuelven el mismo error
	if _, err := svc.Login(ctx, &dto.LoginRequest{Correo: "docente@mep.go.cr", Password: "otra"}); !errors.Is(err, ErrCredencialesInvalidas) {
		t.Errorf("contraseña incorrecta: err = %v, se esperaba ErrCredencialesInvalidas", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Correo: "nadie@mep.go.cr", Password: "secreta1"}); !errors.Is(err, ErrCredencialesInvalidas) {
		t.Errorf("correo inexistente: err = %v, se esperaba ErrCredencialesInvalidas", err)
	}
}

func TestAuthService_Login_CuentaInactiva(t *testing.T) {
	svc, repo, _ := newAuthForTest(t)
	ctx := context.Background()
	u := sembrarUsuario(t, repo, "inactivo@mep.go.cr", "secreta1", model.RolDocente)
	u.Activo = false
	if err := repo.Usuario.Update(ctx, u); err != nil {
		t.Fatal(err)
	}

	// una cuenta inactiva recibe el mismo error genérico de credenciales
	if _, err := svc.Login(ctx, &dto.LoginRequest{Correo: "inactivo@mep.go.cr", Password: "secreta1"}); !errors.Is(err, ErrCredencialesInvalidas) {
		t.Errorf("err = %v, se esperaba ErrCredencialesInvalidas", err)
	}
}

func TestAuthService_RegistrarPadre(t *testing.T) {
	svc, repo, _ := newAuthForTest(t)
	ctx := context.Background()

	req := &dto.RegistroPadreRequest{
		Nombre:   "María Jiménez",
		Correo:   "Maria.Jimenez@example.com",
		Password: "secreta1",
		Cedula:   "1-1234-5678",
		Estudiantes: []dto.EstudianteRegistro{
			{Nombre: "Luis", Cedula: "1-2222-3333", Nivel: "Primaria", Grado: "3°"},
			{Nombre: "Ana", Cedula: "1-4444-5555", Nivel: "Secundaria", Grado: "8°"},
		},
	}
	resp, err := svc.RegistrarPadre(ctx, req)
	if err != nil {
		t.Fatalf("registro falló: %v", err)
	}
	if resp.Token == "" {
		t.Error("se esperaba token tras el registro")
	}
	if resp.Usuario.Correo != "maria.jimenez@example.com" {
		t.Errorf("correo = %q, se esperaba en minúsculas", resp.Usuario.Correo)
	}
	if len(resp.Usuario.Estudiantes) != 2 {
		t.Fatalf("estudiantes = %d, se esperaban 2", len(resp.Usuario.Estudiantes))
	}

	hijos, err := repo.Estudiante.ListByPadre(ctx, resp.Usuario.UsuarioID)
	if err != nil || len(hijos) != 2 {
		t.Errorf("ListByPadre devolvió %d, se esperaban 2 (err=%v)", len(hijos), err)
	}
}

func TestAuthService_RegistrarPadre_Rechazos(t *testing.T) {
	svc, repo, _ := newAuthForTest(t)
	ctx := context.Background()
	sembrarUsuario(t, repo, "existente@example.com", "secreta1", model.RolPadre)

	base := dto.RegistroPadreRequest{
		Nombre:   "Pedro Mora",
		Correo:   "pedro@example.com",
		Password: "secreta1",
		Cedula:   "2-1111-2222",
		Estudiantes: []dto.EstudianteRegistro{
			{Nombre: "Luis", Cedula: "2-3333-4444", Nivel: "Primaria", Grado: "1°"},
		},
	}

	casos := []struct {
		nombre  string
		mutar   func(r *dto.RegistroPadreRequest)
		esperar error
	}{
		{"correo duplicado", func(r *dto.RegistroPadreRequest) { r.Correo = "existente@example.com" }, ErrCorreoRegistrado},
		{"contraseña corta", func(r *dto.RegistroPadreRequest) { r.Password = "abc" }, ErrContrasenaCorta},
		{"cédula inválida", func(r *dto.RegistroPadreRequest) { r.Cedula = "123" }, ErrCedulaInvalida},
		{"nivel inválido", func(r *dto.RegistroPadreRequest) { r.Estudiantes[0].Nivel = "Universidad" }, ErrDatosEstudiante},
		{"grado inválido", func(r *dto.RegistroPadreRequest) { r.Estudiantes[0].Grado = "12°" }, ErrDatosEstudiante},
		{"fecha de nacimiento futura", func(r *dto.RegistroPadreRequest) { r.Estudiantes[0].FechaNacimiento = ptr("2099-01-01") }, ErrDatosEstudiante},
	}
	for _, c := range casos {
		req := base
		req.Estudiantes = []dto.EstudianteRegistro{base.Estudiantes[0]}
		c.mutar(&req)
		if _, err := svc.RegistrarPadre(ctx, &req); !errors.Is(err, c.esperar) {
			t.Errorf("%s: err = %v, se esperaba %v", c.nombre, err, c.esperar)
		}
	}
}

func TestAuthService_CicloDeRestablecimiento(t *testing.T) {
	svc, repo, mail := newAuthForTest(t)
	ctx := context.Background()
	u := sembrarUsuario(t, repo, "padre@example.com", "original1", model.RolPadre)

	if err := svc.SolicitarRestablecimiento(ctx, "padre@example.com"); err != nil {
		t.Fatalf("solicitud falló: %v", err)
	}
	if len(mail.restablecimientos) != 1 {
		t.Fatalf("correos enviados = %d, se esperaba 1", len(mail.restablecimientos))
	}
	if u.ResetToken == nil {
		t.Fatal("se esperaba token de restablecimiento guardado")
	}
	token := *u.ResetToken

	if err := svc.Restablecer(ctx, &dto.RestablecerContrasenaRequest{Token: token, PasswordRaw: "nueva123"}); err != nil {
		t.Fatalf("restablecer falló: %v", err)
	}

	// la nueva contraseña sirve y el token quedó invalidado
	if _, err := svc.Login(ctx, &dto.LoginRequest{Correo: "padre@example.com", Password: "nueva123"}); err != nil {
		t.Errorf("login con nueva contraseña falló: %v", err)
	}
	if err := svc.Restablecer(ctx, &dto.RestablecerContrasenaRequest{Token: token, PasswordRaw: "otra1234"}); !errors.Is(err, ErrTokenResetInvalido) {
		t.Errorf("reuso de token: err = %v, se esperaba ErrTokenResetInvalido", err)
	}
}

func TestAuthService_Restablecer_TokenVencido(t *testing.T) {
	svc, repo, _ := newAuthForTest(t)
	ctx := context.Background()
	u := sembrarUsuario(t, repo, "padre@example.com", "original1", model.RolPadre)

	token := "abcdef0123456789"
	vencido := time.Now().Add(-time.Minute)
	u.ResetToken = &token
	u.ResetTokenExpira = &vencido
	if err := repo.Usuario.Update(ctx, u); err != nil {
		t.Fatal(err)
	}

	if err := svc.Restablecer(ctx, &dto.RestablecerContrasenaRequest{Token: token, PasswordRaw: "nueva123"}); !errors.Is(err, ErrTokenResetInvalido) {
		t.Errorf("err = %v, se esperaba ErrTokenResetInvalido", err)
	}
}

func TestAuthService_SolicitarRestablecimiento_FalloDeCorreo(t *testing.T) {
	svc, repo, mail := newAuthForTest(t)
	ctx := context.Background()
	u := sembrarUsuario(t, repo, "padre@example.com", "secreta1", model.RolPadre)
	mail.fallo = errors.New("smtp caído")

	// el envío es de mejor esfuerzo: la solicitud no falla y el token queda
	if err := svc.SolicitarRestablecimiento(ctx, "padre@example.com"); err != nil {
		t.Errorf("err = %v, se esperaba nil", err)
	}
	if u.ResetToken == nil {
		t.Error("se esperaba token de restablecimiento guardado")
	}
}

func TestAuthService_SolicitarRestablecimiento_CorreoInexistente(t *testing.T) {
	svc, _, mail := newAuthForTest(t)

	if err := svc.SolicitarRestablecimiento(context.Background(), "nadie@example.com"); !errors.Is(err, ErrUsuarioNoEncontrado) {
		t.Errorf("err = %v, se esperaba ErrUsuarioNoEncontrado", err)
	}
	if len(mail.restablecimientos) != 0 {
		t.Error("no debe enviarse correo para cuentas inexistentes")
	}
}

func TestAuthService_CambiarContrasena(t *testing.T) {
	svc, repo, _ := newAuthForTest(t)
	ctx := context.Background()
	u := sembrarUsuario(t, repo, "docente@mep.go.cr", "actual12", model.RolDocente)

	err := svc.CambiarContrasena(ctx, u.UsuarioID, &dto.CambiarContrasenaRequest{
		ActualNN: "equivocada",
		NuevaNN:  "nueva123",
	})
	if !errors.Is(err, ErrContrasenaActual) {
		t.Errorf("err = %v, se esperaba ErrContrasenaActual", err)
	}

	err = svc.CambiarContrasena(ctx, u.UsuarioID, &dto.CambiarContrasenaRequest{
		ActualNN: "actual12",
		NuevaNN:  "nueva123",
	})
	if err != nil {
		t.Fatalf("cambio válido falló: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Correo: "docente@mep.go.cr", Password: "nueva123"}); err != nil {
		t.Errorf("login con la nueva contraseña falló: %v", err)
	}
}
