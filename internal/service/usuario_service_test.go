package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/dto"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
)

func newUsuarioForTest(t *testing.T) (UsuarioService, *repository.Repository, *mockMailer) {
	t.Helper()
	repo := newTestRepository()
	mail := &mockMailer{}
	logger := zap.NewNop()
	svc := NewUsuarioService(testConfig(), repo, mail, NewHistorialService(repo, logger), logger)
	return svc, repo, mail
}

func sembrarCentro(t *testing.T, repo *repository.Repository) *model.CentroEducativo {
	t.Helper()
	c := &model.CentroEducativo{
		Nombre:            "Escuela Central",
		Provincia:         "San José",
		Canton:            "Central",
		Distrito:          "Carmen",
		ResponsableNombre: "Dirección",
		ResponsableEmail:  "direccion@mep.go.cr",
		Ubicacion:         "urbano",
		TipoInstitucion:   "multidocente",
		Estado:            model.EstadoActivo,
	}
	if err := repo.Centro.Create(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	return c
}

func coordinadorDePrueba() *model.Usuario {
	return &model.Usuario{
		UsuarioID: "coord-1",
		Nombre:    "Coordinación Nacional",
		Rol:       model.RolCoordinador,
		Estado:    model.EstadoActivo,
		Activo:    true,
	}
}

func TestUsuarioService_Crear(t *testing.T) {
	svc, repo, mail := newUsuarioForTest(t)
	ctx := context.Background()
	centro := sembrarCentro(t, repo)
	coordinador := coordinadorDePrueba()

	docente, err := svc.Crear(ctx, coordinador, &dto.CrearUsuarioRequest{
		Nombre:   "Carlos Vargas",
		Correo:   "carlos.vargas@mep.go.cr",
		Password: "secreta1",
		Rol:      model.RolDocente,
		CentroID: &centro.CentroID,
	})
	if err != nil {
		t.Fatalf("crear docente falló: %v", err)
	}
	if docente.ContrasenaHash == "secreta1" {
		t.Error("la contraseña no debe guardarse en claro")
	}
	if docente.CreadoPor == nil || *docente.CreadoPor != coordinador.UsuarioID {
		t.Error("creadoPor debe apuntar al coordinador")
	}
	if len(mail.bienvenidas) != 1 {
		t.Errorf("correos de bienvenida = %d, se esperaba 1", len(mail.bienvenidas))
	}
}

func TestUsuarioService_Crear_Rechazos(t *testing.T) {
	svc, repo, _ := newUsuarioForTest(t)
	ctx := context.Background()
	centro := sembrarCentro(t, repo)
	coordinador := coordinadorDePrueba()

	casos := []struct {
		nombre  string
		req     dto.CrearUsuarioRequest
		esperar error
	}{
		{
			"no se crean coordinadores",
			dto.CrearUsuarioRequest{Nombre: "Otro", Correo: "otro@mep.go.cr", Password: "secreta1", Rol: model.RolCoordinador},
			ErrRolNoPermitido,
		},
		{
			"no se crean padres por esta vía",
			dto.CrearUsuarioRequest{Nombre: "Padre", Correo: "padre@example.com", Password: "secreta1", Rol: model.RolPadre},
			ErrRolNoPermitido,
		},
		{
			"correo fuera del dominio institucional",
			dto.CrearUsuarioRequest{Nombre: "Docente", Correo: "docente@gmail.com", Password: "secreta1", Rol: model.RolDocente, CentroID: &centro.CentroID},
			ErrCorreoNoInstitucional,
		},
		{
			"docente sin centro",
			dto.CrearUsuarioRequest{Nombre: "Docente", Correo: "docente@mep.go.cr", Password: "secreta1", Rol: model.RolDocente},
			ErrCentroRequerido,
		},
		{
			"centro inexistente",
			dto.CrearUsuarioRequest{Nombre: "Docente", Correo: "docente@mep.go.cr", Password: "secreta1", Rol: model.RolDocente, CentroID: ptr("centro-fantasma")},
			ErrCentroNoEncontrado,
		},
	}
	for _, c := range casos {
		if _, err := svc.Crear(ctx, coordinador, &c.req); !errors.Is(err, c.esperar) {
			t.Errorf("%s: err = %v, se esperaba %v", c.nombre, err, c.esperar)
		}
	}
}

func TestUsuarioService_Crear_AdministradorUsaSuCentro(t *testing.T) {
	svc, repo, _ := newUsuarioForTest(t)
	ctx := context.Background()
	centroPropio := sembrarCentro(t, repo)
	otroCentro := sembrarCentro(t, repo)

	admin := &model.Usuario{
		UsuarioID: "admin-1",
		Rol:       model.RolAdministrador,
		CentroID:  &centroPropio.CentroID,
		Estado:    model.EstadoActivo,
		Activo:    true,
	}

	// aunque pida otro centro, el docente queda en el centro del administrador
	docente, err := svc.Crear(ctx, admin, &dto.CrearUsuarioRequest{
		Nombre:   "Docente",
		Correo:   "docente.nuevo@mep.go.cr",
		Password: "secreta1",
		Rol:      model.RolDocente,
		CentroID: &otroCentro.CentroID,
	})
	if err != nil {
		t.Fatalf("crear falló: %v", err)
	}
	if docente.CentroID == nil || *docente.CentroID != centroPropio.CentroID {
		t.Error("el docente debe quedar asignado al centro del administrador")
	}
}

func TestUsuarioService_Actualizar_Permisos(t *testing.T) {
	svc, repo, _ := newUsuarioForTest(t)
	ctx := context.Background()
	centro := sembrarCentro(t, repo)
	coordinador := coordinadorDePrueba()

	docente, err := svc.Crear(ctx, coordinador, &dto.CrearUsuarioRequest{
		Nombre:   "Carlos Vargas",
		Correo:   "carlos.vargas@mep.go.cr",
		Password: "secreta1",
		Rol:      model.RolDocente,
		CentroID: &centro.CentroID,
	})
	if err != nil {
		t.Fatal(err)
	}

	// el docente edita sus datos de contacto pero no su estado
	tel := "88887777"
	if _, err := svc.Actualizar(ctx, docente, docente.UsuarioID, &dto.ActualizarUsuarioRequest{Telefono: &tel}); err != nil {
		t.Errorf("autoservicio de contacto falló: %v", err)
	}
	suspendido := model.EstadoSuspendido
	if _, err := svc.Actualizar(ctx, docente, docente.UsuarioID, &dto.ActualizarUsuarioRequest{Estado: &suspendido}); !errors.Is(err, ErrAccesoDenegado) {
		t.Errorf("cambio de estado propio: err = %v, se esperaba ErrAccesoDenegado", err)
	}

	// un tercero sin permisos no toca el perfil ajeno
	otro := &model.Usuario{UsuarioID: "padre-1", Rol: model.RolPadre}
	if _, err := svc.Actualizar(ctx, otro, docente.UsuarioID, &dto.ActualizarUsuarioRequest{Telefono: &tel}); !errors.Is(err, ErrAccesoDenegado) {
		t.Errorf("tercero: err = %v, se esperaba ErrAccesoDenegado", err)
	}

	// el coordinador sí suspende
	if _, err := svc.Actualizar(ctx, coordinador, docente.UsuarioID, &dto.ActualizarUsuarioRequest{Estado: &suspendido}); err != nil {
		t.Errorf("coordinador: err = %v", err)
	}
}

func TestUsuarioService_Desactivar(t *testing.T) {
	svc, repo, _ := newUsuarioForTest(t)
	ctx := context.Background()
	centro := sembrarCentro(t, repo)
	coordinador := coordinadorDePrueba()

	docente, err := svc.Crear(ctx, coordinador, &dto.CrearUsuarioRequest{
		Nombre:   "Carlos Vargas",
		Correo:   "carlos.vargas@mep.go.cr",
		Password: "secreta1",
		Rol:      model.RolDocente,
		CentroID: &centro.CentroID,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Desactivar(ctx, docente, docente.UsuarioID); !errors.Is(err, ErrAccesoDenegado) {
		t.Errorf("autodesactivación: err = %v, se esperaba ErrAccesoDenegado", err)
	}

	if err := svc.Desactivar(ctx, coordinador, docente.UsuarioID); err != nil {
		t.Fatalf("desactivar falló: %v", err)
	}
	guardado, err := repo.Usuario.GetByID(ctx, docente.UsuarioID)
	if err != nil {
		t.Fatal(err)
	}
	if guardado.Activo || guardado.Estado != model.EstadoInactivo {
		t.Error("la cuenta debe quedar inactiva, no borrada")
	}
}
