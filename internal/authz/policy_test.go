package authz

import (
	"testing"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"
)

var todasLasAcciones = []Accion{
	CentroGestionar,
	CategoriaGestionar,
	MaterialGestionar,
	MaterialAsignar,
	MaterialVerDocente,
	NivelGestionar,
	ListaCrear,
	ListaVerTodas,
	ListaVerPadre,
	UsuarioCrear,
	UsuarioEditar,
	UsuarioListar,
	EstudianteVerTodos,
	SoporteResponder,
	ConfiguracionEditar,
	HistorialVerGlobal,
	ReporteGenerar,
}

func TestCanPerform_TablaPorRol(t *testing.T) {
	// permitidas por rol; toda acción fuera de la lista debe estar denegada
	esperado := map[string][]Accion{
		model.RolCoordinador: {
			CentroGestionar, CategoriaGestionar, SoporteResponder,
			HistorialVerGlobal, UsuarioCrear, UsuarioEditar, UsuarioListar,
			EstudianteVerTodos, ListaVerTodas, ConfiguracionEditar, ReporteGenerar,
		},
		model.RolAdministrador: {
			NivelGestionar, MaterialGestionar, MaterialAsignar,
			UsuarioCrear, UsuarioEditar, UsuarioListar, EstudianteVerTodos,
			ListaVerTodas, ConfiguracionEditar, ReporteGenerar,
		},
		model.RolDocente: {ListaCrear, MaterialVerDocente},
		model.RolPadre:   {ListaVerPadre},
		model.RolAlumno:  {},
	}

	for rol, permitidas := range esperado {
		set := make(map[Accion]bool, len(permitidas))
		for _, a := range permitidas {
			set[a] = true
		}
		for _, accion := range todasLasAcciones {
			got := CanPerform(rol, accion)
			if got != set[accion] {
				t.Errorf("CanPerform(%q, %q) = %v, se esperaba %v", rol, accion, got, set[accion])
			}
		}
	}
}

func TestCanPerform_RolDesconocido(t *testing.T) {
	for _, accion := range todasLasAcciones {
		if CanPerform("superusuario", accion) {
			t.Errorf("rol desconocido no debe poder %q", accion)
		}
		if CanPerform("", accion) {
			t.Errorf("rol vacío no debe poder %q", accion)
		}
	}
}

func TestPuedeCrearRol(t *testing.T) {
	casos := []struct {
		creador string
		nuevo   string
		ok      bool
	}{
		{model.RolCoordinador, model.RolAdministrador, true},
		{model.RolCoordinador, model.RolDocente, true},
		{model.RolCoordinador, model.RolCoordinador, false},
		{model.RolCoordinador, model.RolPadre, false},
		{model.RolCoordinador, model.RolAlumno, false},
		{model.RolAdministrador, model.RolDocente, true},
		{model.RolAdministrador, model.RolCoordinador, false},
		{model.RolDocente, model.RolDocente, false},
		{model.RolPadre, model.RolDocente, false},
	}
	for _, c := range casos {
		if got := PuedeCrearRol(c.creador, c.nuevo); got != c.ok {
			t.Errorf("PuedeCrearRol(%q, %q) = %v, se esperaba %v", c.creador, c.nuevo, got, c.ok)
		}
	}
}

func TestPuedeEditarPerfil(t *testing.T) {
	const uid = "7f9c1a2e-0000-0000-0000-000000000001"
	const otro = "7f9c1a2e-0000-0000-0000-000000000002"

	// autoservicio: cualquier rol edita su propio perfil
	for _, rol := range model.Roles {
		if !PuedeEditarPerfil(rol, uid, uid) {
			t.Errorf("rol %q debe poder editar su propio perfil", rol)
		}
	}

	// perfiles ajenos solo con permiso de edición de usuarios
	if !PuedeEditarPerfil(model.RolCoordinador, uid, otro) {
		t.Error("coordinador debe poder editar perfiles ajenos")
	}
	if !PuedeEditarPerfil(model.RolAdministrador, uid, otro) {
		t.Error("administrador debe poder editar perfiles ajenos")
	}
	if PuedeEditarPerfil(model.RolDocente, uid, otro) {
		t.Error("docente no debe editar perfiles ajenos")
	}
	if PuedeEditarPerfil(model.RolPadre, uid, otro) {
		t.Error("padre no debe editar perfiles ajenos")
	}
	if PuedeEditarPerfil(model.RolAlumno, uid, otro) {
		t.Error("alumno no debe editar perfiles ajenos")
	}
}

func TestEsPropietario(t *testing.T) {
	if !EsPropietario("a", "a") {
		t.Error("mismo identificador debe ser propietario")
	}
	if EsPropietario("a", "b") {
		t.Error("identificadores distintos no son propietario")
	}
	if EsPropietario("", "") {
		t.Error("identificador vacío nunca es propietario")
	}
}
