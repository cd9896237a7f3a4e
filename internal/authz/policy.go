// Package authz contiene la tabla de permisos rol → acción.
// Es lógica pura: no toca base de datos ni contexto HTTP. Los handlers y
// servicios la consultan antes de cada mutación y de las lecturas
// privilegiadas; las verificaciones de propiedad (lista propia, estudiante
// propio, perfil propio) son predicados aparte porque dependen del recurso.
package authz

import "github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"

// Accion operación gobernada por la tabla de permisos
type Accion string

const (
	// Centros educativos
	CentroGestionar Accion = "centro:gestionar"

	// Categorías y materiales
	CategoriaGestionar Accion = "categoria:gestionar"
	MaterialGestionar  Accion = "material:gestionar"
	MaterialAsignar    Accion = "material:asignar"
	MaterialVerDocente Accion = "material:ver-docente"

	// Niveles educativos (ámbito del propio centro)
	NivelGestionar Accion = "nivel:gestionar"

	// Listas de útiles
	ListaCrear    Accion = "lista:crear"
	ListaVerTodas Accion = "lista:ver-todas"
	ListaVerPadre Accion = "lista:ver-padre"

	// Usuarios y estudiantes
	UsuarioCrear        Accion = "usuario:crear"
	UsuarioEditar       Accion = "usuario:editar"
	UsuarioListar       Accion = "usuario:listar"
	EstudianteVerTodos  Accion = "estudiante:ver-todos"

	// Soporte, configuración, bitácora y reportes
	SoporteResponder    Accion = "soporte:responder"
	ConfiguracionEditar Accion = "configuracion:editar"
	HistorialVerGlobal  Accion = "historial:ver-global"
	ReporteGenerar      Accion = "reporte:generar"
)

// tabla de permisos por rol. Toda acción ausente está denegada.
var permisos = map[string]map[Accion]bool{
	model.RolCoordinador: {
		CentroGestionar:     true,
		CategoriaGestionar:  true,
		SoporteResponder:    true,
		HistorialVerGlobal:  true,
		UsuarioCrear:        true,
		UsuarioEditar:       true,
		UsuarioListar:       true,
		EstudianteVerTodos:  true,
		ListaVerTodas:       true,
		ConfiguracionEditar: true,
		ReporteGenerar:      true,
	},
	model.RolAdministrador: {
		NivelGestionar:      true,
		MaterialGestionar:   true,
		MaterialAsignar:     true,
		UsuarioCrear:        true,
		UsuarioEditar:       true,
		UsuarioListar:       true,
		EstudianteVerTodos:  true,
		ListaVerTodas:       true,
		ConfiguracionEditar: true,
		ReporteGenerar:      true,
	},
	model.RolDocente: {
		ListaCrear:         true,
		MaterialVerDocente: true,
	},
	model.RolPadre: {
		ListaVerPadre: true,
	},
	model.RolAlumno: {},
}

// CanPerform consulta la tabla de permisos. Función pura.
func CanPerform(rol string, accion Accion) bool {
	acciones, ok := permisos[rol]
	if !ok {
		return false
	}
	return acciones[accion]
}

// RolesCreables roles que un coordinador o administrador puede aprovisionar.
// Nunca se crea otro coordinador por este medio, y las cuentas de padre y
// alumno solo nacen por autorregistro.
func RolesCreables(rolCreador string) []string {
	if CanPerform(rolCreador, UsuarioCrear) {
		return []string{model.RolAdministrador, model.RolDocente}
	}
	return nil
}

// PuedeCrearRol indica si rolCreador puede aprovisionar una cuenta rolNuevo.
func PuedeCrearRol(rolCreador, rolNuevo string) bool {
	for _, r := range RolesCreables(rolCreador) {
		if r == rolNuevo {
			return true
		}
	}
	return false
}

// EsPropietario verificación de propiedad para editar/desactivar recursos
// con dueño (listas del docente, estudiantes del padre).
func EsPropietario(callerID, propietarioID string) bool {
	return callerID != "" && callerID == propietarioID
}

// PuedeEditarPerfil autoservicio: toda identidad autenticada edita su propio
// perfil; coordinadores y administradores editan perfiles ajenos.
func PuedeEditarPerfil(callerRol, callerID, usuarioID string) bool {
	if EsPropietario(callerID, usuarioID) {
		return true
	}
	return CanPerform(callerRol, UsuarioEditar)
}
