package model

import "time"

// Roles del sistema. La tabla de permisos vive en internal/authz.
const (
	RolCoordinador   = "coordinador"
	RolAdministrador = "administrador"
	RolDocente       = "docente"
	RolPadre         = "padre"
	RolAlumno        = "alumno"
)

// Estados de usuario y centro
const (
	EstadoActivo     = "activo"
	EstadoInactivo   = "inactivo"
	EstadoSuspendido = "suspendido"
)

// Roles conjunto cerrado de roles del sistema
var Roles = []string{RolCoordinador, RolAdministrador, RolDocente, RolPadre, RolAlumno}

// RolValido indica si el rol pertenece al conjunto cerrado de roles.
func RolValido(rol string) bool {
	switch rol {
	case RolCoordinador, RolAdministrador, RolDocente, RolPadre, RolAlumno:
		return true
	}
	return false
}

// RolRequiereCentro indica si el rol debe estar asignado a un centro educativo.
func RolRequiereCentro(rol string) bool {
	return rol == RolAdministrador || rol == RolDocente
}

// RolRequiereCorreoInstitucional indica si el correo debe ser del dominio
// institucional configurado. Coordinadores y padres quedan exentos.
func RolRequiereCorreoInstitucional(rol string) bool {
	return rol == RolAdministrador || rol == RolDocente || rol == RolAlumno
}

// Usuario cuenta del sistema — tabla usuarios
type Usuario struct {
	UsuarioID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	Nombre           string     `gorm:"type:varchar(150);not null"                     json:"nombre"`
	Correo           string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"correo"`
	ContrasenaHash   string     `gorm:"type:varchar(255);not null;column:contrasena_hash" json:"-"`
	Rol              string     `gorm:"type:varchar(20);not null"                      json:"rol"`
	CentroID         *string    `gorm:"type:uuid"                                      json:"centroEducativo,omitempty"`
	Estado           string     `gorm:"type:varchar(10);not null;default:'activo'"     json:"estado"`
	Activo           bool       `gorm:"not null;default:true"                          json:"activo"`
	Cedula           *string    `gorm:"type:varchar(12);uniqueIndex"                   json:"cedula,omitempty"`
	Telefono         *string    `gorm:"type:varchar(20)"                               json:"telefono,omitempty"`
	Direccion        *string    `gorm:"type:text"                                      json:"direccion,omitempty"`
	ResetToken       *string    `gorm:"type:varchar(64)"                               json:"-"`
	ResetTokenExpira *time.Time `gorm:"column:reset_token_expira"                      json:"-"`
	FechaUltimoLogin *time.Time `gorm:"column:fecha_ultimo_login"                      json:"fechaUltimoLogin,omitempty"`
	BaseModel

	// Asociaciones
	Centro      *CentroEducativo `gorm:"foreignKey:CentroID;references:CentroID" json:"centro,omitempty"`
	Estudiantes []Estudiante     `gorm:"foreignKey:PadreID;references:UsuarioID" json:"estudiantes,omitempty"`
}

// TableName nombre de la tabla
func (Usuario) TableName() string { return "usuarios" }

// PuedeIngresar indica si la cuenta admite iniciar sesión.
func (u *Usuario) PuedeIngresar() bool {
	return u.Activo && u.Estado == EstadoActivo
}
