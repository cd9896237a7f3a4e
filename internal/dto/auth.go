package dto

import "github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/model"

// LoginRequest cuerpo de POST /api/auth/login.
// La contraseña puede llegar como "contraseña", "contrasenna" o "password"
// según la versión del cliente; Contrasena() resuelve el alias.
type LoginRequest struct {
	Correo          string `json:"correo" binding:"required,email"`
	ContrasenaTilde string `json:"contraseña"`
	ContrasenaNN    string `json:"contrasenna"`
	Password        string `json:"password"`
}

// Contrasena contraseña normalizada entre alias
func (r LoginRequest) Contrasena() string {
	return primeroNoVacio(r.ContrasenaTilde, r.ContrasenaNN, r.Password)
}

// LoginResponse respuesta de autenticación exitosa
type LoginResponse struct {
	Token   string         `json:"token"`
	Usuario *model.Usuario `json:"usuario"`
}

// CambiarContrasenaRequest cuerpo de POST /api/auth/cambiar-contrasenna
type CambiarContrasenaRequest struct {
	ActualTilde string `json:"contraseñaActual"`
	ActualNN    string `json:"contrasennaActual"`
	NuevaTilde  string `json:"contraseñaNueva"`
	NuevaNN     string `json:"contrasennaNueva"`
}

// Actual contraseña vigente normalizada
func (r CambiarContrasenaRequest) Actual() string {
	return primeroNoVacio(r.ActualTilde, r.ActualNN)
}

// Nueva contraseña nueva normalizada
func (r CambiarContrasenaRequest) Nueva() string {
	return primeroNoVacio(r.NuevaTilde, r.NuevaNN)
}

// OlvidoContrasenaRequest cuerpo de POST /api/auth/olvido-contrasenna
type OlvidoContrasenaRequest struct {
	Correo string `json:"correo" binding:"required,email"`
}

// RestablecerContrasenaRequest cuerpo de POST /api/auth/restablecer-contrasenna
type RestablecerContrasenaRequest struct {
	Token       string `json:"token" binding:"required"`
	NuevaTilde  string `json:"contraseñaNueva"`
	NuevaNN     string `json:"contrasennaNueva"`
	PasswordRaw string `json:"password"`
}

// Nueva contraseña nueva normalizada
func (r RestablecerContrasenaRequest) Nueva() string {
	return primeroNoVacio(r.NuevaTilde, r.NuevaNN, r.PasswordRaw)
}

// EstudianteRegistro estudiante declarado durante el autorregistro de un padre
type EstudianteRegistro struct {
	Nombre          string  `json:"nombre" binding:"required,min=2,max=150"`
	Cedula          string  `json:"cedula" binding:"required"`
	Nivel           string  `json:"nivel" binding:"required"`
	Grado           string  `json:"grado" binding:"required"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	CentroID        *string `json:"centroEducativo" binding:"omitempty,uuid"`
}

// RegistroPadreRequest cuerpo de POST /api/auth/registro-padre.
// Un padre se registra junto con al menos un estudiante y máximo quince.
type RegistroPadreRequest struct {
	Nombre          string               `json:"nombre" binding:"required,min=2,max=150"`
	Correo          string               `json:"correo" binding:"required,email"`
	ContrasenaTilde string               `json:"contraseña"`
	ContrasenaNN    string               `json:"contrasenna"`
	Password        string               `json:"password"`
	Cedula          string               `json:"cedula" binding:"required"`
	Telefono        *string              `json:"telefono"`
	Direccion       *string              `json:"direccion"`
	Estudiantes     []EstudianteRegistro `json:"estudiantes" binding:"required,min=1,max=15,dive"`
}

// Contrasena contraseña normalizada entre alias
func (r RegistroPadreRequest) Contrasena() string {
	return primeroNoVacio(r.ContrasenaTilde, r.ContrasenaNN, r.Password)
}
