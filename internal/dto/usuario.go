package dto

// CrearUsuarioRequest cuerpo de POST /api/usuarios (coordinador/administrador
// aprovisionando cuentas de administrador o docente)
type CrearUsuarioRequest struct {
	Nombre          string  `json:"nombre" binding:"required,min=2,max=150"`
	Correo          string  `json:"correo" binding:"required,email"`
	ContrasenaTilde string  `json:"contraseña"`
	ContrasenaNN    string  `json:"contrasenna"`
	Password        string  `json:"password"`
	Rol             string  `json:"rol" binding:"required"`
	CentroID        *string `json:"centroEducativo" binding:"omitempty,uuid"`
	Cedula          *string `json:"cedula"`
	Telefono        *string `json:"telefono"`
	Direccion       *string `json:"direccion"`
}

// Contrasena contraseña normalizada entre alias
func (r CrearUsuarioRequest) Contrasena() string {
	return primeroNoVacio(r.ContrasenaTilde, r.ContrasenaNN, r.Password)
}

// ActualizarUsuarioRequest cuerpo de PUT /api/usuarios/:id. Campos en nil no
// se modifican; la contraseña y el rol nunca se cambian por esta vía.
type ActualizarUsuarioRequest struct {
	Nombre    *string `json:"nombre" binding:"omitempty,min=2,max=150"`
	Correo    *string `json:"correo" binding:"omitempty,email"`
	CentroID  *string `json:"centroEducativo" binding:"omitempty,uuid"`
	Estado    *string `json:"estado" binding:"omitempty,oneof=activo inactivo suspendido"`
	Activo    *bool   `json:"activo"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

// ActualizarPerfilRequest cuerpo de PUT /api/usuarios/perfil, autoservicio.
// Solo datos de contacto: el rol, el estado y el centro quedan fuera para
// impedir la autoelevación.
type ActualizarPerfilRequest struct {
	Nombre    *string `json:"nombre" binding:"omitempty,min=2,max=150"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

// UsuariosQuery filtros de GET /api/usuarios
type UsuariosQuery struct {
	PageQuery
	Rol      string `form:"rol" binding:"omitempty,oneof=coordinador administrador docente padre alumno"`
	CentroID string `form:"centroEducativo" binding:"omitempty,uuid"`
	Estado   string `form:"estado" binding:"omitempty,oneof=activo inactivo suspendido"`
}
