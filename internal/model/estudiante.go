package model

import (
	"regexp"
	"time"
)

// Estados propios de estudiante
const EstadoTransferido = "transferido"

// Niveles cortos usados por estudiantes y listas
var NivelesEstudiante = []string{"Preescolar", "Primaria", "Secundaria"}

// Grados permitidos
var GradosEstudiante = []string{
	"Kinder", "Preparatoria",
	"1°", "2°", "3°", "4°", "5°", "6°",
	"7°", "8°", "9°", "10°", "11°",
}

// Formato de cédula costarricense: X-XXXX-XXXX
var cedulaRegexp = regexp.MustCompile(`^\d{1}-\d{4}-\d{4}$`)

// CedulaValida valida el formato regional de la cédula.
func CedulaValida(cedula string) bool {
	return cedulaRegexp.MatchString(cedula)
}

// NivelEstudianteValido indica si el nivel pertenece a la enumeración.
func NivelEstudianteValido(nivel string) bool {
	for _, n := range NivelesEstudiante {
		if n == nivel {
			return true
		}
	}
	return false
}

// GradoValido indica si el grado pertenece a la enumeración.
func GradoValido(grado string) bool {
	for _, g := range GradosEstudiante {
		if g == grado {
			return true
		}
	}
	return false
}

// FechaNacimientoValida la fecha de nacimiento no puede ser futura.
func FechaNacimientoValida(fecha time.Time) bool {
	return !fecha.After(time.Now())
}

// Estudiante hijo registrado por un padre — tabla estudiantes
type Estudiante struct {
	EstudianteID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	Nombre          string     `gorm:"type:varchar(150);not null"                     json:"nombre"`
	Cedula          string     `gorm:"type:varchar(12);not null;uniqueIndex"          json:"cedula"`
	Nivel           string     `gorm:"type:varchar(20);not null"                      json:"nivel"`
	Grado           string     `gorm:"type:varchar(15);not null"                      json:"grado"`
	FechaNacimiento *time.Time `gorm:"type:date"                                      json:"fechaNacimiento,omitempty"`
	PadreID         string     `gorm:"type:uuid;not null"                             json:"padre"`
	CentroID        *string    `gorm:"type:uuid"                                      json:"centroEducativo,omitempty"`
	Estado          string     `gorm:"type:varchar(12);not null;default:'activo'"     json:"estado"`
	Observaciones   *string    `gorm:"type:text"                                      json:"observaciones,omitempty"`
	BaseModel

	Padre  *Usuario         `gorm:"foreignKey:PadreID;references:UsuarioID"  json:"-"`
	Centro *CentroEducativo `gorm:"foreignKey:CentroID;references:CentroID"  json:"centro,omitempty"`
}

// TableName nombre de la tabla
func (Estudiante) TableName() string { return "estudiantes" }

// Edad calcula la edad en años; nil si no hay fecha de nacimiento.
func (e *Estudiante) Edad() *int {
	if e.FechaNacimiento == nil {
		return nil
	}
	hoy := time.Now()
	edad := hoy.Year() - e.FechaNacimiento.Year()
	if hoy.YearDay() < e.FechaNacimiento.YearDay() {
		edad--
	}
	return &edad
}
