// Package mailer envío de correos transaccionales del sistema.
package mailer

import "context"

// Mailer contrato de envío de correo. Los servicios dependen de esta
// interfaz; la implementación concreta se elige por configuración.
type Mailer interface {
	// EnviarRestablecimiento envía el enlace de recuperación de contraseña.
	EnviarRestablecimiento(ctx context.Context, destino, nombre, enlace string) error
	// EnviarBienvenida da la bienvenida a una cuenta recién aprovisionada.
	EnviarBienvenida(ctx context.Context, destino, nombre, rol string) error
}
