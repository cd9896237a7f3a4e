package mailer

import (
	"context"

	"go.uber.org/zap"
)

// consoleMailer escribe los correos en el log en lugar de enviarlos.
// Se usa en desarrollo cuando no hay SMTP configurado.
type consoleMailer struct {
	logger *zap.Logger
}

// NewConsole crea el mailer de consola
func NewConsole(logger *zap.Logger) Mailer {
	return &consoleMailer{logger: logger}
}

func (m *consoleMailer) EnviarRestablecimiento(_ context.Context, destino, nombre, enlace string) error {
	m.logger.Info("correo de restablecimiento (modo consola)",
		zap.String("destino", destino),
		zap.String("nombre", nombre),
		zap.String("enlace", enlace))
	return nil
}

func (m *consoleMailer) EnviarBienvenida(_ context.Context, destino, nombre, rol string) error {
	m.logger.Info("correo de bienvenida (modo consola)",
		zap.String("destino", destino),
		zap.String("nombre", nombre),
		zap.String("rol", rol))
	return nil
}
