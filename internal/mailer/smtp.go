package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/config"
)

// smtpMailer implementación SMTP sobre gomail
type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP crea el mailer SMTP a partir de la configuración de correo
func NewSMTP(cfg *config.MailConfig) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *smtpMailer) enviar(ctx context.Context, destino, asunto, cuerpoHTML string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", destino)
	msg.SetHeader("Subject", asunto)
	msg.SetBody("text/html", cuerpoHTML)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error al enviar correo a %s: %w", destino, err)
	}
	return nil
}

func (m *smtpMailer) EnviarRestablecimiento(ctx context.Context, destino, nombre, enlace string) error {
	cuerpo := fmt.Sprintf(
		`<p>Hola %s:</p>
<p>Recibimos una solicitud para restablecer su contraseña. El enlace vence en 15 minutos y solo puede usarse una vez:</p>
<p><a href="%s">Restablecer contraseña</a></p>
<p>Si usted no solicitó el cambio, ignore este mensaje.</p>`,
		nombre, enlace,
	)
	return m.enviar(ctx, destino, "Restablecimiento de contraseña", cuerpo)
}

func (m *smtpMailer) EnviarBienvenida(ctx context.Context, destino, nombre, rol string) error {
	cuerpo := fmt.Sprintf(
		`<p>Hola %s:</p>
<p>Se creó su cuenta con el rol de %s en el sistema de listas de útiles escolares. Ya puede iniciar sesión con su correo institucional.</p>`,
		nombre, rol,
	)
	return m.enviar(ctx, destino, "Bienvenida al sistema de útiles escolares", cuerpo)
}
