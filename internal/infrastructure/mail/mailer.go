// Package mail envía los correos transaccionales (recuperación de contraseña).
package mail

import (
	"context"
	"fmt"
	"html"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/mrp-api/internal/application/auth"
	"github.com/jhoicas/mrp-api/pkg/config"
)

const resetSubject = "Recuperación de contraseña"

// SMTPMailer implementa auth.Mailer con gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

var _ auth.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, username, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := ResetMessage(m.from, to, username, link)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", to, err)
	}
	return nil
}

// ResetMessage arma el correo con el enlace de recuperación.
func ResetMessage(from, to, username, link string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", resetSubject)
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hola %s,\n\nPara restablecer tu contraseña abre el siguiente enlace:\n%s\n\nSi no lo solicitaste, ignora este correo.\n",
		username, link,
	))
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<p>Hola %s,</p><p>Para restablecer tu contraseña haz clic <a href="%s">aquí</a>.</p><p>Si no lo solicitaste, ignora este correo.</p>`,
		html.EscapeString(username), html.EscapeString(link),
	))
	return msg
}

// LogMailer registra el enlace en lugar de enviarlo (sin SMTP configurado).
type LogMailer struct {
	log zerolog.Logger
}

var _ auth.Mailer = (*LogMailer)(nil)

func NewLogMailer(log zerolog.Logger) *LogMailer { return &LogMailer{log: log} }

func (m *LogMailer) SendPasswordReset(_ context.Context, to, username, link string) error {
	m.log.Info().Str("to", to).Str("username", username).Str("link", link).Msg("correo de recuperación (SMTP no configurado)")
	return nil
}

// New elige el mailer según la configuración: sin host SMTP se usa LogMailer.
func New(cfg config.MailConfig, log zerolog.Logger) auth.Mailer {
	if cfg.Host == "" {
		return NewLogMailer(log)
	}
	return NewSMTPMailer(cfg)
}
