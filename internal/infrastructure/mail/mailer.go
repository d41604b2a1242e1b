package mail

import (
	"fmt"

	"github.com/jhoicas/taller-api/pkg/config"
	"gopkg.in/gomail.v2"
)

// Mailer envía correos al dueño del taller vía SMTP.
// No hay timeout propio más allá del default del transporte; un relay lento
// frena el loop del worker porque los mensajes se procesan de a uno.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// New construye el mailer con la configuración SMTP.
func New(cfg config.SMTPConfig) *Mailer {
	from := cfg.User
	if from == "" {
		from = "noreply@taller.local"
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
		to:     cfg.OwnerEmail,
	}
}

// SendOwnerNotification envía un correo al dueño con el asunto y cuerpo dados.
func (m *Mailer) SendOwnerNotification(subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo al dueño: %w", err)
	}
	return nil
}
