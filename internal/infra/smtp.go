package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/edulopezdev/forestBarber/internal/config"
)

// Mailer envía correos operativos (alertas de stock bajo, resúmenes de
// cierre) por SMTP plano, con un adjunto opcional.
type Mailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from: cfg.SMTPUser,
		auth: smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost),
	}
}

// Send entrega un correo de texto plano. Si adjuntoPath no está vacío,
// el archivo se adjunta tal cual (normalmente el PDF del cierre).
func (m *Mailer) Send(to, subject, body, adjuntoPath string) error {
	msg := email.NewEmail()
	msg.From = m.from
	msg.To = []string{to}
	msg.Subject = subject
	msg.Text = []byte(body)

	if adjuntoPath != "" {
		if _, err := msg.AttachFile(adjuntoPath); err != nil {
			return fmt.Errorf("mailer: adjuntar %s: %w", adjuntoPath, err)
		}
	}
	return msg.Send(m.addr, m.auth)
}
