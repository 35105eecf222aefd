package smtp

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"net/textproto"

	"github.com/go-shop-auth/internal/config"
	"github.com/go-shop-auth/internal/domain"
	"github.com/jordan-wright/email"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mailer renders a template per domain.TemplateKind and sends it as HTML mail.
type Mailer struct {
	addr      string
	from      string
	auth      smtp.Auth
	templates *template.Template
	send      func(e *email.Email) error
}

func NewMailer(cfg *config.Config) (*Mailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	m := &Mailer{
		addr:      fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort),
		from:      cfg.SMTPFrom,
		templates: tmpl,
	}
	if cfg.SMTPUsername != "" {
		m.auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	m.send = func(e *email.Email) error { return e.Send(m.addr, m.auth) }
	return m, nil
}

func (m *Mailer) Send(ctx context.Context, msg domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	html, err := m.render(msg.Template, msg.Data)
	if err != nil {
		return err
	}
	e := &email.Email{
		To:      []string{msg.To},
		From:    m.from,
		Subject: msg.Subject,
		HTML:    html,
		Headers: textproto.MIMEHeader{},
	}
	if err := m.send(e); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func (m *Mailer) render(kind domain.TemplateKind, data map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	name := string(kind) + ".html"
	if m.templates.Lookup(name) == nil {
		return nil, fmt.Errorf("unknown mail template %q", kind)
	}
	if err := m.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", kind, err)
	}
	return buf.Bytes(), nil
}
