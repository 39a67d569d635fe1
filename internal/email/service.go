package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/doi-radiologia/portal-api/internal/config"
)

// Service sends transactional portal mail.
type Service interface {
	SendVerification(to, token string) error
	SendPasswordReset(to, token string) error
}

type smtpService struct {
	cfg    config.SMTPConfig
	public string
	dialer *gomail.Dialer
}

func NewService(cfg config.SMTPConfig, publicURL string) Service {
	return &smtpService{
		cfg:    cfg,
		public: publicURL,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (s *smtpService) SendVerification(to, token string) error {
	link := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", s.public, token)
	body := fmt.Sprintf(
		"<p>Gracias por registrarte en DOI Radiología.</p>"+
			"<p>Confirmá tu correo haciendo clic en el siguiente enlace:</p>"+
			"<p><a href=%q>Confirmar correo</a></p>", link)
	return s.send(to, "Confirmá tu correo — DOI Radiología", body)
}

func (s *smtpService) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/recuperar-password?token=%s", s.public, token)
	body := fmt.Sprintf(
		"<p>Recibimos un pedido para restablecer tu contraseña.</p>"+
			"<p><a href=%q>Restablecer contraseña</a></p>"+
			"<p>Si no fuiste vos, ignorá este correo.</p>", link)
	return s.send(to, "Restablecer contraseña — DOI Radiología", body)
}

func (s *smtpService) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
