package services

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"

	"github.com/dimitrije/futbol-api/internal/config"
)

var invitationTemplate = template.Must(template.New("invitation").Parse(`<html>
<body>
	<h2>Invitación a equipo</h2>
	<p><strong>{{.Captain}}</strong>, capitán de <strong>{{.Team}}</strong>, te invitó a sumarte al equipo.</p>
	<p><a href="{{.URL}}">Ver tus invitaciones</a></p>
</body>
</html>
`))

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService sends the invitation notices. Delivery is best effort; the
// invitation exists whether or not the mail goes out.
type EmailService struct {
	cfg      config.SMTPConfig
	sendMail sendMailFunc
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) SendInvitation(to, teamName, captainName, invitationsURL string) error {
	var body bytes.Buffer
	err := invitationTemplate.Execute(&body, struct{ Captain, Team, URL string }{captainName, teamName, invitationsURL})
	if err != nil {
		return fmt.Errorf("failed to render invitation email: %w", err)
	}
	return s.send(to, fmt.Sprintf("%s te invitó a %s", captainName, teamName), body.Bytes())
}

// send is a no-op when SMTP is not configured.
func (s *EmailService) send(to, subject string, html []byte) error {
	if !s.IsConfigured() {
		return nil
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	if err := s.sendMail(addr, auth, s.cfg.From, []string{to}, s.compose(to, subject, html)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (s *EmailService) compose(to, subject string, html []byte) []byte {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(html)
	return msg.Bytes()
}
