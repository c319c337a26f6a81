package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendDealClosed tells the coach a rep just closed a deal.
func (s *EmailSender) SendDealClosed(to, prospect string, amount float64, week, year int) error {
	data := DealClosedEmailData{
		Prospect: prospect,
		Amount:   fmt.Sprintf("$%.2f", amount),
		Week:     fmt.Sprintf("week %d/%d", week, year),
	}

	tmplPath := filepath.Join("templates", "deal_closed.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("reading email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("rendering email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "no-reply@sizzlecoaching.app")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("🔥 Deal closed: %s (%s)", prospect, data.Amount))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending SMTP email: %w", err)
	}

	return nil
}
