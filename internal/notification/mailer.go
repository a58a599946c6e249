package notification

import (
	"crypto/tls"
	"errors"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailerFromEnv membaca MAIL_HOST, MAIL_PORT, MAIL_USER, MAIL_PASS.
func NewSMTPMailerFromEnv() (Mailer, error) {
	host := os.Getenv("MAIL_HOST")
	user := os.Getenv("MAIL_USER")
	pass := os.Getenv("MAIL_PASS")
	if host == "" || user == "" {
		return nil, errors.New("MAIL_HOST and MAIL_USER are required")
	}

	port, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(host, port, user, pass)
	if os.Getenv("MAIL_SKIP_TLS_VERIFY") == "true" {
		dialer.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &smtpMailer{dialer: dialer, from: user}, nil
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
