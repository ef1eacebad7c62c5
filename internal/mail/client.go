// Package mail renders templated notification emails and sends them over
// SMTP.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// A Sender delivers a rendered mail to a recipient.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender sends mail through a plain SMTP relay. Host, port and
// credentials come from the environment.
type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (s SMTPSender) Send(to, subject, htmlBody string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: \"Budget Buddy\" <%s>\r\n", s.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Password, s.Host)
	}

	return smtp.SendMail(addr, auth, s.From, []string{to}, []byte(msg.String()))
}
