package mailer

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	gomail "gopkg.in/mail.v2"
)

type SMTPClient struct {
	fromEmail string
	dialer    *gomail.Dialer
}

func NewSMTPClient(host string, port int, username, password, fromEmail string) (*SMTPClient, error) {
	if host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}

	return &SMTPClient{
		fromEmail: fromEmail,
		dialer:    gomail.NewDialer(host, port, username, password),
	}, nil
}

// Send renders the named embedded template and delivers it, retrying a few
// times before giving up. Returns the number of the attempt that succeeded.
func (c *SMTPClient) Send(templateFile, username, email string, data any) (int, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return -1, err
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return -1, err
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return -1, err
	}

	message := gomail.NewMessage()
	message.SetHeader("From", fmt.Sprintf("%s <%s>", FromName, c.fromEmail))
	message.SetHeader("To", email)
	message.SetHeader("Subject", subject.String())
	message.SetBody("text/html", body.String())

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		if err := c.dialer.DialAndSend(message); err != nil {
			lastErr = err
			time.Sleep(time.Second * time.Duration(i))
			continue
		}
		return i, nil
	}

	return -1, fmt.Errorf("failed to send email to %s after %d attempts: %w", email, maxRetries, lastErr)
}
