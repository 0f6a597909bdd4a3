// Package mailer delivers order notifications over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"mime"
	"net/smtp"
	"path/filepath"

	"github.com/jordan-wright/email"
)

// Attachment references either a file on disk (Path) or in-memory content.
// ContentID, when set, makes the attachment addressable from the HTML body
// as cid:<ContentID>.
type Attachment struct {
	Filename    string
	Path        string
	Content     []byte
	ContentType string
	ContentID   string
}

// Message is one outbound email.
type Message struct {
	To          string
	From        string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Mailer sends a message and returns an error when delivery fails.
type Mailer interface {
	Send(msg *Message) error
}

// SMTPMailer is a Mailer backed by a plain SMTP transport.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
}

// NewSMTPMailer creates an SMTPMailer for the given host and port. Auth is
// skipped when no username is configured.
func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
	}
}

// Send delivers the message. Each attachment is wired up with its
// content-id so inline images resolve in the HTML body.
func (m *SMTPMailer) Send(msg *Message) error {
	e := email.NewEmail()
	e.To = []string{msg.To}
	e.From = msg.From
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)
	e.HTML = []byte(msg.HTML)

	for _, att := range msg.Attachments {
		var (
			attached *email.Attachment
			err      error
		)
		if att.Content != nil {
			contentType := att.ContentType
			if contentType == "" {
				contentType = mime.TypeByExtension(filepath.Ext(att.Filename))
			}
			attached, err = e.Attach(bytes.NewReader(att.Content), att.Filename, contentType)
		} else {
			attached, err = e.AttachFile(att.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to attach %s: %w", att.Filename, err)
		}
		if att.ContentID != "" {
			attached.HTMLRelated = true
			attached.Header.Set("Content-ID", fmt.Sprintf("<%s>", att.ContentID))
		}
	}

	if err := e.Send(m.addr, m.auth); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}
