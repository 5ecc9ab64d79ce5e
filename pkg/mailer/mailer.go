package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// Notifier definition new message notify
type Notifier interface {
	NotifyNewMessage(n MessageNotice) error
}

// MessageNotice definition mail content data
type MessageNotice struct {
	To         string
	SenderName string
	ItemTitle  string
	Preview    string
}

var newMessageTmpl = template.Must(template.New("new_message").Parse(
	`<p>{{.SenderName}} sent you a message{{if .ItemTitle}} about <b>{{.ItemTitle}}</b>{{end}}:</p>
<blockquote>{{.Preview}}</blockquote>
<p>Sign in to Campus Lost &amp; Found to reply.</p>`))

const previewLimit = 140

// Sender gomail sender
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender host 為空回傳 Noop
func NewSender(host string, port int, username, password, from string) Notifier {
	if host == "" {
		return Noop{}
	}
	return &Sender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// NotifyNewMessage send mail to receiver
func (s *Sender) NotifyNewMessage(n MessageNotice) error {
	if n.To == "" {
		return nil
	}
	body, err := RenderNewMessage(n)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", fmt.Sprintf("New message from %s", n.SenderName))
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

// RenderNewMessage render mail body, preview 過長截斷
func RenderNewMessage(n MessageNotice) (string, error) {
	if r := []rune(n.Preview); len(r) > previewLimit {
		n.Preview = string(r[:previewLimit]) + "..."
	}
	buf := new(bytes.Buffer)
	if err := newMessageTmpl.Execute(buf, n); err != nil {
		return "", fmt.Errorf("failed to execute template new_message: %w", err)
	}
	return buf.String(), nil
}

// Noop disable mail
type Noop struct{}

// NotifyNewMessage do nothing
func (Noop) NotifyNewMessage(MessageNotice) error { return nil }
