// Package notify delivers airdrop notification emails to employees through an
// external email API, with a simulated fallback so the workflow can run
// without live credentials.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
)

// Message is one outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Notifier is the narrow interface the workflow needs from an email service.
type Notifier interface {
	// Send delivers one message. A nil error means the provider accepted it.
	Send(ctx context.Context, msg Message) error
}

// DefaultSubject is used when the caller supplies no subject.
const DefaultSubject = "You have received a token airdrop"

// bodyTemplate renders the notification body for one recipient.
var bodyTemplate = template.Must(template.New("airdrop").Parse(
	`Hello {{if .Name}}{{.Name}}{{else}}there{{end}},

You have received {{.Amount}} {{.Symbol}} tokens.

Wallet address: {{.Wallet}}
{{if .TxID}}Transaction: {{.TxID}}
{{end}}
This wallet is held in custody for you; contact HR to claim access.
`))

// BodyData carries the values rendered into a notification body.
type BodyData struct {
	Name   string
	Amount float64
	Symbol string
	Wallet string
	TxID   string
}

// RenderBody renders the standard notification body for one recipient.
func RenderBody(data BodyData) (string, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify: render body: %w", err)
	}
	return buf.String(), nil
}

// Validate checks the message has the fields every provider requires.
func (m Message) Validate() error {
	if m.From == "" {
		return ErrMissingFrom
	}
	if m.To == "" {
		return ErrMissingRecipient
	}
	return nil
}
