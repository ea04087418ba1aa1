// Package notify delivers member notifications. Messages name a template
// and carry its variables; senders render and deliver them.
package notify

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htmltmpl "html/template"
	texttmpl "text/template"
)

const (
	TemplatePaymentReminder = "payment_reminder"
	TemplateDebtAlert       = "debt_alert"
)

var ErrUnknownTemplate = errors.New("notify: unknown template")

// Message is one notification to one recipient.
type Message struct {
	To          string
	ToName      string
	Subject     string
	TemplateKey string
	Vars        map[string]string
}

// Sender delivers a single message. Errors are per message so a batch can
// carry on past a failed recipient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

//go:embed templates/*
var templateFS embed.FS

var (
	textTemplates = texttmpl.Must(texttmpl.New("").Option("missingkey=zero").ParseFS(templateFS, "templates/*.txt"))
	htmlTemplates = htmltmpl.Must(htmltmpl.New("").Option("missingkey=zero").ParseFS(templateFS, "templates/*.html"))
)

// Rendered is a message body in both formats.
type Rendered struct {
	Text string
	HTML string
}

// Render executes the text and HTML templates for msg.TemplateKey.
func Render(msg Message) (Rendered, error) {
	tt := textTemplates.Lookup(msg.TemplateKey + ".txt")
	ht := htmlTemplates.Lookup(msg.TemplateKey + ".html")
	if tt == nil || ht == nil {
		return Rendered{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, msg.TemplateKey)
	}

	var text, html bytes.Buffer
	if err := tt.Execute(&text, msg.Vars); err != nil {
		return Rendered{}, fmt.Errorf("render text %s: %w", msg.TemplateKey, err)
	}
	if err := ht.Execute(&html, msg.Vars); err != nil {
		return Rendered{}, fmt.Errorf("render html %s: %w", msg.TemplateKey, err)
	}
	return Rendered{Text: text.String(), HTML: html.String()}, nil
}
