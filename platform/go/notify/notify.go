// Package notify tells the office about new leads.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net"
	"net/mail"
	"net/smtp"
	texttemplate "text/template"

	"github.com/jhillyerd/enmime"
	"go.uber.org/zap"

	"github.com/exchangedesk/fortworth1031/platform/go/persistence"
)

// Notifier delivers a lead notification.
type Notifier interface {
	NotifyLead(ctx context.Context, lead persistence.Lead) error
}

// Noop drops notifications; used when mail is not configured.
type Noop struct {
	Logger *zap.Logger
}

func (n Noop) NotifyLead(_ context.Context, lead persistence.Lead) error {
	if n.Logger != nil {
		n.Logger.Debug("lead notification disabled", zap.String("lead_id", lead.LeadID.String()))
	}
	return nil
}

// MailConfig configures MailNotifier.
type MailConfig struct {
	From        string
	To          []string
	CompanyName string
}

// MailNotifier sends a multipart text/HTML message through an enmime.Sender.
type MailNotifier struct {
	sender enmime.Sender
	cfg    MailConfig
}

// NewMailNotifier validates the addresses in cfg.
func NewMailNotifier(sender enmime.Sender, cfg MailConfig) (*MailNotifier, error) {
	if sender == nil {
		return nil, errors.New("mail sender is required")
	}
	if _, err := mail.ParseAddress(cfg.From); err != nil {
		return nil, fmt.Errorf("parse from address: %w", err)
	}
	if len(cfg.To) == 0 {
		return nil, errors.New("at least one recipient is required")
	}
	for _, to := range cfg.To {
		if _, err := mail.ParseAddress(to); err != nil {
			return nil, fmt.Errorf("parse recipient %q: %w", to, err)
		}
	}
	return &MailNotifier{sender: sender, cfg: cfg}, nil
}

// NewSMTPNotifier sends through the SMTP relay at addr. Empty user skips auth.
func NewSMTPNotifier(addr, user, password string, cfg MailConfig) (*MailNotifier, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("parse smtp addr: %w", err)
	}
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}
	return NewMailNotifier(enmime.NewSMTP(addr, auth), cfg)
}

func (m *MailNotifier) NotifyLead(ctx context.Context, lead persistence.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from, _ := mail.ParseAddress(m.cfg.From)
	text, html, err := renderLead(lead, m.cfg.CompanyName)
	if err != nil {
		return err
	}

	builder := enmime.Builder().
		From(from.Name, from.Address).
		Subject(fmt.Sprintf("New 1031 lead: %s (%s)", lead.Name, lead.City)).
		Text(text).
		HTML(html)

	for _, to := range m.cfg.To {
		addr, _ := mail.ParseAddress(to)
		builder = builder.To(addr.Name, addr.Address)
	}
	if replyTo, err := mail.ParseAddress(lead.Email); err == nil {
		builder = builder.ReplyTo(lead.Name, replyTo.Address)
	}

	if err := builder.Send(m.sender); err != nil {
		return fmt.Errorf("send lead notification: %w", err)
	}
	return nil
}

type leadView struct {
	Company string
	Lead    persistence.Lead
}

var textTmpl = texttemplate.Must(texttemplate.New("lead").Parse(`New lead for {{.Company}}

Name: {{.Lead.Name}}
Email: {{.Lead.Email}}
Phone: {{.Lead.Phone}}
Property sold: {{.Lead.PropertySold}}
Estimated close: {{.Lead.EstimatedClose}}
City: {{.Lead.City}}
{{- if .Lead.ProjectType}}
Focus: {{.Lead.ProjectType}}{{end}}
{{- if .Lead.Timezone}}
Timezone: {{.Lead.Timezone}}{{end}}

{{.Lead.Message}}
`))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("lead").Parse(`<h1>New lead for {{.Company}}</h1>
<table>
<tr><th>Name</th><td>{{.Lead.Name}}</td></tr>
<tr><th>Email</th><td><a href="mailto:{{.Lead.Email}}">{{.Lead.Email}}</a></td></tr>
<tr><th>Phone</th><td>{{.Lead.Phone}}</td></tr>
<tr><th>Property sold</th><td>{{.Lead.PropertySold}}</td></tr>
<tr><th>Estimated close</th><td>{{.Lead.EstimatedClose}}</td></tr>
<tr><th>City</th><td>{{.Lead.City}}</td></tr>
{{- if .Lead.ProjectType}}
<tr><th>Focus</th><td>{{.Lead.ProjectType}}</td></tr>{{end}}
</table>
<p>{{.Lead.Message}}</p>
`))

func renderLead(lead persistence.Lead, company string) ([]byte, []byte, error) {
	view := leadView{Company: company, Lead: lead}

	var text, html bytes.Buffer
	if err := textTmpl.Execute(&text, view); err != nil {
		return nil, nil, fmt.Errorf("render lead text: %w", err)
	}
	if err := htmlTmpl.Execute(&html, view); err != nil {
		return nil, nil, fmt.Errorf("render lead html: %w", err)
	}
	return text.Bytes(), html.Bytes(), nil
}
