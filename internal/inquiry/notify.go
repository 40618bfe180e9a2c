package inquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/resend/resend-go/v3"

	"git.home.luguber.info/inful/sitegen/internal/config"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Notifier tells the firm about a new inquiry.
type Notifier interface {
	Notify(ctx context.Context, inq Inquiry) error
}

// emailAPI is the part of the Resend client used here.
type emailAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendNotifier sends inquiry e-mails through the Resend API.
type ResendNotifier struct {
	emails   emailAPI
	from     string
	to       []string
	siteName string
}

// NewResendNotifier builds a notifier from the notify configuration.
func NewResendNotifier(cfg config.NotifyConfig, siteName string) *ResendNotifier {
	client := resend.NewClient(cfg.APIKey)
	return &ResendNotifier{emails: client.Emails, from: cfg.From, to: cfg.To, siteName: siteName}
}

var emailTemplate = template.Must(template.New("inquiry").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;">
  <h2>{{.Subject}}</h2>
  <table cellpadding="4">
    <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
    <tr><td><strong>Email</strong></td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
    {{- if .Organization}}
    <tr><td><strong>Organization</strong></td><td>{{.Organization}}</td></tr>
    {{- end}}
    <tr><td><strong>Reference</strong></td><td>{{.ID}}</td></tr>
  </table>
  <pre style="white-space:pre-wrap;">{{.Details}}</pre>
</body>
</html>`))

// Notify sends one e-mail per inquiry. Send failures are retryable.
func (n *ResendNotifier) Notify(ctx context.Context, inq Inquiry) error {
	details, err := formatPayload(inq.Payload)
	if err != nil {
		return err
	}
	var html bytes.Buffer
	if err := emailTemplate.Execute(&html, struct {
		Inquiry
		Details string
	}{inq, details}); err != nil {
		return fmt.Errorf("render inquiry email: %w", err)
	}

	subject := fmt.Sprintf("[%s] %s from %s", n.siteName, inq.Subject, inq.Name)
	text := fmt.Sprintf("%s\n\nName: %s\nEmail: %s\nOrganization: %s\nReference: %s\n\n%s\n",
		inq.Subject, inq.Name, inq.Email, inq.Organization, inq.ID, details)

	_, err = n.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: subject,
		Html:    html.String(),
		Text:    text,
	})
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to send inquiry email").
			Retryable().
			WithContext("inquiry_id", inq.ID).
			Build()
	}
	return nil
}

// formatPayload renders the submitted JSON as indented "key: value" lines.
func formatPayload(payload []byte) (string, error) {
	fields, err := decodeFields(payload)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%s: %s\n", f.key, f.value)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

type field struct{ key, value string }

// decodeFields reads a flat JSON object keeping key order. Empty values are dropped.
func decodeFields(payload []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode inquiry payload: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("decode inquiry payload: expected object")
	}
	var out []field
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode inquiry payload: %w", err)
		}
		key, _ := kt.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode inquiry payload: %w", err)
		}
		if s := formatValue(v); s != "" {
			out = append(out, field{key: key, value: s})
		}
	}
	return out, nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, formatValue(e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}
