// Package mailer sends the weekly digest email through the Gmail API.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"

	"newsletter_digest/internal/domain"
)

//go:embed templates/digest.html
var templates embed.FS

var digestTemplate = template.Must(template.New("digest.html").
	Funcs(template.FuncMap{
		"inc":        func(i int) int { return i + 1 },
		"join":       strings.Join,
		"conviction": convictionColor,
	}).
	ParseFS(templates, "templates/digest.html"))

type Config struct {
	Sender    string
	Recipient string
	IdeasURL  string
	Location  *time.Location
}

type Gmail struct {
	svc    *gmail.Service
	cfg    Config
	logger *slog.Logger
}

func New(svc *gmail.Service, cfg Config, logger *slog.Logger) *Gmail {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Gmail{
		svc:    svc,
		cfg:    cfg,
		logger: logger.With("component", "mailer"),
	}
}

// Subject is the email subject for the digest of key.
func Subject(key domain.WeekKey, loc *time.Location) string {
	return fmt.Sprintf("Newsletter Digest — Week %d — %s", key.Week, key.Monday(loc).Format("Monday 2 January 2006"))
}

type digestView struct {
	Title    string
	Payload  domain.DigestPayload
	DocURL   string
	IdeasURL string
}

func (g *Gmail) SendDigest(ctx context.Context, rec *domain.DigestRecord) error {
	subject := Subject(rec.Key, g.cfg.Location)

	var body bytes.Buffer
	err := digestTemplate.Execute(&body, digestView{
		Title:    subject,
		Payload:  rec.Payload,
		DocURL:   rec.DocRef,
		IdeasURL: g.cfg.IdeasURL,
	})
	if err != nil {
		return fmt.Errorf("render digest email: %w", err)
	}

	raw := buildMessage(g.cfg.Sender, g.cfg.Recipient, subject, body.String())

	_, err = g.svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("send digest email: %w", err)
	}

	g.logger.Info("digest email sent", "recipient", g.cfg.Recipient, "week", rec.Key.String())
	return nil
}

// buildMessage renders an RFC 2822 HTML message and encodes it as base64url.
func buildMessage(from, to, subject, html string) string {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString([]byte(html))
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteString("\r\n")
		encoded = encoded[76:]
	}
	b.WriteString(encoded)
	b.WriteString("\r\n")

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

func convictionColor(level string) string {
	switch level {
	case "high":
		return "#22c55e"
	case "medium":
		return "#f59e0b"
	default:
		return "#94a3b8"
	}
}
