package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"garasiku/internal/config"
	"garasiku/internal/domain"
)

// Transport delivers a committed notification record over an out-of-band
// channel. Delivery is at-least-once and happens after the record commits;
// the transfer core never waits on it.
type Transport interface {
	Deliver(ctx context.Context, notif *domain.Notification) error
}

type service struct {
	client *resend.Client
	config *config.Config
	tmpl   *template.Template
}

func NewService(cfg *config.Config) Transport {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
		tmpl:   template.Must(template.New("notification").Parse(notificationTemplate)),
	}
}

func (s *service) Deliver(ctx context.Context, notif *domain.Notification) error {
	var payload domain.NotificationPayload
	if len(notif.Payload) > 0 {
		if err := json.Unmarshal(notif.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode notification payload: %w", err)
		}
	}

	data := struct {
		Title          string
		Body           string
		Vehicle        string
		ActionRequired bool
		Link           string
	}{
		Title:          notif.Title,
		Body:           notif.Body,
		Vehicle:        payload.VehicleSnapshot.Label(),
		ActionRequired: notif.ActionRequired,
		Link:           fmt.Sprintf("https://%s/transfers/%s", s.config.Domain, payload.TransferRequestID),
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render notification email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Garasiku <%s>", s.config.FromEmail),
		To:      []string{notif.RecipientIdentity},
		Html:    body.String(),
		Subject: notif.Title,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

const notificationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2933;">
	<h2>{{.Title}}</h2>
	<p>{{.Body}}</p>
	{{if .Vehicle}}<p><strong>Kendaraan:</strong> {{.Vehicle}}</p>{{end}}
	{{if .ActionRequired}}
	<p><a href="{{.Link}}" style="background:#2563eb;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none;">Lihat Permintaan</a></p>
	{{else}}
	<p><a href="{{.Link}}">Lihat detail transfer</a></p>
	{{end}}
	<p style="color:#6b7280;font-size:12px;">Email ini dikirim otomatis oleh Garasiku.</p>
</body>
</html>`
