package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"shiftease/internal/models"
)

// LogSender writes each notification as a log line. It is the default when no
// delivery channel is configured.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log.With(slog.String("component", "notifier/log"))}
}

func (s *LogSender) Send(_ context.Context, n models.Notification) error {
	s.log.Info("notification",
		slog.String("kind", string(n.Kind)),
		slog.String("event_id", n.EventID),
		slog.String("event_title", n.EventTitle),
		slog.String("user_id", n.UserID),
	)
	return nil
}

// WebhookPayload is the JSON body posted to the webhook.
type WebhookPayload struct {
	ID         int64                   `json:"id"`
	Kind       models.NotificationKind `json:"kind"`
	EventID    string                  `json:"eventId"`
	EventTitle string                  `json:"eventTitle"`
	UserID     string                  `json:"userId"`
	CreatedAt  time.Time               `json:"createdAt"`
}

// WebhookSender posts notifications to an external relay, e.g. a mail service.
type WebhookSender struct {
	url    string
	client *http.Client
}

func NewWebhookSender(url string, client *http.Client) *WebhookSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebhookSender{url: url, client: client}
}

func (s *WebhookSender) Send(ctx context.Context, n models.Notification) error {
	const op = "notifier.WebhookSender.Send"

	body, err := json.Marshal(WebhookPayload{
		ID:         n.ID,
		Kind:       n.Kind,
		EventID:    n.EventID,
		EventTitle: n.EventTitle,
		UserID:     n.UserID,
		CreatedAt:  n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", fmt.Sprintf("notification-%d", n.ID))

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	return nil
}
