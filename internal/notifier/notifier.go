// Package notifier delivers the notification outbox written by the ledger
// transactions. Delivery runs after the ledger change is committed, so a
// failing sender never affects registration state.
package notifier

import (
	"context"
	"log/slog"
	"time"

	"shiftease/internal/lib/logger/sl"
	"shiftease/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Outbox
type Outbox interface {
	PendingNotifications(ctx context.Context, limit, maxAttempts int) ([]models.Notification, error)
	MarkNotificationSent(ctx context.Context, id int64) error
	MarkNotificationFailed(ctx context.Context, id int64, reason string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Sender
type Sender interface {
	Send(ctx context.Context, n models.Notification) error
}

type Options struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	// Timeout bounds a single Send call.
	Timeout time.Duration
}

type Worker struct {
	log    *slog.Logger
	outbox Outbox
	sender Sender
	opts   Options
}

func New(log *slog.Logger, outbox Outbox, sender Sender, opts Options) *Worker {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	return &Worker{
		log:    log.With(slog.String("component", "notifier")),
		outbox: outbox,
		sender: sender,
		opts:   opts,
	}
}

// Run polls the outbox until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	w.log.Info("notifier started", slog.Duration("poll_interval", w.opts.PollInterval))

	for {
		select {
		case <-ticker.C:
			if _, err := w.ProcessBatch(ctx); err != nil {
				w.log.Error("failed to process notification batch", sl.Err(err))
			}
		case <-ctx.Done():
			w.log.Info("notifier stopped")
			return
		}
	}
}

// ProcessBatch delivers one batch and returns how many records were sent.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	pending, err := w.outbox.PendingNotifications(ctx, w.opts.BatchSize, w.opts.MaxAttempts)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, n := range pending {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}

		log := w.log.With(
			slog.Int64("notification_id", n.ID),
			slog.String("event_id", n.EventID),
			slog.String("user_id", n.UserID),
			slog.String("kind", string(n.Kind)),
		)

		if err := w.send(ctx, n); err != nil {
			log.Warn("failed to deliver notification", sl.Err(err), slog.Int("attempt", n.Attempts+1))

			if markErr := w.outbox.MarkNotificationFailed(ctx, n.ID, err.Error()); markErr != nil {
				log.Error("failed to mark notification failed", sl.Err(markErr))
			}
			continue
		}

		if err := w.outbox.MarkNotificationSent(ctx, n.ID); err != nil {
			log.Error("failed to mark notification sent", sl.Err(err))
			continue
		}

		sent++
	}

	return sent, nil
}

func (w *Worker) send(ctx context.Context, n models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
	defer cancel()

	return w.sender.Send(ctx, n)
}
