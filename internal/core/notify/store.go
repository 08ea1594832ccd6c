package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Record is the persisted form of a notification, without its callbacks
// or dismissal policy.
type Record struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists notification history to durable storage.
type Store interface {
	Save(ctx context.Context, r Record) error
	List(ctx context.Context) ([]Record, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// NewRecorder returns a Subscriber that saves every shown notification to
// store. Save failures are logged and otherwise ignored so history can
// never break notification delivery.
func NewRecorder(store Store, logger zerolog.Logger) Subscriber {
	return func(ev Event) {
		if ev.Type != EventShown {
			return
		}
		if err := store.Save(context.Background(), ev.Notification.Record()); err != nil {
			logger.Error().Err(err).Str("id", ev.Notification.ID).Msg("failed to persist notification")
		}
	}
}
