// Package notify delivers fire-and-forget dashboard signals such as
// "refresh requested" and "report requested". Delivery has no response
// contract and is never retried.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindRefreshRequested Kind = "refresh_requested"
	KindReportRequested  Kind = "report_requested"
)

type Event struct {
	ID      string         `json:"id"`
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	At      time.Time      `json:"at"`
	Data    map[string]any `json:"data,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(kind Kind, message string, data map[string]any) Event {
	return Event{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
		At:      time.Now().UTC(),
		Data:    data,
	}
}

// Notifier receives events. Implementations must not block the caller for
// long and must not report failures back.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// LogNotifier writes events to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With(slog.String("component", "notify"))}
}

func (n *LogNotifier) Notify(ctx context.Context, e Event) {
	n.logger.InfoContext(ctx, e.Message,
		slog.String("event_id", e.ID),
		slog.String("kind", string(e.Kind)))
}

// Multi fans an event out to several notifiers in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, e Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, e)
		}
	}
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, e Event)

func (f Func) Notify(ctx context.Context, e Event) { f(ctx, e) }
