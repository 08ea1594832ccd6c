// Package notify implements the notification center: the list of active
// user-facing notifications, their identifiers, defaults, and auto-dismiss
// timers.
package notify

import "time"

// Kind is the semantic category of a notification. It drives presentation
// only; the center treats every kind the same.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// DefaultDuration is the auto-dismiss delay applied when none is given.
const DefaultDuration = 5000 * time.Millisecond

// Notification is a single active notification. Records are never mutated
// after creation; the center only appends and removes them.
type Notification struct {
	ID               string
	Kind             Kind
	Title            string
	Message          string
	ActionLabel      string
	OnAction         func()
	AutoDismiss      bool
	AutoDismissAfter time.Duration
	CreatedAt        time.Time
}

// HasAction reports whether the notification offers a secondary action.
func (n Notification) HasAction() bool {
	return n.ActionLabel != "" && n.OnAction != nil
}

// Record returns the persistable part of the notification.
func (n Notification) Record() Record {
	return Record{
		ID:        n.ID,
		Kind:      n.Kind,
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
}

// Partial is the input to Center.Enqueue. Only Message is expected; every
// other field falls back to a default when left at its zero value.
type Partial struct {
	Kind        Kind
	Title       string
	Message     string
	ActionLabel string
	OnAction    func()

	// AutoDismiss is a pointer so an explicit false can be told apart from
	// "not set" (which means true).
	AutoDismiss      *bool
	AutoDismissAfter time.Duration
}

// Options are the optional settings accepted by the kind-specific helpers
// (Center.Success, Center.Error, ...).
type Options struct {
	Title       string
	ActionLabel string
	OnAction    func()
	AutoClose   *bool
	// AutoCloseTime overrides the auto-dismiss delay. Zero keeps the default.
	AutoCloseTime time.Duration
}

// Bool returns a pointer to v, for Partial.AutoDismiss and Options.AutoClose.
func Bool(v bool) *bool { return &v }

// mergeOptions folds opts left to right; later non-zero fields win.
func mergeOptions(opts []Options) Options {
	var out Options
	for _, o := range opts {
		if o.Title != "" {
			out.Title = o.Title
		}
		if o.ActionLabel != "" {
			out.ActionLabel = o.ActionLabel
		}
		if o.OnAction != nil {
			out.OnAction = o.OnAction
		}
		if o.AutoClose != nil {
			out.AutoClose = o.AutoClose
		}
		if o.AutoCloseTime != 0 {
			out.AutoCloseTime = o.AutoCloseTime
		}
	}
	return out
}

func (o Options) partial(kind Kind, message string) Partial {
	return Partial{
		Kind:             kind,
		Title:            o.Title,
		Message:          message,
		ActionLabel:      o.ActionLabel,
		OnAction:         o.OnAction,
		AutoDismiss:      o.AutoClose,
		AutoDismissAfter: o.AutoCloseTime,
	}
}

// EventType identifies what happened to a notification.
type EventType string

const (
	EventShown     EventType = "shown"
	EventDismissed EventType = "dismissed"
)

// Reason explains why a notification left the active set.
type Reason string

const (
	ReasonManual  Reason = "manual"
	ReasonExpired Reason = "expired"
	ReasonCleared Reason = "cleared"
)

// Event is delivered to subscribers after every change to the active set.
type Event struct {
	Type         EventType
	Reason       Reason
	Notification Notification
}

// Subscriber observes changes to the active set.
type Subscriber func(Event)
