package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/unitdesk/internal/core/logging"
)

type entry struct {
	notification Notification
	timer        Timer // nil for manual notifications
}

// Center owns the ordered set of active notifications. Insertion order is
// display order. All methods are safe for concurrent use; auto-dismiss
// timers fire on their own goroutines and go through the same lock.
//
// Enqueue, Dismiss and the kind helpers never fail.
type Center struct {
	clock      Clock
	newID      func() string
	defaultTTL time.Duration
	logger     zerolog.Logger

	mu          sync.Mutex
	entries     []*entry
	subscribers map[int]Subscriber
	nextSubID   int
	pending     []Event

	deliverMu sync.Mutex
}

// CenterOption configures a Center.
type CenterOption func(*Center)

// WithClock sets the time source used for timestamps and timers.
func WithClock(clock Clock) CenterOption {
	return func(c *Center) { c.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) CenterOption {
	return func(c *Center) { c.logger = l }
}

// WithDefaultDuration overrides DefaultDuration for notifications that do
// not set their own delay. Non-positive values are ignored.
func WithDefaultDuration(d time.Duration) CenterOption {
	return func(c *Center) {
		if d > 0 {
			c.defaultTTL = d
		}
	}
}

// WithIDGenerator replaces the identifier generator. The generator must
// never return the same value twice.
func WithIDGenerator(fn func() string) CenterOption {
	return func(c *Center) { c.newID = fn }
}

func newID() string {
	return "alert-" + uuid.NewString()
}

// New creates an empty notification center.
func New(opts ...CenterOption) *Center {
	c := &Center{
		clock:       RealClock(),
		newID:       newID,
		defaultTTL:  DefaultDuration,
		logger:      logging.Component("notify"),
		subscribers: make(map[int]Subscriber),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enqueue adds a notification and returns its identifier. Unset fields take
// their defaults: kind info, auto-dismiss on, the center's default delay.
// Optional fields are not validated.
func (c *Center) Enqueue(p Partial) string {
	n := Notification{
		ID:               c.newID(),
		Kind:             p.Kind,
		Title:            p.Title,
		Message:          p.Message,
		ActionLabel:      p.ActionLabel,
		OnAction:         p.OnAction,
		AutoDismiss:      true,
		AutoDismissAfter: p.AutoDismissAfter,
		CreatedAt:        c.clock.Now(),
	}
	if n.Kind == "" {
		n.Kind = KindInfo
	}
	if p.AutoDismiss != nil {
		n.AutoDismiss = *p.AutoDismiss
	}
	if n.AutoDismissAfter == 0 {
		n.AutoDismissAfter = c.defaultTTL
	}

	e := &entry{notification: n}

	c.mu.Lock()
	c.entries = append(c.entries, e)
	if n.AutoDismiss {
		id := n.ID
		e.timer = c.clock.AfterFunc(n.AutoDismissAfter, func() {
			c.remove(id, e, ReasonExpired)
		})
	}
	c.pending = append(c.pending, Event{Type: EventShown, Notification: n})
	c.mu.Unlock()

	c.logger.Debug().
		Str("id", n.ID).
		Str("kind", string(n.Kind)).
		Bool("auto_dismiss", n.AutoDismiss).
		Dur("after", n.AutoDismissAfter).
		Msg("notification shown")

	c.deliver()
	return n.ID
}

// Success enqueues a success notification.
func (c *Center) Success(message string, opts ...Options) string {
	return c.Enqueue(mergeOptions(opts).partial(KindSuccess, message))
}

// Error enqueues an error notification.
func (c *Center) Error(message string, opts ...Options) string {
	return c.Enqueue(mergeOptions(opts).partial(KindError, message))
}

// Info enqueues an info notification.
func (c *Center) Info(message string, opts ...Options) string {
	return c.Enqueue(mergeOptions(opts).partial(KindInfo, message))
}

// Warning enqueues a warning notification.
func (c *Center) Warning(message string, opts ...Options) string {
	return c.Enqueue(mergeOptions(opts).partial(KindWarning, message))
}

// Dismiss removes the notification with the given id. Unknown or already
// removed ids are ignored.
func (c *Center) Dismiss(id string) {
	c.remove(id, nil, ReasonManual)
}

// DismissAll removes every active notification and cancels their timers.
func (c *Center) DismissAll() {
	c.mu.Lock()
	removed := c.entries
	c.entries = nil
	for _, e := range removed {
		if e.timer != nil {
			e.timer.Stop()
		}
		c.pending = append(c.pending, Event{
			Type:         EventDismissed,
			Reason:       ReasonCleared,
			Notification: e.notification,
		})
	}
	c.mu.Unlock()

	if len(removed) > 0 {
		c.logger.Debug().Int("count", len(removed)).Msg("notifications cleared")
	}
	c.deliver()
}

// Close tears the center down, dismissing everything that is still active.
func (c *Center) Close() error {
	c.DismissAll()
	return nil
}

// remove cancels the timer of the matching entry and then drops it. When
// owner is non-nil the entry is only removed if it is still that exact
// record, so a late timer can never touch anything else.
func (c *Center) remove(id string, owner *entry, reason Reason) {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 || (owner != nil && c.entries[idx] != owner) {
		c.mu.Unlock()
		return
	}

	e := c.entries[idx]
	if e.timer != nil {
		e.timer.Stop()
	}
	c.entries = slices.Delete(c.entries, idx, idx+1)
	c.pending = append(c.pending, Event{
		Type:         EventDismissed,
		Reason:       reason,
		Notification: e.notification,
	})
	c.mu.Unlock()

	c.logger.Debug().Str("id", id).Str("reason", string(reason)).Msg("notification dismissed")
	c.deliver()
}

func (c *Center) indexOf(id string) int {
	return slices.IndexFunc(c.entries, func(e *entry) bool {
		return e.notification.ID == id
	})
}

// Active returns a snapshot of the active notifications in display order.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.notification
	}
	return out
}

// Len returns the number of active notifications.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Get returns the active notification with the given id.
func (c *Center) Get(id string) (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return Notification{}, false
	}
	return c.entries[idx].notification, true
}

// Action runs the secondary action of the notification with the given id
// and reports whether one ran. The notification stays active; dismissing
// it is up to the callback.
func (c *Center) Action(id string) bool {
	n, ok := c.Get(id)
	if !ok || n.OnAction == nil {
		return false
	}
	n.OnAction()
	return true
}

// Subscribe registers fn to receive every event. Events are delivered in
// the order the changes were applied, after the state update completed.
// The returned function removes the subscription.
func (c *Center) Subscribe(fn Subscriber) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// deliver drains pending events to subscribers. Only one goroutine
// delivers at a time; a caller that loses the race leaves its events to
// the goroutine already delivering, which re-checks the queue after it
// releases deliverMu. Re-entrant calls from a subscriber return at once.
func (c *Center) deliver() {
	for {
		if !c.deliverMu.TryLock() {
			return
		}

		for {
			c.mu.Lock()
			events := c.pending
			c.pending = nil
			subs := make([]Subscriber, 0, len(c.subscribers))
			for _, id := range sortedKeys(c.subscribers) {
				subs = append(subs, c.subscribers[id])
			}
			c.mu.Unlock()

			if len(events) == 0 {
				break
			}
			for _, ev := range events {
				for _, fn := range subs {
					c.call(fn, ev)
				}
			}
		}

		c.deliverMu.Unlock()

		c.mu.Lock()
		empty := len(c.pending) == 0
		c.mu.Unlock()
		if empty {
			return
		}
	}
}

func (c *Center) call(fn Subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().
				Interface("panic", r).
				Str("id", ev.Notification.ID).
				Str("event", string(ev.Type)).
				Msg("notification subscriber panicked")
		}
	}()
	fn(ev)
}

func sortedKeys(m map[int]Subscriber) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
