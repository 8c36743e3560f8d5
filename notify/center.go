package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a toast for the display layer.
type Kind string

const (
	// KindSuccess marks a positive outcome.
	KindSuccess Kind = "success"
	// KindError marks a failed outcome.
	KindError Kind = "error"
	// KindWarning marks a degraded outcome.
	KindWarning Kind = "warning"
	// KindInfo marks a neutral announcement.
	KindInfo Kind = "info"
)

// Toast is one ephemeral message. Duration 0 means the toast persists until
// dismissed.
type Toast struct {
	ID        string
	Kind      Kind
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}

// EventType distinguishes subscription events.
type EventType uint8

const (
	// EventPosted is delivered when a toast enters the queue.
	EventPosted EventType = iota
	// EventDismissed is delivered when a toast leaves the queue.
	EventDismissed
)

// Event is a best-effort notification to subscribers. Deliveries are dropped
// rather than blocked when a subscriber falls behind.
type Event struct {
	Type  EventType
	Toast Toast
}

// Center is the process-wide toast queue. Safe for concurrent use.
type Center struct {
	defaultDuration time.Duration

	mu     sync.Mutex
	toasts []Toast
	timers map[string]*time.Timer
	subs   []chan Event
	closed bool
}

// NewCenter creates a Center whose Post applies defaultDuration when the
// caller passes a negative duration.
func NewCenter(defaultDuration time.Duration) *Center {
	return &Center{
		defaultDuration: defaultDuration,
		timers:          make(map[string]*time.Timer),
	}
}

// Post queues a toast and returns its id. A negative duration selects the
// center default; zero makes the toast sticky. Expired toasts remove
// themselves; there is no reordering and duplicates are not coalesced.
func (c *Center) Post(kind Kind, message string, duration time.Duration) string {
	if duration < 0 {
		duration = c.defaultDuration
	}

	t := Toast{
		ID:        newToastID(),
		Kind:      kind,
		Message:   message,
		Duration:  duration,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return t.ID
	}
	c.toasts = append(c.toasts, t)
	if duration > 0 {
		id := t.ID
		c.timers[id] = time.AfterFunc(duration, func() {
			c.Dismiss(id)
		})
	}
	c.broadcastLocked(Event{Type: EventPosted, Toast: t})
	c.mu.Unlock()

	return t.ID
}

// Success posts a success toast with the default duration.
func (c *Center) Success(message string) string {
	return c.Post(KindSuccess, message, -1)
}

// Error posts an error toast with the default duration.
func (c *Center) Error(message string) string {
	return c.Post(KindError, message, -1)
}

// Warning posts a warning toast with the default duration.
func (c *Center) Warning(message string) string {
	return c.Post(KindWarning, message, -1)
}

// Info posts an info toast with the default duration.
func (c *Center) Info(message string) string {
	return c.Post(KindInfo, message, -1)
}

// Dismiss removes a toast. Dismissing an unknown or already-expired id is a
// no-op, not an error.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			c.broadcastLocked(Event{Type: EventDismissed, Toast: t})
			return
		}
	}
}

// Snapshot returns the queued toasts in insertion order.
func (c *Center) Snapshot() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Subscribe registers a display-layer listener. The returned channel is
// buffered; events are dropped, never blocked on, when the buffer is full.
func (c *Center) Subscribe() <-chan Event {
	ch := make(chan Event, 32)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

// Close stops all expiry timers and closes subscriber channels. Posting
// after Close is a no-op.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
	c.toasts = nil
}

func (c *Center) broadcastLocked(ev Event) {
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// newToastID is collision-resistant enough for an in-process queue: wall
// clock plus a random suffix.
func newToastID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
