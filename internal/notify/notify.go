// Package notify carries user-facing notification events from the
// rewards core to whoever displays them.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event kinds emitted by the core.
const (
	KindQuiz      = "quiz"
	KindSpin      = "spin"
	KindBadge     = "badge"
	KindFlashSale = "flash_sale"
	KindOrder     = "order"
	KindWarning   = "warning"
)

// Event is a single user-facing notification.
type Event struct {
	UserID      uuid.UUID `json:"user_id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notifier receives notification events. Implementations must not
// block the caller for long; delivery is fire-and-forget.
type Notifier interface {
	Notify(event Event)
}

// Multi fans an event out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(event Event) {
	for _, n := range m {
		n.Notify(event)
	}
}

const feedLimit = 50

// Feed is an in-memory per-user notification feed, newest first.
type Feed struct {
	mu     sync.Mutex
	events map[uuid.UUID][]Event
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{events: make(map[uuid.UUID][]Event)}
}

// Notify records the event on the user's feed.
func (f *Feed) Notify(event Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := append([]Event{event}, f.events[event.UserID]...)
	if len(list) > feedLimit {
		list = list[:feedLimit]
	}
	f.events[event.UserID] = list
}

// List returns the user's notifications, newest first.
func (f *Feed) List(userID uuid.UUID) []Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := f.events[userID]
	out := make([]Event, len(list))
	copy(out, list)
	return out
}
