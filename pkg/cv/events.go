package cv

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventCreated        EventKind = "created"
	EventUpdated        EventKind = "updated"
	EventDeleted        EventKind = "deleted"
	EventPrimaryChanged EventKind = "primary_changed"
	EventSynced         EventKind = "synced"
)

// Event is emitted after a CV mutation has been persisted.
type Event struct {
	Kind   EventKind
	UserID uuid.UUID
	CVID   uuid.UUID
}

// Listener reacts to persisted CV mutations (cache invalidation, audit, ...).
type Listener func(ctx context.Context, e Event)

// Notifier fans events out to subscribed listeners in subscription order.
type Notifier struct {
	mu        sync.RWMutex
	listeners []Listener
}

func NewNotifier() *Notifier { return &Notifier{} }

func (n *Notifier) Subscribe(l Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

// Publish is a no-op on a nil Notifier.
func (n *Notifier) Publish(ctx context.Context, e Event) {
	if n == nil {
		return
	}
	n.mu.RLock()
	ls := append([]Listener(nil), n.listeners...)
	n.mu.RUnlock()
	for _, l := range ls {
		l(ctx, e)
	}
}
