// Package realtime fans out ledger and appointment changes to connected
// clients and to in-process listeners.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	TableAppointments = "appointments"
	TableTransactions = "transactions"
	TableExpenses     = "expenses"
)

type Event string

const (
	EventInsert Event = "INSERT"
	EventUpdate Event = "UPDATE"
	EventDelete Event = "DELETE"
)

// Change describes one committed write.
type Change struct {
	ID       string    `json:"id"`
	Table    string    `json:"table"`
	Event    Event     `json:"event"`
	RecordID int64     `json:"record_id"`
	At       time.Time `json:"at"`
}

// Notifier reacts to published changes (cache invalidation, metrics).
type Notifier interface {
	Notify(ctx context.Context, change Change) error
}

type subscriber struct {
	table string
	ch    chan Change
}

// Hub delivers changes to subscribers. A subscriber whose buffer is full
// misses the change instead of blocking the publisher.
type Hub struct {
	Notifiers []Notifier
	Buffer    int
	Now       func() time.Time

	mu   sync.RWMutex
	subs map[string]*subscriber
}

// NewHub constructs a Hub.
func NewHub(notifiers ...Notifier) *Hub {
	return &Hub{Notifiers: notifiers, Buffer: 16}
}

func (h *Hub) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

// Subscribe registers for changes on table, or on every table when table is
// empty. The returned cancel func must be called to release the subscription.
func (h *Hub) Subscribe(table string) (<-chan Change, func()) {
	size := h.Buffer
	if size <= 0 {
		size = 16
	}
	id := uuid.NewString()
	sub := &subscriber{table: table, ch: make(chan Change, size)}

	h.mu.Lock()
	if h.subs == nil {
		h.subs = make(map[string]*subscriber)
	}
	h.subs[id] = sub
	h.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(sub.ch)
		})
	}
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish records a change, runs the notifiers and delivers it to subscribers.
// Notifier failures are joined into the returned error; delivery still happens.
func (h *Hub) Publish(ctx context.Context, table string, event Event, recordID int64) (Change, error) {
	if table == "" {
		return Change{}, errors.New("realtime: table is required")
	}
	change := Change{
		ID:       uuid.NewString(),
		Table:    table,
		Event:    event,
		RecordID: recordID,
		At:       h.now(),
	}

	var joined error
	for _, n := range h.Notifiers {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, change); err != nil {
			joined = errors.Join(joined, fmt.Errorf("realtime: notifier: %w", err))
		}
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.table != "" && sub.table != table {
			continue
		}
		select {
		case sub.ch <- change:
		default:
		}
	}
	return change, joined
}
