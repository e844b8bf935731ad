package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const TopicOrderEvents = "order_events"

const (
	OrderRequested = "order_requested"
	OrderApproved  = "order_approved"
	OrderConfirmed = "order_confirmed"
	OrderCancelled = "order_cancelled"
	OrderDeleted   = "order_deleted"
)

type OrderEvent struct {
	Type        string          `json:"type"`
	OrderID     uuid.UUID       `json:"orderID"`
	StoreID     uuid.UUID       `json:"storeID"`
	UserID      uuid.UUID       `json:"userID"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total"`
	Reason      string          `json:"reason,omitempty"`
	At          time.Time       `json:"at"`
}

type Recorded struct {
	Topic string
	Key   string
	Event any
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Recorded
}

func (r *Recorder) PublishEvent(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Recorded{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.events))
	copy(out, r.events)
	return out
}

// Types lists the Type of every recorded OrderEvent in publish order.
func (r *Recorder) Types() []string {
	var out []string
	for _, e := range r.Events() {
		if oe, ok := e.Event.(OrderEvent); ok {
			out = append(out, oe.Type)
		}
	}
	return out
}
