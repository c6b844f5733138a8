// internal/app/system/notifyhub/hub.go
package notifyhub

import (
	"sync"

	"go.uber.org/zap"
)

// subscriberBuffer is the per-subscriber channel depth. A subscriber
// that falls this far behind starts losing events; the client recovers
// on its next full feed load.
const subscriberBuffer = 16

// Hub fans notification events out to live subscribers, keyed by user
// ID. Stores publish after every write; the notification stream
// endpoint subscribes for the signed-in user.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
	log  *zap.Logger
}

type subscriber struct {
	ch chan Event
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs: make(map[string]map[*subscriber]struct{}),
		log:  logger,
	}
}

// Subscribe registers a listener for one user's events. The returned
// cancel function must be called when the listener goes away; after
// cancel returns the channel is closed.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}

	h.mu.Lock()
	set := h.subs[userID]
	if set == nil {
		set = make(map[*subscriber]struct{})
		h.subs[userID] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[userID]; ok {
			if _, ok := set[sub]; ok {
				delete(set, sub)
				close(sub.ch)
			}
			if len(set) == 0 {
				delete(h.subs, userID)
			}
		}
		h.mu.Unlock()
	}
	return sub.ch, cancel
}

// Publish delivers an event to every live subscriber for the user.
// Delivery never blocks; a full subscriber buffer drops the event.
func (h *Hub) Publish(userID string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[userID] {
		select {
		case sub.ch <- ev:
		default:
			if h.log != nil {
				h.log.Warn("notification event dropped, subscriber behind",
					zap.String("user_id", userID),
					zap.String("event", string(ev.Kind)))
			}
		}
	}
}

// Subscribers reports how many live listeners a user has.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
