// Package notify implements the in-process push channel: a registry of
// logical channels (keyed by user id) fanned out to live subscribers.
// Delivery is fire-and-forget: nothing is persisted or replayed, and events
// published to a channel nobody joined are dropped.
package notify

import (
	"sync"

	"go.uber.org/zap"

	"github.com/d60-Lab/homecook/pkg/logger"
)

// Event names pushed to clients.
const (
	EventNewOrder       = "newOrder"
	EventStatusUpdate   = "statusUpdate"
	EventReceiveMessage = "receive_message"
)

// Event is what a subscriber reads off its feed.
type Event struct {
	Name    string
	Payload any
}

// Subscriber is one live connection joined to a channel. Events arrive on a
// buffered feed; a slow consumer loses events instead of blocking publishers.
type Subscriber struct {
	ch       chan Event
	channels map[string]struct{}
	closed   bool
}

// Events returns the subscriber's read side.
func (s *Subscriber) Events() <-chan Event { return s.ch }

// Hub owns channel membership. Constructed once at startup and handed to the
// services that publish; there is no package-level instance.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Subscriber]struct{}
	buffer   int
}

// NewHub creates a hub; buffer is the per-subscriber event queue size.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		channels: make(map[string]map[*Subscriber]struct{}),
		buffer:   buffer,
	}
}

// Subscribe joins a new connection to channel. Multiple subscribers may share
// a channel (one per browser tab); each receives every event.
func (h *Hub) Subscribe(channel string) *Subscriber {
	sub := &Subscriber{
		ch:       make(chan Event, h.buffer),
		channels: map[string]struct{}{channel: {}},
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		h.channels[channel] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

// Unsubscribe removes the connection from every channel it joined and closes
// its feed. Safe to call once per subscriber.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub.closed {
		return
	}
	sub.closed = true
	for channel := range sub.channels {
		if subs, ok := h.channels[channel]; ok {
			delete(subs, sub)
			if len(subs) == 0 {
				delete(h.channels, channel)
			}
		}
	}
	sub.channels = map[string]struct{}{}
	close(sub.ch)
}

// Publish fans event out to every subscriber of channel. Fire-and-forget:
// nobody listening means the event is dropped, a full subscriber queue means
// that subscriber misses it.
func (h *Hub) Publish(channel, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	subs, ok := h.channels[channel]
	if !ok {
		return
	}
	for sub := range subs {
		select {
		case sub.ch <- Event{Name: event, Payload: payload}:
		default:
			logger.Warn("subscriber queue full, drop event",
				zap.String("channel", channel),
				zap.String("event", event))
		}
	}
}

// Subscribers reports how many connections are joined to channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}
