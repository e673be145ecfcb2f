// Package notify fans events out to the connected clients.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
)

// Channel delivers events to one connected client.
type Channel interface {
	Send(event entity.Event) error
}

// PresenceTracker is told when an identity gains or loses its channel.
type PresenceTracker interface {
	SetOnline(ctx context.Context, userID string, online bool) error
}

// Hub keeps at most one channel per identity. A newer connection of the same
// identity replaces the older one.
type Hub struct {
	logger   *slog.Logger
	presence PresenceTracker

	mu       sync.RWMutex
	channels map[string]Channel
}

// NewHub creates a hub. presence may be nil.
func NewHub(logger *slog.Logger, presence PresenceTracker) *Hub {
	return &Hub{
		logger:   logger.With("component", "hub"),
		presence: presence,
		channels: make(map[string]Channel),
	}
}

func (that *Hub) Register(ctx context.Context, identity string, channel Channel) {
	that.mu.Lock()
	that.channels[identity] = channel
	that.mu.Unlock()

	that.setOnline(ctx, identity, true)
}

// Unregister removes identity only while channel is still the registered one,
// so a stale connection closing never evicts its replacement.
func (that *Hub) Unregister(ctx context.Context, identity string, channel Channel) bool {
	that.mu.Lock()
	current, ok := that.channels[identity]
	removed := ok && current == channel
	if removed {
		delete(that.channels, identity)
	}
	that.mu.Unlock()

	if removed {
		that.setOnline(ctx, identity, false)
	}

	return removed
}

// Broadcast sends event to every registered channel. Delivery failures are
// logged and skipped.
func (that *Hub) Broadcast(event entity.Event) {
	log := that.logger.With("method", "Broadcast", "type", event.Type())

	that.mu.RLock()
	targets := make(map[string]Channel, len(that.channels))
	for identity, channel := range that.channels {
		targets[identity] = channel
	}
	that.mu.RUnlock()

	for identity, channel := range targets {
		if err := channel.Send(event); err != nil {
			log.Debug("failed to deliver event", "identity", identity, "error", err)
		}
	}
}

// SendTo delivers event to identity if it is connected and drops it otherwise.
func (that *Hub) SendTo(identity string, event entity.Event) {
	log := that.logger.With("method", "SendTo", "type", event.Type(), "identity", identity)

	that.mu.RLock()
	channel, ok := that.channels[identity]
	that.mu.RUnlock()

	if !ok {
		log.Debug("identity is not connected, event dropped")
		return
	}

	if err := channel.Send(event); err != nil {
		log.Debug("failed to deliver event", "error", err)
	}
}

func (that *Hub) IsConnected(identity string) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	_, ok := that.channels[identity]

	return ok
}

func (that *Hub) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.channels)
}

func (that *Hub) setOnline(ctx context.Context, identity string, online bool) {
	if that.presence == nil {
		return
	}

	if err := that.presence.SetOnline(ctx, identity, online); err != nil {
		that.logger.Warn("failed to update presence", "identity", identity, "online", online, "error", err)
	}
}
