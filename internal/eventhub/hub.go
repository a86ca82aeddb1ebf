// Package eventhub fans domain events out to connected dashboard
// clients over WebSocket. Events originate from the mutating services
// and travel through Redis Pub/Sub, so every instance of the backend
// sees every event regardless of which instance handled the mutation.
package eventhub

import (
	"encoding/json"

	"seodesk/backend/internal/logger"
	"seodesk/backend/internal/models"
	"seodesk/backend/internal/storage"
)

// Hub keeps the set of connected clients and broadcasts every incoming
// domain event to all of them. The dashboard re-reads state on receipt;
// events are notifications, not data.
type Hub struct {
	clients map[Client]bool

	RegisterCh   chan Client
	UnregisterCh chan Client
	BroadcastCh  chan models.DomainEvent

	Storage *storage.Service
	Log     *logger.Logger
}

func NewHub(s *storage.Service, log *logger.Logger) *Hub {
	return &Hub{
		clients:      make(map[Client]bool),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan models.DomainEvent),
		Storage:      s,
		Log:          log,
	}
}

// startPubSubListener subscribes to the Redis events channel and feeds
// decoded events into the broadcast channel.
func (h *Hub) startPubSubListener() {
	go func() {
		pubsub := h.Storage.Redis.Subscribe(h.Storage.Ctx, storage.EventsChannel)
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var event models.DomainEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				h.Log.Warn("dropping malformed event payload", "error", err)
				continue
			}
			h.BroadcastCh <- event
		}
	}()
}

// Run is the hub's dispatcher loop. Start it in its own goroutine.
func (h *Hub) Run() {
	h.startPubSubListener()

	for {
		select {
		case client := <-h.RegisterCh:
			h.clients[client] = true
			h.Log.Info("dashboard client connected", "user_id", client.GetUserID())

		case client := <-h.UnregisterCh:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
				h.Log.Info("dashboard client disconnected", "user_id", client.GetUserID())
			}

		case event := <-h.BroadcastCh:
			for client := range h.clients {
				select {
				case client.GetSendChannel() <- event:
				default:
					// Slow client: drop it rather than stall the hub.
					delete(h.clients, client)
					client.Close()
				}
			}
		}
	}
}
