package eventhub

import "seodesk/backend/internal/models"

// Client is the interface for one connected dashboard session. It
// abstracts the transport so the hub can fan events out uniformly.
type Client interface {
	// GetUserID returns the user the session belongs to.
	GetUserID() string

	// GetSendChannel returns the channel the hub pushes events into for
	// this client. It is a send-only channel.
	GetSendChannel() chan<- models.DomainEvent

	// Run starts the client's pumps.
	Run()
	// Close shuts the client's send channel down.
	Close()
}
