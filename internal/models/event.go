package models

import "time"

// DomainEvent types published after successful mutations.
const (
	EventComplaintCreated   = "complaint.created"
	EventResponseAdded      = "response.added"
	EventComplaintReviewed  = "complaint.under_review"
	EventComplaintResolved  = "complaint.resolved"
	EventComplaintDismissed = "complaint.dismissed"
	EventOptimizationClosed = "optimization.closed"
)

// DomainEvent is the payload broadcast to dashboard clients over the
// event hub and across instances via Redis Pub/Sub. It is a
// notification, not a source of truth: consumers re-read state.
type DomainEvent struct {
	Type           string    `json:"type"`
	NetworkID      string    `json:"network_id,omitempty"`
	OptimizationID string    `json:"optimization_id,omitempty"`
	ComplaintID    string    `json:"complaint_id,omitempty"`
	ResponseID     string    `json:"response_id,omitempty"`
	Actor          string    `json:"actor"`
	Message        string    `json:"message"`
	OccurredAt     time.Time `json:"occurred_at"`
}
