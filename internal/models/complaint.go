package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Complaint scope: either tied to a single optimization or raised
// against the whole network ("project-level").
const (
	ScopeOptimization = "optimization"
	ScopeProject      = "project"
)

// Project-scoped complaints run the full four-state lifecycle.
// Optimization-scoped complaints use the two-state reduction
// active -> resolved.
const (
	ComplaintStatusOpen        = "open"
	ComplaintStatusUnderReview = "under_review"
	ComplaintStatusResolved    = "resolved"
	ComplaintStatusDismissed   = "dismissed"
	ComplaintStatusActive      = "active"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	CategoryCommunication = "communication"
	CategoryDeadline      = "deadline"
	CategoryQuality       = "quality"
	CategoryProcess       = "process"
	CategoryOther         = "other"
)

// Complaint is a dispute raised against an optimization or an entire
// network. Resolution fields are written exactly once, together, via
// MarkResolved; partial resolution state is never persisted.
type Complaint struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Scope string `gorm:"type:text;not null;index" json:"scope"`
	// OptimizationID is set for optimization-scoped complaints, NetworkID
	// for project-scoped ones. Exactly one of the two is non-nil.
	OptimizationID *string `gorm:"type:uuid;index" json:"optimization_id,omitempty"`
	NetworkID      *string `gorm:"type:uuid;index" json:"network_id,omitempty"`

	Reason   string  `gorm:"type:text;not null" json:"reason"`
	Priority string  `gorm:"type:text;not null" json:"priority"`
	Category *string `gorm:"type:text" json:"category,omitempty"`
	Status   string  `gorm:"type:text;not null;index" json:"status"`

	CreatedBy string    `gorm:"type:text;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// ResponsibleUsers are tagged user IDs, lookup only.
	ResponsibleUsers pq.StringArray `gorm:"type:text[]" json:"responsible_users"`
	ReportURLs       pq.StringArray `gorm:"type:text[]" json:"report_urls"`

	// Responses attach here only for project-scoped complaints;
	// optimization-scoped responses hang off the optimization itself.
	Responses []Response `gorm:"foreignKey:ComplaintID" json:"responses,omitempty"`

	ResolvedBy            *string    `gorm:"type:text" json:"resolved_by,omitempty"`
	ResolvedAt            *time.Time `json:"resolved_at,omitempty"`
	ResolutionNote        *string    `gorm:"type:text" json:"resolution_note,omitempty"`
	TimeToResolutionHours *float64   `json:"time_to_resolution_hours,omitempty"`
}

// BeforeCreate generates a UUID for the complaint if one is not set.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// IsResolved reports whether the complaint reached the resolved state.
func (c *Complaint) IsResolved() bool {
	return c.Status == ComplaintStatusResolved
}

// IsTerminal reports whether the complaint is in a terminal state and
// can no longer transition.
func (c *Complaint) IsTerminal() bool {
	return c.Status == ComplaintStatusResolved || c.Status == ComplaintStatusDismissed
}

// MarkResolved transitions the complaint to resolved and sets all
// resolution fields in one shot. TimeToResolutionHours is computed here
// and never recomputed afterwards.
func (c *Complaint) MarkResolved(by, note string, at time.Time) {
	hours := at.Sub(c.CreatedAt).Hours()
	c.Status = ComplaintStatusResolved
	c.ResolvedBy = &by
	c.ResolvedAt = &at
	c.ResolutionNote = &note
	c.TimeToResolutionHours = &hours
}

// Ordinal returns the display number of the complaint at zero-based
// index in a newest-first list: the oldest complaint is numbered 1.
func Ordinal(total, index int) int {
	return total - index
}
