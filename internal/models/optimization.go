package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OptimizationStatusPlanned    = "planned"
	OptimizationStatusInProgress = "in_progress"
	OptimizationStatusCompleted  = "completed"
	OptimizationStatusReverted   = "reverted"
)

// Aggregate complaint status of an optimization. Derived read-side from
// the complaint list, never stored on the record.
const (
	AggregateNone        = "none"
	AggregateComplained  = "complained"
	AggregateUnderReview = "under_review"
	AggregateResolved    = "resolved"
)

// Optimization is a recorded change to an SEO network's structure, the
// unit complaints attach to.
type Optimization struct {
	ID          string `gorm:"primaryKey" json:"id"`
	NetworkID   string `gorm:"type:uuid;not null;index" json:"network_id"`
	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"type:text;not null" json:"status"`

	CreatedBy string    `gorm:"type:text;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Closure fields are set once, by CloseOptimization only.
	FinalNote *string    `gorm:"type:text" json:"final_note,omitempty"`
	ClosedBy  *string    `gorm:"type:text" json:"closed_by,omitempty"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`

	// Complaints are loaded newest-first; Responses oldest-first.
	Complaints []Complaint `gorm:"foreignKey:OptimizationID" json:"complaints,omitempty"`
	Responses  []Response  `gorm:"foreignKey:OptimizationID" json:"responses,omitempty"`
}

// BeforeCreate generates a UUID for the optimization if one is not set.
func (o *Optimization) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// IsCompleted reports whether the optimization has been closed.
func (o *Optimization) IsCompleted() bool {
	return o.Status == OptimizationStatusCompleted
}

// MarkCompleted closes the optimization, setting the closure fields
// together. Callers must have checked the blocking rule first.
func (o *Optimization) MarkCompleted(by, finalNote string, at time.Time) {
	o.Status = OptimizationStatusCompleted
	o.ClosedBy = &by
	o.ClosedAt = &at
	if finalNote != "" {
		o.FinalNote = &finalNote
	}
}
