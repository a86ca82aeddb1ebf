package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Response is an append-only explanatory note. It is owned either by a
// project-scoped complaint (ComplaintID set) or by an optimization as a
// whole (OptimizationID set), never by both. A response carries no
// lifecycle state and is immutable once created.
type Response struct {
	ID             string  `gorm:"primaryKey" json:"id"`
	ComplaintID    *string `gorm:"type:uuid;index" json:"complaint_id,omitempty"`
	OptimizationID *string `gorm:"type:uuid;index" json:"optimization_id,omitempty"`

	Note       string         `gorm:"type:text;not null" json:"note"`
	ReportURLs pq.StringArray `gorm:"type:text[]" json:"report_urls"`

	CreatedBy string    `gorm:"type:text;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID for the response if one is not set.
func (r *Response) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
