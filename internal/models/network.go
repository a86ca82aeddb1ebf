package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Network is an SEO network: a graph of domains and their linking
// relationships. The graph editor itself lives elsewhere; here the
// network is only the parent record for optimizations and
// project-level complaints.
type Network struct {
	ID      string         `gorm:"primaryKey" json:"id"`
	Name    string         `gorm:"type:text;not null" json:"name"`
	Domains pq.StringArray `gorm:"type:text[]" json:"domains"`

	CreatedBy string    `gorm:"type:text" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Network) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}
