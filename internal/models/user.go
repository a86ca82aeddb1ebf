package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a dashboard operator. Role decides which mutating
// operations the user may perform (see internal/rbac).
type User struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:text;not null" json:"name"`
	Email string `gorm:"uniqueIndex" json:"email"`
	Role  string `gorm:"type:text;not null" json:"role"`

	// TelegramChatID is set once the user links their Telegram chat via
	// the bot's /link command. Nil until then; notifications are skipped.
	TelegramChatID *int64 `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID for the user if one is not set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
