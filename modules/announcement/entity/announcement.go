package entity

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a member-facing notice that is hidden after ExpiresAt.
type Announcement struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Content   string     `db:"content" json:"content"`
	ExpiresAt *time.Time `db:"expires_at" json:"expires_at"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	CreatedBy string     `db:"created_by" json:"created_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

func (a *Announcement) Active(now time.Time) bool {
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}
