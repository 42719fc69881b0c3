package entity

import (
	"time"

	"vfd-portal/core/entity"

	"github.com/google/uuid"
)

type Event struct {
	entity.BaseEntity
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	StartTime   time.Time  `db:"start_time" json:"start_time"`
	EndTime     time.Time  `db:"end_time" json:"end_time"`
	LocationID  *uuid.UUID `db:"location_id" json:"location_id"`
	IsPublic    bool       `db:"is_public" json:"is_public"`
	CreatedBy   uuid.UUID  `db:"created_by" json:"created_by"`
	GCalEventID *string    `db:"gcal_event_id" json:"gcal_event_id"`
}

func (e *Event) ExternalID() string {
	if e == nil || e.GCalEventID == nil {
		return ""
	}
	return *e.GCalEventID
}

// EventDetails is an event joined with its location name and owner email.
type EventDetails struct {
	Event
	LocationName *string `db:"location_name" json:"location_name"`
	OwnerEmail   *string `db:"owner_email" json:"owner_email"`
}

// EventFields is the mutable field set of an event.
type EventFields struct {
	Title       string
	Description *string
	StartTime   time.Time
	EndTime     time.Time
	LocationID  *uuid.UUID
	IsPublic    bool
}

type Location struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description"`
	Color       *string    `db:"color" json:"color"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	CreatedBy   *uuid.UUID `db:"created_by" json:"created_by"`
}
