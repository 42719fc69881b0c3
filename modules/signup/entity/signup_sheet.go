package entity

import (
	"time"

	"vfd-portal/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Status string

const (
	StatusOnline  Status = "Online"
	StatusOffline Status = "Offline"
)

func (s Status) Valid() bool {
	return s == StatusOnline || s == StatusOffline
}

type SignUpSheet struct {
	entity.BaseEntity
	Title              string         `db:"title" json:"title"`
	Status             Status         `db:"status" json:"status"`
	EventDate          time.Time      `db:"event_date" json:"event_date"`
	StartTime          time.Time      `db:"start_time" json:"start_time"`
	EndTime            time.Time      `db:"end_time" json:"end_time"`
	SignUpBy           time.Time      `db:"sign_up_by" json:"sign_up_by"`
	PointOfContact     pq.StringArray `db:"point_of_contact" json:"point_of_contact"`
	LocationID         *uuid.UUID     `db:"location_id" json:"location_id"`
	Memo               string         `db:"memo" json:"memo"`
	PushToCalendar     bool           `db:"push_to_calendar" json:"push_to_calendar"`
	AllowNotes         bool           `db:"allow_notes" json:"allow_notes"`
	AllowRemoval       bool           `db:"allow_removal" json:"allow_removal"`
	DisplaySlotNumbers bool           `db:"display_slot_numbers" json:"display_slot_numbers"`
	Groups             Groups         `db:"groups" json:"groups"`
	CreatedBy          uuid.UUID      `db:"created_by" json:"created_by"`
	CalendarID         *uuid.UUID     `db:"calendar_id" json:"calendar_id"`
	Version            int64          `db:"version" json:"version"`
}

// Open reports whether sign-ups are still accepted at now.
func (s *SignUpSheet) Open(now time.Time) bool {
	return !now.After(s.SignUpBy)
}

// SheetFields is what the manager inserts for a new sheet.
type SheetFields struct {
	Title              string
	Status             Status
	EventDate          time.Time
	StartTime          time.Time
	EndTime            time.Time
	SignUpBy           time.Time
	PointOfContact     []uuid.UUID
	LocationID         *uuid.UUID
	Memo               string
	PushToCalendar     bool
	AllowNotes         bool
	AllowRemoval       bool
	DisplaySlotNumbers bool
	Groups             Groups
	CreatedBy          uuid.UUID
	CalendarID         *uuid.UUID
}
