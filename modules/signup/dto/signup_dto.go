package dto

import (
	"time"

	"vfd-portal/modules/signup/entity"

	"github.com/google/uuid"
)

type SignUpRequest struct {
	Group    string `json:"group" validate:"required"`
	Position string `json:"position" validate:"required"`
	Note     string `json:"note"`
	RemindMe bool   `json:"remind_me"`
}

// CreateSheetRequest carries dates as YYYY-MM-DD and times as HH:mm, both
// read in the organization's time zone.
type CreateSheetRequest struct {
	Title                 string        `json:"title" validate:"required"`
	Status                entity.Status `json:"status"`
	EventDate             string        `json:"event_date" validate:"required"`
	StartTime             string        `json:"start_time" validate:"required"`
	EndTime               string        `json:"end_time" validate:"required"`
	SignUpBy              string        `json:"sign_up_by" validate:"required"`
	PointOfContact        []uuid.UUID   `json:"point_of_contact"`
	LocationID            *uuid.UUID    `json:"location_id"`
	Memo                  string        `json:"memo"`
	PushToCalendar        bool          `json:"push_to_calendar"`
	AllowNotes            bool          `json:"allow_notes"`
	AllowRemoval          bool          `json:"allow_removal"`
	DisplaySlotNumbers    bool          `json:"display_slot_numbers"`
	Groups                entity.Groups `json:"groups" validate:"required"`
	CreateAnnouncement    bool          `json:"create_announcement"`
	AnnouncementExpiresOn string        `json:"announcement_expires_on"`
}

type SlotMemberResponse struct {
	MemberID uuid.UUID `json:"id"`
	Name     string    `json:"name,omitempty"`
	Note     string    `json:"note,omitempty"`
	RemindMe bool      `json:"remind_me"`
}

type PositionResponse struct {
	Name      string               `json:"name"`
	MaxSlots  int                  `json:"max_slots"`
	Remaining int                  `json:"remaining"`
	Available bool                 `json:"available"`
	Members   []SlotMemberResponse `json:"members"`
}

type GroupResponse struct {
	Name      string             `json:"name"`
	Positions []PositionResponse `json:"positions"`
	// names of positions that still accept sign-ups
	AvailablePositions []string `json:"available_positions"`
}

type SheetResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Title              string          `json:"title"`
	Status             entity.Status   `json:"status"`
	EventDate          time.Time       `json:"event_date"`
	StartTime          time.Time       `json:"start_time"`
	EndTime            time.Time       `json:"end_time"`
	SignUpBy           time.Time       `json:"sign_up_by"`
	Open               bool            `json:"open"`
	PointOfContact     []string        `json:"point_of_contact"`
	LocationID         *uuid.UUID      `json:"location_id,omitempty"`
	Memo               string          `json:"memo,omitempty"`
	PushToCalendar     bool            `json:"push_to_calendar"`
	AllowNotes         bool            `json:"allow_notes"`
	AllowRemoval       bool            `json:"allow_removal"`
	DisplaySlotNumbers bool            `json:"display_slot_numbers"`
	Groups             []GroupResponse `json:"groups"`
	TotalSlots         int             `json:"total_slots"`
	FilledSlots        int             `json:"filled_slots"`
	CreatedBy          uuid.UUID       `json:"created_by"`
	CalendarID         *uuid.UUID      `json:"calendar_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	Warning            string          `json:"warning,omitempty"`
}
