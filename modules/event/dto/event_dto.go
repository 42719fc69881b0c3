package dto

import (
	"time"

	"github.com/google/uuid"
)

type EventRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	StartTime   time.Time  `json:"start_time" validate:"required"`
	EndTime     time.Time  `json:"end_time" validate:"required"`
	LocationID  *uuid.UUID `json:"location_id"`
	IsPublic    bool       `json:"is_public"`
}

type EventResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	LocationID   *uuid.UUID `json:"location_id,omitempty"`
	LocationName *string    `json:"location_name,omitempty"`
	IsPublic     bool       `json:"is_public"`
	CreatedBy    uuid.UUID  `json:"created_by"`
	OwnerEmail   *string    `json:"owner_email,omitempty"`
	GCalEventID  *string    `json:"gcal_event_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       *string   `json:"color,omitempty"`
}

type GoogleCalendarLinkResponse struct {
	URL string `json:"url"`
}
