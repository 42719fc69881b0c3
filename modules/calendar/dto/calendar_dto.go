package dto

import (
	"time"

	"vfd-portal/modules/calendar/service"
)

type UpcomingEventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	HTMLLink    string    `json:"html_link,omitempty"`
}

func ToUpcomingEventResponses(events []service.MirrorEvent) []UpcomingEventResponse {
	out := make([]UpcomingEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, UpcomingEventResponse{
			ID:          ev.ID,
			Title:       ev.Title,
			Description: ev.Description,
			Location:    ev.Location,
			Start:       ev.Start,
			End:         ev.End,
			HTMLLink:    ev.HTMLLink,
		})
	}
	return out
}
