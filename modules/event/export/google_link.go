package export

import (
	"net/url"
	"strings"

	"vfd-portal/core/errors"
	"vfd-portal/modules/event/entity"
)

const googleRenderURL = "https://calendar.google.com/calendar/render?action=TEMPLATE"

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s the way browsers encode a URI component.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// GoogleCalendarURL builds an "add to Google Calendar" link for the first event.
func GoogleCalendarURL(events []entity.EventDetails) (string, error) {
	if len(events) == 0 {
		return "", errors.NewAppError(errors.ErrInvalidInput, "No events to add to Google Calendar", nil)
	}
	ev := events[0]

	var b strings.Builder
	b.WriteString(googleRenderURL)
	b.WriteString("&text=")
	b.WriteString(encodeComponent(ev.Title))
	b.WriteString("&dates=")
	b.WriteString(FormatCompactUTC(ev.StartTime))
	b.WriteString("/")
	b.WriteString(FormatCompactUTC(ev.EndTime))
	if ev.Description != nil && *ev.Description != "" {
		b.WriteString("&details=")
		b.WriteString(encodeComponent(*ev.Description))
	}
	if ev.LocationName != nil && *ev.LocationName != "" {
		b.WriteString("&location=")
		b.WriteString(encodeComponent(*ev.LocationName))
	}
	return b.String(), nil
}
