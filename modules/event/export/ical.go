package export

import (
	"strings"
	"time"

	"vfd-portal/modules/event/entity"

	"github.com/gosimple/slug"
)

const (
	crlf           = "\r\n"
	compactUTCForm = "20060102T150405Z"
)

type ICalOptions struct {
	ProductID     string
	CalendarName  string
	TimeZone      string
	UIDDomain     string
	OrganizerName string
	// used when an event has no owner email
	DefaultOrganizerEmail string
}

func DefaultICalOptions() ICalOptions {
	return ICalOptions{
		ProductID:             "-//Cool Spring VFD//Events Calendar//EN",
		CalendarName:          "Cool Spring VFD Events",
		TimeZone:              "America/New_York",
		UIDDomain:             "coolspringsvfd.org",
		OrganizerName:         "Cool Spring VFD",
		DefaultOrganizerEmail: "no-reply@coolspringsvfd.org",
	}
}

// Filename is the download name offered for the exported calendar.
func (o ICalOptions) Filename() string {
	return slug.Make(o.CalendarName) + ".ics"
}

// FormatCompactUTC renders t as YYYYMMDDTHHMMSSZ.
func FormatCompactUTC(t time.Time) string {
	return t.UTC().Format(compactUTCForm)
}

// EscapeText escapes backslash, semicolon, comma and line breaks for TEXT
// values. CRLF and lone CR are treated as a newline.
func EscapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch r {
		case '\\', ';', ',':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				continue
			}
			b.WriteString(`\n`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExportICal renders events as a VCALENDAR document with CRLF line endings.
// Property order is fixed; calendar apps importing the file rely on it.
func ExportICal(events []entity.EventDetails, opts ICalOptions, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + opts.ProductID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:" + opts.CalendarName,
		"X-WR-TIMEZONE:" + opts.TimeZone,
	}

	stamp := FormatCompactUTC(now)
	for _, ev := range events {
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+ev.ID.String()+"@"+opts.UIDDomain,
			"DTSTAMP:"+stamp,
			"DTSTART:"+FormatCompactUTC(ev.StartTime),
			"DTEND:"+FormatCompactUTC(ev.EndTime),
			"SUMMARY:"+EscapeText(ev.Title),
		)
		if ev.Description != nil && *ev.Description != "" {
			lines = append(lines, "DESCRIPTION:"+EscapeText(*ev.Description))
		}
		if ev.LocationName != nil && *ev.LocationName != "" {
			lines = append(lines, "LOCATION:"+EscapeText(*ev.LocationName))
		}

		organizer := opts.DefaultOrganizerEmail
		if ev.OwnerEmail != nil && *ev.OwnerEmail != "" {
			organizer = *ev.OwnerEmail
		}
		lines = append(lines,
			"ORGANIZER;CN="+opts.OrganizerName+":mailto:"+organizer,
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, crlf)
}
