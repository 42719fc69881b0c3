package service

import (
	"html"
	"strings"
	"time"

	"vfd-portal/core/utils"
	"vfd-portal/modules/signup/entity"
)

func AnnouncementTitle(sheetTitle string) string {
	return "New Sign-Up Sheet: " + sheetTitle
}

// AnnouncementContent renders the HTML body posted for a new sheet.
func AnnouncementContent(sheet *entity.SignUpSheet, locationName string, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("<p><strong>A new sign-up sheet has been created!</strong></p>")
	b.WriteString("<p><strong>Event:</strong> " + html.EscapeString(sheet.Title) + "</p>")

	b.WriteString("<p><strong>Date:</strong> ")
	b.WriteString(utils.FormatDisplayDateTime(sheet.StartTime, loc))
	b.WriteString(" - ")
	b.WriteString(utils.FormatDisplayTime(sheet.EndTime, loc))
	if locationName != "" {
		b.WriteString(" at " + html.EscapeString(locationName))
	}
	b.WriteString("</p>")

	b.WriteString("<p><strong>Sign up by:</strong> " + utils.FormatDisplayDate(sheet.SignUpBy, loc) + "</p>")
	if sheet.Memo != "" {
		b.WriteString("<p><strong>Additional information:</strong> " + html.EscapeString(sheet.Memo) + "</p>")
	}
	b.WriteString(`<p><a href="#signup-sheets">View &amp; Sign Up</a></p>`)
	return b.String()
}
