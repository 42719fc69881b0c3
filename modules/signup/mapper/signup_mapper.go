package mapper

import (
	"time"

	"vfd-portal/modules/signup/dto"
	"vfd-portal/modules/signup/entity"

	"github.com/google/uuid"
)

func ToGroupResponses(groups entity.Groups, names map[uuid.UUID]string) []dto.GroupResponse {
	out := make([]dto.GroupResponse, 0, len(groups))
	for _, group := range groups {
		positions := make([]dto.PositionResponse, 0, len(group.Positions))
		for _, position := range group.Positions {
			members := make([]dto.SlotMemberResponse, 0, len(position.Members))
			for _, m := range position.Members {
				members = append(members, dto.SlotMemberResponse{
					MemberID: m.MemberID,
					Name:     names[m.MemberID],
					Note:     m.Note,
					RemindMe: m.RemindMe,
				})
			}
			positions = append(positions, dto.PositionResponse{
				Name:      position.Name,
				MaxSlots:  position.MaxSlots,
				Remaining: position.Remaining(),
				Available: position.Available(),
				Members:   members,
			})
		}
		available := make([]string, 0, len(group.Positions))
		for _, position := range groups.AvailablePositions(group.Name) {
			available = append(available, position.Name)
		}
		out = append(out, dto.GroupResponse{
			Name:               group.Name,
			Positions:          positions,
			AvailablePositions: available,
		})
	}
	return out
}

func ToSheetResponse(sheet *entity.SignUpSheet, names map[uuid.UUID]string, now time.Time) *dto.SheetResponse {
	total, filled := sheet.Groups.Totals()
	contacts := []string(sheet.PointOfContact)
	if contacts == nil {
		contacts = []string{}
	}
	return &dto.SheetResponse{
		ID:                 sheet.ID,
		Title:              sheet.Title,
		Status:             sheet.Status,
		EventDate:          sheet.EventDate,
		StartTime:          sheet.StartTime,
		EndTime:            sheet.EndTime,
		SignUpBy:           sheet.SignUpBy,
		Open:               sheet.Open(now),
		PointOfContact:     contacts,
		LocationID:         sheet.LocationID,
		Memo:               sheet.Memo,
		PushToCalendar:     sheet.PushToCalendar,
		AllowNotes:         sheet.AllowNotes,
		AllowRemoval:       sheet.AllowRemoval,
		DisplaySlotNumbers: sheet.DisplaySlotNumbers,
		Groups:             ToGroupResponses(sheet.Groups, names),
		TotalSlots:         total,
		FilledSlots:        filled,
		CreatedBy:          sheet.CreatedBy,
		CalendarID:         sheet.CalendarID,
		CreatedAt:          sheet.CreatedAt,
	}
}

func ToSheetResponses(sheets []entity.SignUpSheet, now time.Time) []dto.SheetResponse {
	out := make([]dto.SheetResponse, 0, len(sheets))
	for i := range sheets {
		out = append(out, *ToSheetResponse(&sheets[i], nil, now))
	}
	return out
}
