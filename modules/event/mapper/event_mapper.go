package mapper

import (
	"vfd-portal/modules/event/dto"
	"vfd-portal/modules/event/entity"
)

func ToEventFields(req *dto.EventRequest) entity.EventFields {
	return entity.EventFields{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		LocationID:  req.LocationID,
		IsPublic:    req.IsPublic,
	}
}

func ToEventResponse(e *entity.Event) *dto.EventResponse {
	return &dto.EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		LocationID:  e.LocationID,
		IsPublic:    e.IsPublic,
		CreatedBy:   e.CreatedBy,
		GCalEventID: e.GCalEventID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToEventDetailsResponse(e *entity.EventDetails) *dto.EventResponse {
	res := ToEventResponse(&e.Event)
	res.LocationName = e.LocationName
	res.OwnerEmail = e.OwnerEmail
	return res
}

func ToEventDetailsResponses(events []entity.EventDetails) []dto.EventResponse {
	out := make([]dto.EventResponse, len(events))
	for i := range events {
		out[i] = *ToEventDetailsResponse(&events[i])
	}
	return out
}

func ToLocationResponses(locations []entity.Location) []dto.LocationResponse {
	out := make([]dto.LocationResponse, len(locations))
	for i, l := range locations {
		out[i] = dto.LocationResponse{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			Color:       l.Color,
		}
	}
	return out
}
