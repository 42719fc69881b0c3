package service

import (
	"context"
	"strings"

	"vfd-portal/core/errors"
	"vfd-portal/core/logger"
	calendarService "vfd-portal/modules/calendar/service"
	"vfd-portal/modules/event/entity"
	"vfd-portal/modules/event/repository"
	memberEntity "vfd-portal/modules/member/entity"

	"github.com/google/uuid"
)

// CalendarMirror is the external calendar the synchronizer copies events into.
type CalendarMirror interface {
	CreateCalendarEvent(ctx context.Context, in calendarService.EventInput) (*calendarService.MirrorEvent, error)
	UpdateCalendarEvent(ctx context.Context, externalID string, in calendarService.EventInput) (*calendarService.MirrorEvent, error)
	DeleteCalendarEvent(ctx context.Context, externalID string) error
}

type EventServiceInterface interface {
	Create(ctx context.Context, actor *memberEntity.Actor, fields entity.EventFields) (*entity.Event, *errors.AppError)
	Update(ctx context.Context, actor *memberEntity.Actor, id uuid.UUID, fields entity.EventFields) (*entity.Event, *errors.AppError)
	Delete(ctx context.Context, actor *memberEntity.Actor, id uuid.UUID) *errors.AppError
	Get(ctx context.Context, id uuid.UUID) (*entity.EventDetails, *errors.AppError)
	List(ctx context.Context, includePrivate bool) ([]entity.EventDetails, *errors.AppError)
	ListLocations(ctx context.Context) ([]entity.Location, *errors.AppError)
}

// EventService writes events to the store and mirrors them to the external
// calendar. Store failures are returned; mirror failures are only logged.
type EventService struct {
	repo   repository.EventRepositoryInterface
	mirror CalendarMirror
}

// NewEventService accepts a nil mirror when calendar mirroring is disabled.
func NewEventService(repo repository.EventRepositoryInterface, mirror CalendarMirror) *EventService {
	return &EventService{repo: repo, mirror: mirror}
}

var _ EventServiceInterface = (*EventService)(nil)

func ValidateFields(fields entity.EventFields) *errors.AppError {
	if strings.TrimSpace(fields.Title) == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Title is required", nil)
	}
	if fields.StartTime.IsZero() || fields.EndTime.IsZero() {
		return errors.NewAppError(errors.ErrInvalidInput, "Start and end time are required", nil)
	}
	if !fields.EndTime.After(fields.StartTime) {
		return errors.NewAppError(errors.ErrInvalidInput, "End time must be after start time", nil)
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, actor *memberEntity.Actor, fields entity.EventFields) (*entity.Event, *errors.AppError) {
	if !actor.Can(memberEntity.CapCreateEvent) {
		return nil, errors.NewAppError(errors.ErrForbidden, "You are not allowed to create events", nil)
	}
	if appErr := ValidateFields(fields); appErr != nil {
		return nil, appErr
	}

	event, err := s.repo.Create(ctx, fields, actor.AuthID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event: "+err.Error(), err)
	}

	if s.mirror == nil {
		return event, nil
	}

	mirrored, err := s.mirror.CreateCalendarEvent(ctx, s.mirrorInput(ctx, event))
	if err != nil {
		logger.Warn("EventService:Create:Mirror:Error", err, "event_id", event.ID)
		return event, nil
	}

	if err := s.repo.SetExternalID(ctx, event.ID, mirrored.ID); err != nil {
		// the mirror entry now exists without a local reference
		logger.Error("EventService:Create:SetExternalID:Error", err,
			"event_id", event.ID, "gcal_event_id", mirrored.ID)
	}
	externalID := mirrored.ID
	event.GCalEventID = &externalID
	return event, nil
}

func (s *EventService) Update(ctx context.Context, actor *memberEntity.Actor, id uuid.UUID, fields entity.EventFields) (*entity.Event, *errors.AppError) {
	if appErr := ValidateFields(fields); appErr != nil {
		return nil, appErr
	}

	current, appErr := s.getOwned(ctx, actor, id, "update")
	if appErr != nil {
		return nil, appErr
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event: "+err.Error(), err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	externalID := current.ExternalID()
	if s.mirror != nil && externalID != "" {
		if _, err := s.mirror.UpdateCalendarEvent(ctx, externalID, s.mirrorInput(ctx, updated)); err != nil {
			logger.Warn("EventService:Update:Mirror:Error", err, "event_id", id, "gcal_event_id", externalID)
		}
	}
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, actor *memberEntity.Actor, id uuid.UUID) *errors.AppError {
	current, appErr := s.getOwned(ctx, actor, id, "delete")
	if appErr != nil {
		return appErr
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event: "+err.Error(), err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	externalID := current.ExternalID()
	if s.mirror != nil && externalID != "" {
		if err := s.mirror.DeleteCalendarEvent(ctx, externalID); err != nil {
			logger.Warn("EventService:Delete:Mirror:Error", err, "event_id", id, "gcal_event_id", externalID)
		}
	}
	return nil
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*entity.EventDetails, *errors.AppError) {
	event, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return event, nil
}

// List returns events ordered by start time. Private events are included
// only when includePrivate is set.
func (s *EventService) List(ctx context.Context, includePrivate bool) ([]entity.EventDetails, *errors.AppError) {
	events, err := s.repo.List(ctx, includePrivate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch events", err)
	}
	return events, nil
}

func (s *EventService) ListLocations(ctx context.Context) ([]entity.Location, *errors.AppError) {
	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch locations", err)
	}
	return locations, nil
}

func (s *EventService) GetLocation(ctx context.Context, id uuid.UUID) (*entity.Location, *errors.AppError) {
	location, err := s.repo.GetLocation(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch location", err)
	}
	if location == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Location not found", nil)
	}
	return location, nil
}

func (s *EventService) getOwned(ctx context.Context, actor *memberEntity.Actor, id uuid.UUID, verb string) (*entity.Event, *errors.AppError) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch current event", err)
	}
	if current == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if !actor.CanModify(current.CreatedBy, memberEntity.CapManageAnyEvent) {
		return nil, errors.NewAppError(errors.ErrForbidden, "You can only "+verb+" events you created", nil)
	}
	return current, nil
}

func (s *EventService) mirrorInput(ctx context.Context, event *entity.Event) calendarService.EventInput {
	in := calendarService.EventInput{
		Title: event.Title,
		Start: event.StartTime,
		End:   event.EndTime,
	}
	if event.Description != nil {
		in.Description = *event.Description
	}
	if event.LocationID != nil {
		location, err := s.repo.GetLocation(ctx, *event.LocationID)
		if err != nil {
			logger.Warn("EventService:mirrorInput:GetLocation:Error", err, "location_id", *event.LocationID)
		} else if location != nil {
			in.Location = location.Name
		}
	}
	return in
}
