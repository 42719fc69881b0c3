package controller

import (
	"net/http"
	"time"

	"vfd-portal/core/controller"
	"vfd-portal/core/errors"
	"vfd-portal/core/middleware"
	"vfd-portal/modules/event/dto"
	"vfd-portal/modules/event/entity"
	"vfd-portal/modules/event/export"
	"vfd-portal/modules/event/mapper"
	"vfd-portal/modules/event/service"
	memberEntity "vfd-portal/modules/member/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
	icalOptions  export.ICalOptions
	now          func() time.Time
}

func NewEventController(svc service.EventServiceInterface, icalOptions export.ICalOptions) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
		icalOptions:    icalOptions,
		now:            time.Now,
	}
}

func parseEventID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

// ListPublicEvents handles GET /public/events
// @Summary List public events
// @Tags Event
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /public/events [get]
func (c *EventController) ListPublicEvents(ctx echo.Context) error {
	events, appErr := c.EventService.List(ctx.Request().Context(), false)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToEventDetailsResponses(events), "Events retrieved successfully")
}

// ListEvents handles GET /private/events
// @Summary List events visible to the signed-in member
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /private/events [get]
func (c *EventController) ListEvents(ctx echo.Context) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	events, appErr := c.EventService.List(ctx.Request().Context(), actor.Can(memberEntity.CapViewPrivateEvents))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToEventDetailsResponses(events), "Events retrieved successfully")
}

// GetEvent handles GET /private/events/:id
func (c *EventController) GetEvent(ctx echo.Context) error {
	id, ok := parseEventID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}
	event, appErr := c.EventService.Get(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToEventDetailsResponse(event), "Event retrieved successfully")
}

// CreateEvent handles POST /private/events
// @Summary Create an event and mirror it to Google Calendar
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EventRequest true "Event"
// @Success 201 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/events [post]
func (c *EventController) CreateEvent(ctx echo.Context) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	req := new(dto.EventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	event, appErr := c.EventService.Create(ctx.Request().Context(), actor, mapper.ToEventFields(req))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, mapper.ToEventResponse(event), "Event created successfully")
}

// UpdateEvent handles PUT /private/events/:id
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	id, ok := parseEventID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	req := new(dto.EventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	event, appErr := c.EventService.Update(ctx.Request().Context(), actor, id, mapper.ToEventFields(req))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToEventResponse(event), "Event updated successfully")
}

// DeleteEvent handles DELETE /private/events/:id
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	id, ok := parseEventID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	if appErr := c.EventService.Delete(ctx.Request().Context(), actor, id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

// ExportICal handles GET /public/events/export.ics
// @Summary Download public events as an iCalendar file
// @Tags Event
// @Produce text/calendar
// @Router /public/events/export.ics [get]
func (c *EventController) ExportICal(ctx echo.Context) error {
	events, appErr := c.EventService.List(ctx.Request().Context(), false)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	body := export.ExportICal(events, c.icalOptions, c.now())
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+c.icalOptions.Filename()+`"`)
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// GoogleCalendarLink handles GET /public/events/:id/google-calendar-link
func (c *EventController) GoogleCalendarLink(ctx echo.Context) error {
	id, ok := parseEventID(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	event, appErr := c.EventService.Get(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	if !event.IsPublic {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrNotFound, "Event not found", nil))
	}

	link, err := export.GoogleCalendarURL([]entity.EventDetails{*event})
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, dto.GoogleCalendarLinkResponse{URL: link}, "Google Calendar link generated")
}

// ListLocations handles GET /public/locations
func (c *EventController) ListLocations(ctx echo.Context) error {
	locations, appErr := c.EventService.ListLocations(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToLocationResponses(locations), "Locations retrieved successfully")
}
