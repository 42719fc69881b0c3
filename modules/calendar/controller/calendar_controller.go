package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"vfd-portal/core/controller"
	"vfd-portal/core/errors"
	"vfd-portal/core/logger"
	"vfd-portal/core/middleware"
	"vfd-portal/modules/calendar/dto"
	"vfd-portal/modules/calendar/service"
	memberEntity "vfd-portal/modules/member/entity"

	"github.com/labstack/echo/v4"
)

const (
	streamBuffer      = 16
	heartbeatInterval = 30 * time.Second
)

type UpcomingLister interface {
	ListCalendarEvents(ctx context.Context) ([]service.MirrorEvent, error)
}

type CalendarController struct {
	controller.BaseController
	lister   UpcomingLister
	notifier *service.Notifier
}

// NewCalendarController accepts a nil lister when calendar mirroring is disabled.
func NewCalendarController(lister UpcomingLister, notifier *service.Notifier) *CalendarController {
	return &CalendarController{
		BaseController: controller.NewBaseController(),
		lister:         lister,
		notifier:       notifier,
	}
}

// Upcoming lists events currently on the external calendar
// @Summary List upcoming external calendar events
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/calendar/upcoming [get]
func (c *CalendarController) Upcoming(ctx echo.Context) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	if !actor.Can(memberEntity.CapViewExternalCalendar) {
		return c.Forbidden(errors.ErrForbidden, "Only admins and webmasters can view the external calendar")
	}
	if c.lister == nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrExternalCalendar, "Google Calendar integration is disabled", nil))
	}

	events, err := c.lister.ListCalendarEvents(ctx.Request().Context())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, dto.ToUpcomingEventResponses(events), "Upcoming calendar events")
}

// Updates streams calendar-updated server-sent events until the client disconnects
// @Summary Stream calendar change notifications
// @Tags Calendar
// @Produce text/event-stream
// @Router /public/calendar/updates [get]
func (c *CalendarController) Updates(ctx echo.Context) error {
	changes := make(chan service.Change, streamBuffer)
	unsubscribe := c.notifier.Subscribe(func(change service.Change) {
		select {
		case changes <- change:
		default:
			// dropped for slow clients
		}
	})
	defer unsubscribe()

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case change := <-changes:
			payload, err := json.Marshal(change)
			if err != nil {
				logger.Error("CalendarController:Updates:Marshal:Error", err)
				continue
			}
			if _, err := fmt.Fprintf(res, "event: calendar-updated\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
