package calendar

import (
	"vfd-portal/core/middleware"
	"vfd-portal/modules/calendar/controller"
	"vfd-portal/modules/calendar/router"
	"vfd-portal/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init registers the calendar routes. bridge is nil when mirroring is disabled.
func Init(e *echo.Echo, bridge *service.Bridge, notifier *service.Notifier, mw *middleware.Middleware) {
	var lister controller.UpcomingLister
	if bridge != nil {
		lister = bridge
	}
	calendarController := controller.NewCalendarController(lister, notifier)
	router.NewCalendarRouter(calendarController).Setup(e, mw)
}
