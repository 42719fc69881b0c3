package event

import (
	"vfd-portal/core/database"
	"vfd-portal/core/middleware"
	"vfd-portal/modules/event/controller"
	"vfd-portal/modules/event/export"
	"vfd-portal/modules/event/repository"
	"vfd-portal/modules/event/router"
	"vfd-portal/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init registers the event routes and returns the synchronizer so other
// modules can create and delete events through it. mirror may be nil.
func Init(e *echo.Echo, db database.IDatabase, mirror service.CalendarMirror, icalOptions export.ICalOptions, mw *middleware.Middleware) *service.EventService {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, mirror)
	ctrl := controller.NewEventController(svc, icalOptions)

	router.NewEventRouter(ctrl).Setup(e, mw)
	return svc
}
