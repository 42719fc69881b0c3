package router

import (
	"vfd-portal/core/middleware"
	"vfd-portal/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	EventController *controller.EventController
}

func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{
		EventController: eventController,
	}
}

func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	publicRoutes := v1.Group("/public")
	publicRoutes.GET("/events", r.EventController.ListPublicEvents)
	publicRoutes.GET("/events/export.ics", r.EventController.ExportICal)
	publicRoutes.GET("/events/:id/google-calendar-link", r.EventController.GoogleCalendarLink)
	publicRoutes.GET("/locations", r.EventController.ListLocations)

	eventRoutes := v1.Group("/private/events", mw.AuthMiddleware())
	eventRoutes.POST("", r.EventController.CreateEvent)
	eventRoutes.GET("", r.EventController.ListEvents)
	eventRoutes.GET("/:id", r.EventController.GetEvent)
	eventRoutes.PUT("/:id", r.EventController.UpdateEvent)
	eventRoutes.DELETE("/:id", r.EventController.DeleteEvent)
}
