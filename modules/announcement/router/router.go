package router

import (
	"vfd-portal/core/middleware"
	"vfd-portal/modules/announcement/controller"

	"github.com/labstack/echo/v4"
)

type AnnouncementRouter struct {
	controller *controller.AnnouncementController
}

func NewAnnouncementRouter(controller *controller.AnnouncementController) *AnnouncementRouter {
	return &AnnouncementRouter{controller: controller}
}

func (r *AnnouncementRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/announcements", mw.AuthMiddleware())
	group.GET("", r.controller.ListActive)
	group.POST("", r.controller.Create)
	group.DELETE("/:id", r.controller.Delete)
}
