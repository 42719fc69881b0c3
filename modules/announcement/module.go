package announcement

import (
	"vfd-portal/core/database"
	"vfd-portal/core/middleware"
	"vfd-portal/modules/announcement/controller"
	"vfd-portal/modules/announcement/repository"
	"vfd-portal/modules/announcement/router"
	"vfd-portal/modules/announcement/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, mw *middleware.Middleware) *service.AnnouncementService {
	repo := repository.NewAnnouncementRepository(db)
	svc := service.NewAnnouncementService(repo)
	ctrl := controller.NewAnnouncementController(svc)

	router.NewAnnouncementRouter(ctrl).Register(e, mw)

	return svc
}
