package signup

import (
	"time"

	"vfd-portal/core/database"
	"vfd-portal/core/middleware"
	"vfd-portal/modules/signup/controller"
	"vfd-portal/modules/signup/repository"
	"vfd-portal/modules/signup/router"
	"vfd-portal/modules/signup/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, events service.EventSynchronizer, announcements service.AnnouncementPublisher, loc *time.Location, mw *middleware.Middleware) *service.SignUpService {
	repo := repository.NewSignUpRepository(db)
	svc := service.NewSignUpService(repo, events, announcements, loc)
	ctrl := controller.NewSignUpController(svc)

	router.NewSignUpRouter(ctrl).Setup(e, mw)
	return svc
}
