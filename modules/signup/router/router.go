package router

import (
	"vfd-portal/core/middleware"
	"vfd-portal/modules/signup/controller"

	"github.com/labstack/echo/v4"
)

type SignUpRouter struct {
	SignUpController *controller.SignUpController
}

func NewSignUpRouter(signUpController *controller.SignUpController) *SignUpRouter {
	return &SignUpRouter{
		SignUpController: signUpController,
	}
}

func (r *SignUpRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	sheetRoutes := v1.Group("/private/signup-sheets", mw.AuthMiddleware())
	sheetRoutes.GET("", r.SignUpController.ListSheets)
	sheetRoutes.POST("", r.SignUpController.CreateSheet)
	sheetRoutes.GET("/:id", r.SignUpController.GetSheet)
	sheetRoutes.DELETE("/:id", r.SignUpController.DeleteSheet)
	sheetRoutes.POST("/:id/signups", r.SignUpController.SignUp)
}
