package controller

import (
	"time"

	"vfd-portal/core/controller"
	"vfd-portal/core/errors"
	"vfd-portal/core/middleware"
	"vfd-portal/modules/signup/dto"
	"vfd-portal/modules/signup/mapper"
	"vfd-portal/modules/signup/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SignUpController struct {
	controller.BaseController
	SignUpService *service.SignUpService
}

func NewSignUpController(svc *service.SignUpService) *SignUpController {
	return &SignUpController{
		BaseController: controller.NewBaseController(),
		SignUpService:  svc,
	}
}

// ListSheets handles GET /private/signup-sheets
// @Summary List sign-up sheets
// @Description tab=current returns sheets still accepting sign-ups, tab=past the closed ones
// @Tags SignUp
// @Security BearerAuth
// @Produce json
// @Param tab query string false "current or past"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/signup-sheets [get]
func (c *SignUpController) ListSheets(ctx echo.Context) error {
	tab := ctx.QueryParam("tab")
	if tab != "" && tab != "current" && tab != "past" {
		return c.BadRequest(errors.ErrInvalidInput, "tab must be current or past")
	}

	sheets, appErr := c.SignUpService.List(ctx.Request().Context(), tab != "past")
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToSheetResponses(sheets, time.Now()), "Sign-up sheets retrieved successfully")
}

// GetSheet handles GET /private/signup-sheets/:id
func (c *SignUpController) GetSheet(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid sign-up sheet ID")
	}

	sheet, names, appErr := c.SignUpService.Get(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToSheetResponse(sheet, names, time.Now()), "Sign-up sheet retrieved successfully")
}

// CreateSheet handles POST /private/signup-sheets
// @Summary Create a sign-up sheet
// @Tags SignUp
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSheetRequest true "Sheet"
// @Success 201 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /private/signup-sheets [post]
func (c *SignUpController) CreateSheet(ctx echo.Context) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	req := new(dto.CreateSheetRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	sheet, warning, appErr := c.SignUpService.Create(ctx.Request().Context(), actor, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	resp := mapper.ToSheetResponse(sheet, nil, time.Now())
	resp.Warning = warning
	return c.CreatedResponse(ctx, resp, "Sign-up sheet created successfully")
}

// DeleteSheet handles DELETE /private/signup-sheets/:id
// @Summary Delete a sign-up sheet and its calendar event
// @Tags SignUp
// @Security BearerAuth
// @Param id path string true "Sheet ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/signup-sheets/{id} [delete]
func (c *SignUpController) DeleteSheet(ctx echo.Context) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid sign-up sheet ID")
	}

	if appErr := c.SignUpService.Delete(ctx.Request().Context(), actor, id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Sign-up sheet deleted successfully")
}

// SignUp handles POST /private/signup-sheets/:id/signups
// @Summary Sign up for a position
// @Tags SignUp
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Sheet ID"
// @Param request body dto.SignUpRequest true "Position"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/signup-sheets/{id}/signups [post]
func (c *SignUpController) SignUp(ctx echo.Context) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid sign-up sheet ID")
	}

	req := new(dto.SignUpRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	sheet, appErr := c.SignUpService.SignUp(ctx.Request().Context(), actor, id, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToSheetResponse(sheet, nil, time.Now()), "Signed up successfully")
}
