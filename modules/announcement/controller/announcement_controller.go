package controller

import (
	"vfd-portal/core/controller"
	"vfd-portal/core/errors"
	"vfd-portal/core/middleware"
	"vfd-portal/modules/announcement/dto"
	"vfd-portal/modules/announcement/entity"
	"vfd-portal/modules/announcement/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AnnouncementController struct {
	service *service.AnnouncementService
	controller.BaseController
}

func NewAnnouncementController(service *service.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

func toResponse(a *entity.Announcement) dto.AnnouncementResponse {
	return dto.AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		ExpiresAt: a.ExpiresAt,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
	}
}

// ListActive returns announcements that have not expired
// @Summary List active announcements
// @Tags Announcement
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Failure 401 {object} errors.AppError
// @Router /private/announcements [get]
func (c *AnnouncementController) ListActive(ctx echo.Context) error {
	announcements, appErr := c.service.ListActive(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	result := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		result = append(result, toResponse(&announcements[i]))
	}
	return c.SuccessResponse(ctx, result, "Announcements retrieved successfully")
}

// Create posts a new announcement
// @Summary Post an announcement
// @Tags Announcement
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} controller.SuccessResponse
// @Failure 400 {object} errors.AppError
// @Failure 403 {object} errors.AppError
// @Router /private/announcements [post]
func (c *AnnouncementController) Create(ctx echo.Context) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.CreateAnnouncementRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	announcement, appErr := c.service.Create(ctx.Request().Context(), actor, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, toResponse(announcement), "Announcement created successfully")
}

// Delete removes an announcement
// @Summary Delete an announcement
// @Tags Announcement
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/announcements/{id} [delete]
func (c *AnnouncementController) Delete(ctx echo.Context) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid announcement ID")
	}

	if appErr := c.service.Delete(ctx.Request().Context(), actor, id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Announcement deleted successfully")
}
