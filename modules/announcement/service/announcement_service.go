package service

import (
	"context"
	"strings"
	"time"

	"vfd-portal/core/errors"
	"vfd-portal/modules/announcement/dto"
	"vfd-portal/modules/announcement/entity"
	"vfd-portal/modules/announcement/repository"
	memberEntity "vfd-portal/modules/member/entity"

	"github.com/google/uuid"
)

type AnnouncementService struct {
	repo repository.AnnouncementRepositoryInterface
	now  func() time.Time
}

func NewAnnouncementService(repo repository.AnnouncementRepositoryInterface) *AnnouncementService {
	return &AnnouncementService{repo: repo, now: time.Now}
}

// Publish stores an announcement on behalf of author without a capability
// check. Callers that act for a member must authorize first.
func (s *AnnouncementService) Publish(ctx context.Context, author *memberEntity.Actor, req *dto.CreateAnnouncementRequest) (*entity.Announcement, *errors.AppError) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Title and content are required", nil)
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(s.now()) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Expiration date must be in the future", nil)
	}

	announcement := &entity.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		ExpiresAt: req.ExpiresAt,
		UserID:    author.AuthID,
		CreatedBy: author.Email,
	}
	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create announcement: "+err.Error(), err)
	}
	return announcement, nil
}

func (s *AnnouncementService) Create(ctx context.Context, actor *memberEntity.Actor, req *dto.CreateAnnouncementRequest) (*entity.Announcement, *errors.AppError) {
	if !actor.Can(memberEntity.CapPostAnnouncement) {
		return nil, errors.NewAppError(errors.ErrForbidden, "You are not allowed to post announcements", nil)
	}
	return s.Publish(ctx, actor, req)
}

func (s *AnnouncementService) ListActive(ctx context.Context) ([]entity.Announcement, *errors.AppError) {
	announcements, err := s.repo.ListActive(ctx, s.now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get announcements", err)
	}
	return announcements, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, actor *memberEntity.Actor, id uuid.UUID) *errors.AppError {
	if !actor.Can(memberEntity.CapPostAnnouncement) {
		return errors.NewAppError(errors.ErrForbidden, "You are not allowed to delete announcements", nil)
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete announcement", err)
	}
	if !found {
		return errors.NewAppError(errors.ErrNotFound, "Announcement not found", nil)
	}
	return nil
}
