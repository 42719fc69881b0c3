package service

import (
	"context"

	"vfd-portal/core/errors"
	"vfd-portal/core/logger"
	"vfd-portal/modules/member/entity"
	"vfd-portal/modules/member/repository"

	"github.com/google/uuid"
)

type MemberService struct {
	repo repository.MemberRepositoryInterface
}

func NewMemberService(repo repository.MemberRepositoryInterface) *MemberService {
	return &MemberService{repo: repo}
}

// ResolveActor maps an auth user id to the member performing the request.
func (s *MemberService) ResolveActor(ctx context.Context, authID uuid.UUID) (*entity.Actor, *errors.AppError) {
	member, err := s.repo.GetByAuthID(ctx, authID)
	if err != nil {
		logger.Error("MemberService:ResolveActor:GetByAuthID:Error", err, "auth_id", authID)
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to look up member", err)
	}
	if member == nil {
		return nil, errors.NewAppError(errors.ErrForbidden, "No member profile is linked to this account", nil)
	}
	if !member.Role.Valid() {
		return nil, errors.NewAppError(errors.ErrForbidden, "Member role is not recognized", nil)
	}
	return entity.NewActor(member), nil
}
