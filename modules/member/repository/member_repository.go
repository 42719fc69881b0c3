package repository

import (
	"context"
	"database/sql"
	"errors"

	"vfd-portal/core/database"
	"vfd-portal/core/logger"
	"vfd-portal/modules/member/entity"

	"github.com/google/uuid"
)

type MemberRepositoryInterface interface {
	GetByAuthID(ctx context.Context, authID uuid.UUID) (*entity.Member, error)
}

type MemberRepository struct {
	db database.IDatabase
}

func NewMemberRepository(db database.IDatabase) *MemberRepository {
	return &MemberRepository{db: db}
}

// GetByAuthID returns nil, nil when no site user is linked to authID.
func (r *MemberRepository) GetByAuthID(ctx context.Context, authID uuid.UUID) (*entity.Member, error) {
	var member entity.Member
	query := `
		SELECT id, authid, COALESCE(name, '') AS name, COALESCE(email, '') AS email,
			COALESCE(role, 'member') AS role, created_at
		FROM site_users
		WHERE authid = $1
	`
	err := r.db.GetContext(ctx, &member, query, authID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("MemberRepository:GetByAuthID", err)
		return nil, err
	}
	member.Role = entity.ParseRole(string(member.Role))
	return &member, nil
}
