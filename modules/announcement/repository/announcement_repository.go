package repository

import (
	"context"
	"time"

	"vfd-portal/core/database"
	"vfd-portal/core/logger"
	"vfd-portal/modules/announcement/entity"

	"github.com/google/uuid"
)

type AnnouncementRepositoryInterface interface {
	Create(ctx context.Context, announcement *entity.Announcement) error
	ListActive(ctx context.Context, now time.Time) ([]entity.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type AnnouncementRepository struct {
	db database.IDatabase
}

func NewAnnouncementRepository(db database.IDatabase) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Create(ctx context.Context, announcement *entity.Announcement) error {
	query := `
		INSERT INTO member_announcements (title, content, expires_at, user_id, created_by)
		VALUES (:title, :content, :expires_at, :user_id, :created_by)
		RETURNING id, created_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, announcement)
	if err != nil {
		logger.Error("AnnouncementRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&announcement.ID, &announcement.CreatedAt)
	}
	return rows.Err()
}

func (r *AnnouncementRepository) ListActive(ctx context.Context, now time.Time) ([]entity.Announcement, error) {
	query := `
		SELECT id, title, content, expires_at, user_id, created_by, created_at
		FROM member_announcements
		WHERE expires_at IS NULL OR expires_at > $1
		ORDER BY created_at DESC
	`
	announcements := []entity.Announcement{}
	if err := r.db.SelectContext(ctx, &announcements, query, now); err != nil {
		logger.Error("AnnouncementRepository:ListActive:Error:", err)
		return nil, err
	}
	return announcements, nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM member_announcements WHERE id = $1`, id)
	if err != nil {
		logger.Error("AnnouncementRepository:Delete:Error:", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
