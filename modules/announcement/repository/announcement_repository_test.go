package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"vfd-portal/core/database"
	"vfd-portal/modules/announcement/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*AnnouncementRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewAnnouncementRepository(database.NewDatabase(sqlx.NewDb(db, "postgres"))), mock
}

func TestCreateFillsGeneratedColumns(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	author := uuid.New()
	created := time.Date(2025, 2, 20, 15, 0, 0, 0, time.UTC)
	expires := created.Add(240 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO member_announcements (title, content, expires_at, user_id, created_by)`)).
		WithArgs("New Sign-Up Sheet: Pancake Breakfast", "<p>hi</p>", expires, author.String(), "ff@coolspringsvfd.org").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), created))

	a := &entity.Announcement{
		Title:     "New Sign-Up Sheet: Pancake Breakfast",
		Content:   "<p>hi</p>",
		ExpiresAt: &expires,
		UserID:    author,
		CreatedBy: "ff@coolspringsvfd.org",
	}
	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, id, a.ID)
	assert.True(t, a.CreatedAt.Equal(created))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveFiltersExpired(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2025, 2, 20, 15, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE expires_at IS NULL OR expires_at > $1 ORDER BY created_at DESC`)).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "expires_at"}).
			AddRow(uuid.New().String(), "Drill night moved", nil))

	list, err := repo.ListActive(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
