package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"vfd-portal/core/database"
	"vfd-portal/modules/event/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*EventRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewEventRepository(database.NewDatabase(sqlx.NewDb(db, "postgres"))), mock
}

func TestCreateReturnsStoredEvent(t *testing.T) {
	repo, mock := newMockRepo(t)
	id, owner := uuid.New(), uuid.New()
	start := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO events (title, description, start_time, end_time, location_id, is_public, created_by)`)).
		WithArgs("Pancake Breakfast", nil, start, end, nil, true, owner.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "start_time", "end_time", "is_public", "created_by"}).
			AddRow(id.String(), "Pancake Breakfast", start, end, true, owner.String()))

	event, err := repo.Create(context.Background(), entity.EventFields{
		Title:     "Pancake Breakfast",
		StartTime: start,
		EndTime:   end,
		IsPublic:  true,
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, id, event.ID)
	assert.Equal(t, owner, event.CreatedBy)
	assert.Empty(t, event.ExternalID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingEvent(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE events SET title = $2`)).
		WithArgs(id.String(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	event, err := repo.Update(context.Background(), id, entity.EventFields{Title: "Drill"})
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetExternalID(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE events SET gcal_event_id = $2 WHERE id = $1`)).
		WithArgs(id.String(), "abc123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetExternalID(context.Background(), id, "abc123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReportsMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	query := regexp.QuoteMeta(`DELETE FROM events WHERE id = $1`)

	mock.ExpectExec(query).WithArgs(id.String()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs(id.String()).WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListVisibility(t *testing.T) {
	tests := []struct {
		name           string
		includePrivate bool
		query          string
	}{
		{name: "public only", includePrivate: false, query: regexp.QuoteMeta(`WHERE e.is_public = true ORDER BY e.start_time ASC`) + `$`},
		{name: "members see all", includePrivate: true, query: regexp.QuoteMeta(`ON su.authid = e.created_by ORDER BY e.start_time ASC`) + `$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			id := uuid.New()
			mock.ExpectQuery(tt.query).
				WillReturnRows(sqlmock.NewRows([]string{"id", "title", "location_name", "owner_email"}).
					AddRow(id.String(), "Pancake Breakfast", "Station 1", "chief@coolspringsvfd.org"))

			events, err := repo.List(context.Background(), tt.includePrivate)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, id, events[0].ID)
			require.NotNil(t, events[0].LocationName)
			assert.Equal(t, "Station 1", *events[0].LocationName)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
