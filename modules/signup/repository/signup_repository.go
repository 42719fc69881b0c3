package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vfd-portal/core/database"
	"vfd-portal/core/logger"
	"vfd-portal/modules/signup/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type SignUpRepositoryInterface interface {
	Create(ctx context.Context, fields entity.SheetFields) (*entity.SignUpSheet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SignUpSheet, error)
	List(ctx context.Context, current bool, now time.Time) ([]entity.SignUpSheet, error)
	GetGroups(ctx context.Context, id uuid.UUID) (entity.Groups, int64, error)
	CompareAndSwapGroups(ctx context.Context, id uuid.UUID, groups entity.Groups, version int64) (bool, error)
	GetCalendarID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	MemberNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// ErrSheetNotFound is returned by the single-row reads when no sheet matches.
var ErrSheetNotFound = errors.New("sign-up sheet not found")

type SignUpRepository struct {
	db database.IDatabase
}

func NewSignUpRepository(db database.IDatabase) *SignUpRepository {
	return &SignUpRepository{db: db}
}

const sheetColumns = `id, title, status, event_date, start_time, end_time, sign_up_by,
	point_of_contact, location_id, memo, push_to_calendar, allow_notes, allow_removal,
	display_slot_numbers, groups, created_by, calendar_id, version, created_at, updated_at`

func (r *SignUpRepository) Create(ctx context.Context, fields entity.SheetFields) (*entity.SignUpSheet, error) {
	query := `
		INSERT INTO signup_sheets (title, status, event_date, start_time, end_time, sign_up_by,
			point_of_contact, location_id, memo, push_to_calendar, allow_notes, allow_removal,
			display_slot_numbers, groups, created_by, calendar_id)
		VALUES (:title, :status, :event_date, :start_time, :end_time, :sign_up_by,
			:point_of_contact, :location_id, :memo, :push_to_calendar, :allow_notes, :allow_removal,
			:display_slot_numbers, :groups, :created_by, :calendar_id)
		RETURNING ` + sheetColumns

	contacts := make(pq.StringArray, 0, len(fields.PointOfContact))
	for _, id := range fields.PointOfContact {
		contacts = append(contacts, id.String())
	}

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]any{
		"title":                fields.Title,
		"status":               fields.Status,
		"event_date":           fields.EventDate,
		"start_time":           fields.StartTime,
		"end_time":             fields.EndTime,
		"sign_up_by":           fields.SignUpBy,
		"point_of_contact":     contacts,
		"location_id":          fields.LocationID,
		"memo":                 fields.Memo,
		"push_to_calendar":     fields.PushToCalendar,
		"allow_notes":          fields.AllowNotes,
		"allow_removal":        fields.AllowRemoval,
		"display_slot_numbers": fields.DisplaySlotNumbers,
		"groups":               fields.Groups,
		"created_by":           fields.CreatedBy,
		"calendar_id":          fields.CalendarID,
	})
	if err != nil {
		logger.Error("SignUpRepository:Create", err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			logger.Error("SignUpRepository:Create", err)
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	var sheet entity.SignUpSheet
	if err := rows.StructScan(&sheet); err != nil {
		logger.Error("SignUpRepository:Create:Scan", err)
		return nil, err
	}
	return &sheet, nil
}

func (r *SignUpRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SignUpSheet, error) {
	var sheet entity.SignUpSheet
	err := r.db.GetContext(ctx, &sheet, `SELECT `+sheetColumns+` FROM signup_sheets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSheetNotFound
	}
	if err != nil {
		logger.Error("SignUpRepository:GetByID", err, "sheet_id", id)
		return nil, err
	}
	return &sheet, nil
}

// List returns open sheets (deadline not yet passed) soonest first, or closed
// sheets most recent first.
func (r *SignUpRepository) List(ctx context.Context, current bool, now time.Time) ([]entity.SignUpSheet, error) {
	query := `SELECT ` + sheetColumns + ` FROM signup_sheets WHERE sign_up_by >= $1 ORDER BY sign_up_by ASC`
	if !current {
		query = `SELECT ` + sheetColumns + ` FROM signup_sheets WHERE sign_up_by < $1 ORDER BY sign_up_by DESC`
	}

	sheets := []entity.SignUpSheet{}
	if err := r.db.SelectContext(ctx, &sheets, query, now); err != nil {
		logger.Error("SignUpRepository:List", err, "current", current)
		return nil, err
	}
	return sheets, nil
}

// GetGroups reads the groups together with the version token that a later
// CompareAndSwapGroups must present.
func (r *SignUpRepository) GetGroups(ctx context.Context, id uuid.UUID) (entity.Groups, int64, error) {
	var row struct {
		Groups  entity.Groups `db:"groups"`
		Version int64         `db:"version"`
	}
	err := r.db.GetContext(ctx, &row, `SELECT groups, version FROM signup_sheets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrSheetNotFound
	}
	if err != nil {
		logger.Error("SignUpRepository:GetGroups", err, "sheet_id", id)
		return nil, 0, err
	}
	return row.Groups, row.Version, nil
}

// CompareAndSwapGroups writes groups only if the row still carries version.
// It reports false when another writer got there first.
func (r *SignUpRepository) CompareAndSwapGroups(ctx context.Context, id uuid.UUID, groups entity.Groups, version int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE signup_sheets
		SET groups = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3`,
		groups, id, version,
	)
	if err != nil {
		logger.Error("SignUpRepository:CompareAndSwapGroups", err, "sheet_id", id)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *SignUpRepository) GetCalendarID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var calendarID *uuid.UUID
	err := r.db.GetContext(ctx, &calendarID, `SELECT calendar_id FROM signup_sheets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSheetNotFound
	}
	if err != nil {
		logger.Error("SignUpRepository:GetCalendarID", err, "sheet_id", id)
		return nil, err
	}
	return calendarID, nil
}

func (r *SignUpRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM signup_sheets WHERE id = $1`, id)
	if err != nil {
		logger.Error("SignUpRepository:Delete", err, "sheet_id", id)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemberNames maps site_users ids to display names.
func (r *SignUpRepository) MemberNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	var rows []struct {
		ID   uuid.UUID `db:"id"`
		Name string    `db:"name"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, COALESCE(name, email, '') AS name FROM site_users WHERE id = ANY($1::uuid[])`,
		pq.Array(keys),
	)
	if err != nil {
		logger.Error("SignUpRepository:MemberNames", err)
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}
