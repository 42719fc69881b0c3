package repository

import (
	"context"
	"database/sql"
	"errors"

	"vfd-portal/core/database"
	"vfd-portal/core/logger"
	"vfd-portal/modules/event/entity"

	"github.com/google/uuid"
)

type EventRepositoryInterface interface {
	Create(ctx context.Context, fields entity.EventFields, owner uuid.UUID) (*entity.Event, error)
	Update(ctx context.Context, id uuid.UUID, fields entity.EventFields) (*entity.Event, error)
	SetExternalID(ctx context.Context, id uuid.UUID, externalID string) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetDetails(ctx context.Context, id uuid.UUID) (*entity.EventDetails, error)
	List(ctx context.Context, includePrivate bool) ([]entity.EventDetails, error)
	ListLocations(ctx context.Context) ([]entity.Location, error)
	GetLocation(ctx context.Context, id uuid.UUID) (*entity.Location, error)
}

type EventRepository struct {
	db database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, start_time, end_time, location_id, is_public,
	created_by, gcal_event_id, created_at, updated_at`

const detailsSelect = `
	SELECT e.id, e.title, e.description, e.start_time, e.end_time, e.location_id, e.is_public,
		e.created_by, e.gcal_event_id, e.created_at, e.updated_at,
		l.name AS location_name,
		su.email AS owner_email
	FROM events e
	LEFT JOIN locations l ON l.id = e.location_id
	LEFT JOIN site_users su ON su.authid = e.created_by
`

func (r *EventRepository) Create(ctx context.Context, fields entity.EventFields, owner uuid.UUID) (*entity.Event, error) {
	query := `
		INSERT INTO events (title, description, start_time, end_time, location_id, is_public, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + eventColumns

	var event entity.Event
	err := r.db.QueryRowxContext(ctx, query,
		fields.Title, fields.Description, fields.StartTime, fields.EndTime,
		fields.LocationID, fields.IsPublic, owner,
	).StructScan(&event)
	if err != nil {
		logger.Error("EventRepository:Create", err)
		return nil, err
	}
	return &event, nil
}

// Update returns nil, nil when the event does not exist.
func (r *EventRepository) Update(ctx context.Context, id uuid.UUID, fields entity.EventFields) (*entity.Event, error) {
	query := `
		UPDATE events
		SET title = $2, description = $3, start_time = $4, end_time = $5,
			location_id = $6, is_public = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns

	var event entity.Event
	err := r.db.QueryRowxContext(ctx, query,
		id, fields.Title, fields.Description, fields.StartTime, fields.EndTime,
		fields.LocationID, fields.IsPublic,
	).StructScan(&event)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("EventRepository:Update", err, "event_id", id)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) SetExternalID(ctx context.Context, id uuid.UUID, externalID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE events SET gcal_event_id = $2 WHERE id = $1`, id, externalID)
	if err != nil {
		logger.Error("EventRepository:SetExternalID", err, "event_id", id)
	}
	return err
}

// Delete reports false when no row matched.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		logger.Error("EventRepository:Delete", err, "event_id", id)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	err := r.db.GetContext(ctx, &event, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("EventRepository:GetByID", err, "event_id", id)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetDetails(ctx context.Context, id uuid.UUID) (*entity.EventDetails, error) {
	var event entity.EventDetails
	err := r.db.GetContext(ctx, &event, detailsSelect+` WHERE e.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("EventRepository:GetDetails", err, "event_id", id)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) List(ctx context.Context, includePrivate bool) ([]entity.EventDetails, error) {
	query := detailsSelect
	if !includePrivate {
		query += ` WHERE e.is_public = true`
	}
	query += ` ORDER BY e.start_time ASC`

	events := []entity.EventDetails{}
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		logger.Error("EventRepository:List", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) ListLocations(ctx context.Context) ([]entity.Location, error) {
	locations := []entity.Location{}
	err := r.db.SelectContext(ctx, &locations,
		`SELECT id, name, description, color, created_at, created_by FROM locations ORDER BY name`)
	if err != nil {
		logger.Error("EventRepository:ListLocations", err)
		return nil, err
	}
	return locations, nil
}

func (r *EventRepository) GetLocation(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	var location entity.Location
	err := r.db.GetContext(ctx, &location,
		`SELECT id, name, description, color, created_at, created_by FROM locations WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Error("EventRepository:GetLocation", err, "location_id", id)
		return nil, err
	}
	return &location, nil
}
