package repository

import (
	"context"
	"database/sql"
	"errors"

	"meetpoll-api/core/database"
	"meetpoll-api/core/logger"
	"meetpoll-api/modules/event/entity"

	"github.com/google/uuid"
)

type EventRepository struct {
	DB database.IDatabase
}

// NewEventRepository creates a new repository instance
func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*entity.Event, error)
	GetMyEvents(ctx context.Context, userID string) ([]entity.EventWithRole, error)
	UpdateEvent(ctx context.Context, event *entity.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

const eventColumns = `
	id, host_id, host_name, title, description, slug,
	to_char(start_date, 'YYYY-MM-DD') AS start_date,
	to_char(end_date, 'YYYY-MM-DD') AS end_date,
	created_at, updated_at`

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (id, host_id, host_name, title, description, slug, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING` + eventColumns

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.ID, event.HostID, event.HostName, event.Title, event.Description,
		event.Slug, event.StartDate, event.EndDate)
	if err != nil {
		logger.Error("EventRepository:CreateEvent", err)
		return nil, err
	}

	return &created, nil
}

// GetEventByID returns nil, nil when the event does not exist.
func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) GetEventBySlug(ctx context.Context, slug string) (*entity.Event, error) {
	query := `SELECT` + eventColumns + ` FROM events WHERE slug = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventBySlug", err)
		return nil, err
	}

	return &event, nil
}

// GetMyEvents lists events the user hosts or has answered, newest first.
func (r *EventRepository) GetMyEvents(ctx context.Context, userID string) ([]entity.EventWithRole, error) {
	query := `
		SELECT` + eventColumns + `, host_id = $1 AS is_host
		FROM events
		WHERE host_id = $1
		   OR id IN (SELECT DISTINCT event_id FROM availabilities WHERE user_id = $1)
		ORDER BY created_at DESC
	`

	events := []entity.EventWithRole{}
	err := r.DB.SelectContext(ctx, &events, query, userID)
	if err != nil {
		logger.Error("EventRepository:GetMyEvents", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, start_date = $4, end_date = $5, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.StartDate, event.EndDate)
	if err != nil {
		logger.Error("EventRepository:UpdateEvent", err)
		return err
	}

	return nil
}

// DeleteEvent removes the event and every availability row answering it.
func (r *EventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:DeleteEvent - BeginTx", err)
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM availabilities WHERE event_id = $1`, id); err != nil {
		logger.Error("EventRepository:DeleteEvent - availabilities", err)
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		logger.Error("EventRepository:DeleteEvent - events", err)
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("EventRepository:DeleteEvent - Commit", err)
		return err
	}
	return nil
}
