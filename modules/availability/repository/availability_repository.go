package repository

import (
	"context"

	"meetpoll-api/core/database"
	"meetpoll-api/core/logger"
	"meetpoll-api/modules/availability/entity"

	"github.com/google/uuid"
)

type AvailabilityRepository struct {
	DB database.IDatabase
}

// NewAvailabilityRepository creates a new repository instance
func NewAvailabilityRepository(db database.IDatabase) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

type AvailabilityRepositoryInterface interface {
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Availability, error)
	ListByEventAndUser(ctx context.Context, eventID uuid.UUID, userID string) ([]entity.Availability, error)
	ReplaceForUser(ctx context.Context, eventID uuid.UUID, userID string, entries []entity.Availability) error
	DeleteForUser(ctx context.Context, eventID uuid.UUID, userID string) error
}

// Dates and times come back as text so one bad row cannot fail the whole scan.
const availabilityColumns = `
	id, event_id, user_id, user_name,
	to_char(date, 'YYYY-MM-DD') AS date,
	all_day,
	to_char(start_time, 'HH24:MI') AS start_time,
	to_char(end_time, 'HH24:MI') AS end_time,
	created_at`

func (r *AvailabilityRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Availability, error) {
	query := `SELECT` + availabilityColumns + `
		FROM availabilities
		WHERE event_id = $1
		ORDER BY date, start_time NULLS FIRST, user_id`

	entries := []entity.Availability{}
	if err := r.DB.SelectContext(ctx, &entries, query, eventID); err != nil {
		logger.Error("AvailabilityRepository:ListByEvent", err)
		return nil, err
	}
	return entries, nil
}

func (r *AvailabilityRepository) ListByEventAndUser(ctx context.Context, eventID uuid.UUID, userID string) ([]entity.Availability, error) {
	query := `SELECT` + availabilityColumns + `
		FROM availabilities
		WHERE event_id = $1 AND user_id = $2
		ORDER BY date, start_time NULLS FIRST`

	entries := []entity.Availability{}
	if err := r.DB.SelectContext(ctx, &entries, query, eventID, userID); err != nil {
		logger.Error("AvailabilityRepository:ListByEventAndUser", err)
		return nil, err
	}
	return entries, nil
}

// ReplaceForUser swaps the user's whole submission in one transaction so
// readers never see a mix of old and new rows.
func (r *AvailabilityRepository) ReplaceForUser(ctx context.Context, eventID uuid.UUID, userID string, entries []entity.Availability) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("AvailabilityRepository:ReplaceForUser - BeginTx", err)
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM availabilities WHERE event_id = $1 AND user_id = $2`, eventID, userID); err != nil {
		logger.Error("AvailabilityRepository:ReplaceForUser - Delete", err)
		return err
	}

	query := `
		INSERT INTO availabilities (id, event_id, user_id, user_name, date, all_day, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for i := range entries {
		entry := &entries[i]
		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		if _, err = tx.ExecContext(ctx, query,
			entry.ID, eventID, userID, entry.UserName, entry.Date,
			entry.AllDay, entry.StartTime, entry.EndTime); err != nil {
			logger.Error("AvailabilityRepository:ReplaceForUser - Insert", err, "date", entry.Date)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		logger.Error("AvailabilityRepository:ReplaceForUser - Commit", err)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) DeleteForUser(ctx context.Context, eventID uuid.UUID, userID string) error {
	query := `DELETE FROM availabilities WHERE event_id = $1 AND user_id = $2`
	if err := r.DB.ExecContext(ctx, query, eventID, userID); err != nil {
		logger.Error("AvailabilityRepository:DeleteForUser", err)
		return err
	}
	return nil
}
