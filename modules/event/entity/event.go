package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is the poll a host opens for participants to answer (events table).
// StartDate and EndDate are inclusive YYYY-MM-DD keys bounding the selectable dates.
type Event struct {
	ID          uuid.UUID `db:"id" json:"id"`
	HostID      string    `db:"host_id" json:"host_id"`
	HostName    string    `db:"host_name" json:"host_name"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Slug        string    `db:"slug" json:"slug"`
	StartDate   string    `db:"start_date" json:"start_date"`
	EndDate     string    `db:"end_date" json:"end_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

func (e *Event) IsHost(userID string) bool {
	return e != nil && e.HostID == userID
}

// EventWithRole is an event as listed for one user.
type EventWithRole struct {
	Event
	IsHost bool `db:"is_host" json:"is_host"`
}
