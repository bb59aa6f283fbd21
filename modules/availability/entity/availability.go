package entity

import (
	"time"

	"github.com/google/uuid"
)

// Availability is one stored submission row (availabilities table).
// Date and times are kept as the raw strings the store returns so malformed
// rows can be detected during aggregation instead of failing the scan.
type Availability struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	UserName  string    `db:"user_name" json:"user_name"`
	Date      string    `db:"date" json:"date"`
	AllDay    bool      `db:"all_day" json:"all_day"`
	StartTime *string   `db:"start_time" json:"start_time,omitempty"`
	EndTime   *string   `db:"end_time" json:"end_time,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Participant is the identity attached to a submission.
type Participant struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// ParsedAvailability is a validated row. Window is nil for all-day rows.
type ParsedAvailability struct {
	Participant Participant
	Date        DateKey
	Window      *TimeWindow
}

// Parse validates the row. Rows with an empty user id, a bad date, or a timed
// row without a valid window are rejected. An all-day row ignores any times it carries.
func (a Availability) Parse() (ParsedAvailability, bool) {
	if a.UserID == "" {
		return ParsedAvailability{}, false
	}
	date, err := ParseDateKey(a.Date)
	if err != nil {
		return ParsedAvailability{}, false
	}
	parsed := ParsedAvailability{
		Participant: Participant{UserID: a.UserID, UserName: a.UserName},
		Date:        date,
	}
	if a.AllDay {
		return parsed, true
	}
	if a.StartTime == nil || a.EndTime == nil {
		return ParsedAvailability{}, false
	}
	window, err := NewTimeWindow(*a.StartTime, *a.EndTime)
	if err != nil || !window.Valid() {
		return ParsedAvailability{}, false
	}
	parsed.Window = &window
	return parsed, true
}

// SelectedSlot is the host's pending final choice.
type SelectedSlot struct {
	Date       DateKey    `json:"date"`
	Window     TimeWindow `json:"window"`
	SelectedAt time.Time  `json:"selected_at"`
}
