package dto

import "time"

// ===================== Request DTOs =====================

// SubmitAvailabilityRequest replaces the caller's whole answer for an event.
type SubmitAvailabilityRequest struct {
	Dates []DateAvailabilityRequest `json:"dates"`
}

// DateAvailabilityRequest marks one date. AllDay must be true exactly when Windows is empty.
type DateAvailabilityRequest struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	AllDay  bool            `json:"all_day"`
	Windows []WindowRequest `json:"windows"`
}

type WindowRequest struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

type SelectSlotRequest struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ===================== Response DTOs =====================

type ParticipantResponse struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type CalendarCellResponse struct {
	Date       string `json:"date"`
	Day        int    `json:"day"`
	InMonth    bool   `json:"in_month"`
	Selectable bool   `json:"selectable"`
	Selected   bool   `json:"selected"`
}

type CalendarResponse struct {
	EventID   string                   `json:"event_id"`
	StartDate string                   `json:"start_date"`
	EndDate   string                   `json:"end_date"`
	Month     string                   `json:"month"` // YYYY-MM
	Weeks     [][]CalendarCellResponse `json:"weeks"`
}

type DateAvailabilityResponse struct {
	Date    string           `json:"date"`
	AllDay  bool             `json:"all_day"`
	Windows []WindowResponse `json:"windows"`
}

type MyAvailabilityResponse struct {
	EventID string                     `json:"event_id"`
	Dates   []DateAvailabilityResponse `json:"dates"`
	Skipped int                        `json:"skipped"`
}

type SlotResponse struct {
	Date         string                `json:"date"`
	Start        string                `json:"start"`
	End          string                `json:"end"`
	Count        int                   `json:"count"`
	Participants []ParticipantResponse `json:"participants"`
}

type WindowBucketResponse struct {
	Start        string                `json:"start"`
	End          string                `json:"end"`
	Count        int                   `json:"count"`
	Participants []ParticipantResponse `json:"participants"`
}

type DateSummaryResponse struct {
	Date           string                 `json:"date"`
	AllDay         []ParticipantResponse  `json:"all_day"`
	Windows        []WindowBucketResponse `json:"windows"`
	AvailableCount int                    `json:"available_count"`
}

type CoverageResponse struct {
	Date      string  `json:"date"`
	Available int     `json:"available"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
}

type SummaryResponse struct {
	EventID           string                `json:"event_id"`
	TotalParticipants int                   `json:"total_participants"`
	Participants      []ParticipantResponse `json:"participants"`
	BestSlots         []SlotResponse        `json:"best_slots"`
	Dates             []DateSummaryResponse `json:"dates"`
	Coverage          []CoverageResponse    `json:"coverage"`
	Skipped           int                   `json:"skipped"`
}

type SelectedSlotResponse struct {
	Date       string    `json:"date"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	SelectedAt time.Time `json:"selected_at"`
}

type SelectionResponse struct {
	EventID string                `json:"event_id"`
	State   string                `json:"state"` // unset | set
	Slot    *SelectedSlotResponse `json:"slot,omitempty"`
}

type ConfirmSelectionResponse struct {
	SelectionResponse
	Participants []ParticipantResponse `json:"participants"`
}

// ===================== Task payloads =====================

// SelectionConfirmedPayload is the body of the selection:confirmed task.
type SelectionConfirmedPayload struct {
	EventID      string                `json:"event_id"`
	Title        string                `json:"title"`
	HostID       string                `json:"host_id"`
	Date         string                `json:"date"`
	Start        string                `json:"start"`
	End          string                `json:"end"`
	Participants []ParticipantResponse `json:"participants"`
	ConfirmedAt  time.Time             `json:"confirmed_at"`
}
