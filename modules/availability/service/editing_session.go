package service

import (
	"meetpoll-api/modules/availability/entity"

	"github.com/google/uuid"
)

// EditingSession owns one participant's in-progress answer for one event.
// It keeps the calendar selection and the per-date window editors in step:
// selecting a date opens an empty editor (all day), deselecting it discards
// the editor and its windows.
type EditingSession struct {
	calendar *CalendarRange
	editors  map[entity.DateKey]*WindowEditor
}

// NewEditingSession starts an empty answer over the event's date range.
func NewEditingSession(start, end entity.DateKey) (*EditingSession, error) {
	cal, err := NewCalendarRange(start, end)
	if err != nil {
		return nil, err
	}
	s := &EditingSession{
		calendar: cal,
		editors:  make(map[entity.DateKey]*WindowEditor),
	}
	cal.OnChange(s.onSelectionChange)
	return s, nil
}

// ResumeEditingSession loads a previous submission. Rows that are malformed,
// out of the event range, or conflict with an earlier window are skipped and counted.
func ResumeEditingSession(start, end entity.DateKey, entries []entity.Availability) (*EditingSession, int, error) {
	s, err := NewEditingSession(start, end)
	if err != nil {
		return nil, 0, err
	}

	sel, skipped := FromEntries(entries)
	for _, date := range sel.SelectedDates {
		if !s.calendar.Select(date) {
			skipped += max(1, len(sel.WindowsByDate[date]))
			continue
		}
		for _, w := range sel.WindowsByDate[date] {
			if _, err := s.editors[date].AddWindow(w); err != nil {
				skipped++
			}
		}
	}
	return s, skipped, nil
}

func (s *EditingSession) onSelectionChange(date entity.DateKey, selected bool) {
	if selected {
		s.editors[date] = NewWindowEditor(date)
		return
	}
	delete(s.editors, date)
}

func (s *EditingSession) Calendar() *CalendarRange {
	return s.calendar
}

// ToggleDate returns ErrDateNotSelectable for dates outside the event range.
func (s *EditingSession) ToggleDate(date entity.DateKey) error {
	if !s.calendar.Toggle(date) {
		return ErrDateNotSelectable
	}
	return nil
}

// Editor returns the window editor of a selected date.
func (s *EditingSession) Editor(date entity.DateKey) (*WindowEditor, bool) {
	key, err := entity.ParseDateKey(date.String())
	if err != nil {
		return nil, false
	}
	e, ok := s.editors[key]
	return e, ok
}

// AddWindow returns ErrDateNotSelected unless date is selected.
func (s *EditingSession) AddWindow(date entity.DateKey, w entity.TimeWindow) (EditorWindow, error) {
	e, ok := s.Editor(date)
	if !ok {
		return EditorWindow{}, ErrDateNotSelected
	}
	return e.AddWindow(w)
}

func (s *EditingSession) RemoveWindow(date entity.DateKey, id string) bool {
	e, ok := s.Editor(date)
	if !ok {
		return false
	}
	return e.RemoveWindow(id)
}

// MarkAllDay drops the date's windows so it normalizes to a single all-day entry.
func (s *EditingSession) MarkAllDay(date entity.DateKey) error {
	e, ok := s.Editor(date)
	if !ok {
		return ErrDateNotSelected
	}
	e.Clear()
	return nil
}

// Selection snapshots the session in normalizer form.
func (s *EditingSession) Selection() ParticipantSelection {
	sel := ParticipantSelection{
		SelectedDates: s.calendar.Selected(),
		WindowsByDate: make(map[entity.DateKey][]entity.TimeWindow),
	}
	for date, e := range s.editors {
		if e.Len() > 0 {
			sel.WindowsByDate[date] = e.TimeWindows()
		}
	}
	return sel
}

// Entries normalizes the session into a replacement set of stored rows.
func (s *EditingSession) Entries(eventID uuid.UUID, participant entity.Participant) ([]entity.Availability, error) {
	return ToEntries(eventID, participant, s.Selection())
}
