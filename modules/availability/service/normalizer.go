package service

import (
	"fmt"
	"sort"

	"meetpoll-api/modules/availability/entity"

	"github.com/google/uuid"
)

// ParticipantSelection is the editor-side view of one participant's answer.
// A selected date with no windows means available all day.
type ParticipantSelection struct {
	SelectedDates []entity.DateKey
	WindowsByDate map[entity.DateKey][]entity.TimeWindow
}

// ToEntries flattens a selection into storable rows ordered by date, then window start.
// Date keys are stored in their YYYY-MM-DD form, so keys naming the same day
// collapse into one date. Windows keyed by unselected dates are ignored. The
// result is a complete replacement set for (eventID, participant).
func ToEntries(eventID uuid.UUID, participant entity.Participant, sel ParticipantSelection) ([]entity.Availability, error) {
	dates, err := canonicalDates(sel.SelectedDates)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, ErrEmptySelection
	}

	windowsByDate := make(map[entity.DateKey][]entity.TimeWindow, len(sel.WindowsByDate))
	for raw, windows := range sel.WindowsByDate {
		date, err := entity.ParseDateKey(raw.String())
		if err != nil {
			continue
		}
		windowsByDate[date] = append(windowsByDate[date], windows...)
	}

	var entries []entity.Availability
	for _, date := range dates {
		windows, err := sortedWindows(windowsByDate[date])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", date, err)
		}

		if len(windows) == 0 {
			entries = append(entries, newEntry(eventID, participant, date, nil))
			continue
		}
		for i := range windows {
			entries = append(entries, newEntry(eventID, participant, date, &windows[i]))
		}
	}
	return entries, nil
}

// FromEntries rebuilds a selection from stored rows so a participant can keep editing.
// A date is selected iff it has at least one valid row; all-day rows add no window.
// Unparseable rows are skipped and counted.
func FromEntries(entries []entity.Availability) (ParticipantSelection, int) {
	sel := ParticipantSelection{WindowsByDate: make(map[entity.DateKey][]entity.TimeWindow)}
	seen := make(map[entity.DateKey]map[entity.TimeWindow]struct{})
	skipped := 0

	for _, entry := range entries {
		parsed, ok := entry.Parse()
		if !ok {
			skipped++
			continue
		}
		if _, known := seen[parsed.Date]; !known {
			seen[parsed.Date] = make(map[entity.TimeWindow]struct{})
			sel.SelectedDates = append(sel.SelectedDates, parsed.Date)
		}
		if parsed.Window == nil {
			continue
		}
		if _, dup := seen[parsed.Date][*parsed.Window]; dup {
			continue
		}
		seen[parsed.Date][*parsed.Window] = struct{}{}
		sel.WindowsByDate[parsed.Date] = append(sel.WindowsByDate[parsed.Date], *parsed.Window)
	}

	sort.Slice(sel.SelectedDates, func(i, j int) bool { return sel.SelectedDates[i] < sel.SelectedDates[j] })
	for date, windows := range sel.WindowsByDate {
		sort.Slice(windows, func(i, j int) bool { return windows[i].Less(windows[j]) })
		sel.WindowsByDate[date] = windows
	}
	return sel, skipped
}

func newEntry(eventID uuid.UUID, p entity.Participant, date entity.DateKey, w *entity.TimeWindow) entity.Availability {
	entry := entity.Availability{
		EventID:  eventID,
		UserID:   p.UserID,
		UserName: p.UserName,
		Date:     date.String(),
		AllDay:   w == nil,
	}
	if w != nil {
		start, end := w.Start.String(), w.End.String()
		entry.StartTime = &start
		entry.EndTime = &end
	}
	return entry
}

// canonicalDates parses every key, drops duplicates and sorts the result.
func canonicalDates(dates []entity.DateKey) ([]entity.DateKey, error) {
	seen := make(map[entity.DateKey]struct{}, len(dates))
	out := make([]entity.DateKey, 0, len(dates))
	for _, raw := range dates {
		d, err := entity.ParseDateKey(raw.String())
		if err != nil {
			return nil, err
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// sortedWindows returns a sorted copy without exact duplicates, enforcing
// start < end and no overlaps.
func sortedWindows(windows []entity.TimeWindow) ([]entity.TimeWindow, error) {
	out := make([]entity.TimeWindow, 0, len(windows))
	seen := make(map[entity.TimeWindow]struct{}, len(windows))
	for _, w := range windows {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	for i, w := range out {
		if !w.Valid() {
			return nil, ErrInvalidRange
		}
		if i > 0 && out[i-1].Overlaps(w) {
			return nil, ErrOverlap
		}
	}
	return out, nil
}
