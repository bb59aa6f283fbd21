package service

import (
	"sort"

	"meetpoll-api/core/utils"
	"meetpoll-api/modules/availability/entity"
)

// EditorWindow is a window plus the id the editor handed out for it.
type EditorWindow struct {
	ID string
	entity.TimeWindow
}

// WindowEditor holds one participant's non-overlapping windows for a single date,
// ordered by start time.
type WindowEditor struct {
	date    entity.DateKey
	windows []EditorWindow
	newID   func() string
}

// NewWindowEditor creates an empty editor, which means available all day on date.
func NewWindowEditor(date entity.DateKey) *WindowEditor {
	return &WindowEditor{date: date, newID: utils.GenerateID}
}

func (e *WindowEditor) Date() entity.DateKey { return e.date }

func (e *WindowEditor) Len() int { return len(e.windows) }

// AddWindow rejects start >= end with ErrInvalidRange and any intersection
// with an existing window with ErrOverlap. The editor is unchanged on error.
func (e *WindowEditor) AddWindow(w entity.TimeWindow) (EditorWindow, error) {
	if !w.Valid() {
		return EditorWindow{}, ErrInvalidRange
	}
	for _, existing := range e.windows {
		if existing.Overlaps(w) {
			return EditorWindow{}, ErrOverlap
		}
	}

	added := EditorWindow{ID: e.uniqueID(), TimeWindow: w}
	e.windows = append(e.windows, added)
	sort.SliceStable(e.windows, func(i, j int) bool {
		return e.windows[i].TimeWindow.Less(e.windows[j].TimeWindow)
	})
	return added, nil
}

// RemoveWindow is a no-op when id is unknown.
func (e *WindowEditor) RemoveWindow(id string) bool {
	for i, w := range e.windows {
		if w.ID == id {
			e.windows = append(e.windows[:i], e.windows[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every window, which leaves the date available all day.
func (e *WindowEditor) Clear() {
	e.windows = nil
}

func (e *WindowEditor) Windows() []EditorWindow {
	out := make([]EditorWindow, len(e.windows))
	copy(out, e.windows)
	return out
}

func (e *WindowEditor) TimeWindows() []entity.TimeWindow {
	out := make([]entity.TimeWindow, len(e.windows))
	for i, w := range e.windows {
		out[i] = w.TimeWindow
	}
	return out
}

func (e *WindowEditor) uniqueID() string {
	for {
		id := e.newID()
		if id != "" && !e.hasID(id) {
			return id
		}
	}
}

func (e *WindowEditor) hasID(id string) bool {
	for _, w := range e.windows {
		if w.ID == id {
			return true
		}
	}
	return false
}
