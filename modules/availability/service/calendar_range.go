package service

import (
	"sort"
	"time"

	"meetpoll-api/modules/availability/entity"
)

// CalendarCell is one day in the displayed month grid.
type CalendarCell struct {
	Date             entity.DateKey
	Day              int
	IsInCurrentMonth bool
	IsSelectable     bool
	IsSelected       bool
}

// SelectionListener is told about every change to the selected-date set.
type SelectionListener func(date entity.DateKey, selected bool)

// CalendarRange tracks which dates of [start, end] a participant picked and
// which month is on screen. The displayed month never affects the selection.
type CalendarRange struct {
	start, end entity.DateKey
	year       int
	month      time.Month
	selected   map[entity.DateKey]struct{}
	listeners  []SelectionListener
}

// NewCalendarRange builds a calendar over the inclusive range [start, end],
// showing the month of start. It fails with ErrInvalidDateRange when end is before start.
func NewCalendarRange(start, end entity.DateKey) (*CalendarRange, error) {
	s, err := entity.ParseDateKey(string(start))
	if err != nil {
		return nil, err
	}
	e, err := entity.ParseDateKey(string(end))
	if err != nil {
		return nil, err
	}
	if e.Before(s) {
		return nil, ErrInvalidDateRange
	}
	t := s.Time()
	return &CalendarRange{
		start:    s,
		end:      e,
		year:     t.Year(),
		month:    t.Month(),
		selected: make(map[entity.DateKey]struct{}),
	}, nil
}

func (c *CalendarRange) Start() entity.DateKey { return c.start }
func (c *CalendarRange) End() entity.DateKey   { return c.end }

// OnChange registers fn to run after every successful toggle.
func (c *CalendarRange) OnChange(fn SelectionListener) {
	c.listeners = append(c.listeners, fn)
}

// IsSelectable reports whether date parses and lies within the range.
func (c *CalendarRange) IsSelectable(date entity.DateKey) bool {
	_, ok := c.canonical(date)
	return ok
}

func (c *CalendarRange) IsSelected(date entity.DateKey) bool {
	key, err := entity.ParseDateKey(date.String())
	if err != nil {
		return false
	}
	_, ok := c.selected[key]
	return ok
}

// Toggle flips date in the selection. Unparseable dates and dates outside the
// range are ignored.
func (c *CalendarRange) Toggle(date entity.DateKey) bool {
	date, ok := c.canonical(date)
	if !ok {
		return false
	}
	_, on := c.selected[date]
	if on {
		delete(c.selected, date)
	} else {
		c.selected[date] = struct{}{}
	}
	c.notify(date, !on)
	return true
}

// Select adds date if it is selectable and not yet selected.
func (c *CalendarRange) Select(date entity.DateKey) bool {
	if c.IsSelected(date) {
		return false
	}
	return c.Toggle(date)
}

// canonical parses date into its YYYY-MM-DD form and checks it against the range.
func (c *CalendarRange) canonical(date entity.DateKey) (entity.DateKey, bool) {
	key, err := entity.ParseDateKey(date.String())
	if err != nil || !key.Within(c.start, c.end) {
		return "", false
	}
	return key, true
}

func (c *CalendarRange) notify(date entity.DateKey, selected bool) {
	for _, fn := range c.listeners {
		fn(date, selected)
	}
}

// Selected returns the selected dates in chronological order.
func (c *CalendarRange) Selected() []entity.DateKey {
	out := make([]entity.DateKey, 0, len(c.selected))
	for d := range c.selected {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Dates enumerates every selectable date.
func (c *CalendarRange) Dates() []entity.DateKey {
	var out []entity.DateKey
	for d := c.start; !c.end.Before(d); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

func (c *CalendarRange) DisplayedMonth() (int, time.Month) {
	return c.year, c.month
}

// ShowMonth changes only the displayed month. Out-of-range months normalize, so month 13 is January of the next year.
func (c *CalendarRange) ShowMonth(year int, month time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	c.year, c.month = t.Year(), t.Month()
}

func (c *CalendarRange) NextMonth() {
	c.ShowMonth(c.year, c.month+1)
}

func (c *CalendarRange) PrevMonth() {
	c.ShowMonth(c.year, c.month-1)
}

// Grid lays out the displayed month in Monday-first weeks, padded with
// out-of-month days so every row has seven cells.
func (c *CalendarRange) Grid() []CalendarCell {
	first := time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	lead := (int(first.Weekday()) + 6) % 7
	cells := make([]CalendarCell, 0, 42)
	for i := lead; i > 0; i-- {
		cells = append(cells, c.padCell(first.AddDate(0, 0, -i)))
	}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		date := entity.DateKeyOf(day)
		cells = append(cells, CalendarCell{
			Date:             date,
			Day:              day.Day(),
			IsInCurrentMonth: true,
			IsSelectable:     c.IsSelectable(date),
			IsSelected:       c.IsSelected(date),
		})
	}
	for i := 1; len(cells)%7 != 0; i++ {
		cells = append(cells, c.padCell(last.AddDate(0, 0, i)))
	}
	return cells
}

func (c *CalendarRange) padCell(day time.Time) CalendarCell {
	date := entity.DateKeyOf(day)
	return CalendarCell{
		Date:       date,
		Day:        day.Day(),
		IsSelected: c.IsSelected(date),
	}
}
