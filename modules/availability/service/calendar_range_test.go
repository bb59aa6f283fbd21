package service

import (
	"testing"
	"time"

	"meetpoll-api/modules/availability/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalendarRange(t *testing.T) {
	_, err := NewCalendarRange("2024-06-10", "2024-06-09")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = NewCalendarRange("2024-06-10", "not-a-date")
	assert.ErrorIs(t, err, entity.ErrInvalidDateKey)

	cal, err := NewCalendarRange("2024-06-10", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, []entity.DateKey{"2024-06-10"}, cal.Dates())

	year, month := cal.DisplayedMonth()
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.June, month)
}

func TestCalendarRange_Toggle(t *testing.T) {
	cal, err := NewCalendarRange("2024-06-10", "2024-06-20")
	require.NoError(t, err)

	type change struct {
		date     entity.DateKey
		selected bool
	}
	var changes []change
	cal.OnChange(func(d entity.DateKey, selected bool) {
		changes = append(changes, change{d, selected})
	})

	assert.False(t, cal.Toggle("2024-06-09"), "before range")
	assert.False(t, cal.Toggle("2024-06-21"), "after range")
	assert.Empty(t, cal.Selected())

	assert.True(t, cal.Toggle("2024-06-15"))
	assert.True(t, cal.Toggle("2024-06-10"))
	assert.Equal(t, []entity.DateKey{"2024-06-10", "2024-06-15"}, cal.Selected())

	assert.True(t, cal.Toggle("2024-06-15"))
	assert.Equal(t, []entity.DateKey{"2024-06-10"}, cal.Selected())

	assert.Equal(t, []change{
		{"2024-06-15", true},
		{"2024-06-10", true},
		{"2024-06-15", false},
	}, changes)

	assert.False(t, cal.Select("2024-06-10"), "already selected")
	assert.True(t, cal.IsSelected("2024-06-10"))
}

func TestCalendarRange_ToggleRejectsNonDates(t *testing.T) {
	cal, err := NewCalendarRange("2024-06-01", "2024-06-30")
	require.NoError(t, err)

	var notified []entity.DateKey
	cal.OnChange(func(d entity.DateKey, _ bool) { notified = append(notified, d) })

	for _, raw := range []entity.DateKey{"2024-06-1", "2024-06-15xyz", "2024-06-2 ", "2024-06-31", ""} {
		assert.False(t, cal.IsSelectable(raw), raw)
		assert.False(t, cal.Toggle(raw), raw)
	}
	assert.Empty(t, cal.Selected())
	assert.Empty(t, notified)

	assert.True(t, cal.Toggle("2024-06-12T08:00:00Z"))
	assert.True(t, cal.IsSelected("2024-06-12"))
	assert.Equal(t, []entity.DateKey{"2024-06-12"}, cal.Selected())
	assert.Equal(t, []entity.DateKey{"2024-06-12"}, notified)

	assert.True(t, cal.Toggle(" 2024-06-12 "))
	assert.Empty(t, cal.Selected())
}

func TestCalendarRange_MonthNavigationKeepsSelection(t *testing.T) {
	cal, err := NewCalendarRange("2024-06-28", "2024-07-03")
	require.NoError(t, err)
	require.True(t, cal.Toggle("2024-06-29"))

	cal.NextMonth()
	year, month := cal.DisplayedMonth()
	assert.Equal(t, time.July, month)
	assert.Equal(t, 2024, year)
	assert.Equal(t, []entity.DateKey{"2024-06-29"}, cal.Selected())

	cal.PrevMonth()
	cal.PrevMonth()
	_, month = cal.DisplayedMonth()
	assert.Equal(t, time.May, month)
	assert.Len(t, cal.Dates(), 6)

	cal.ShowMonth(2024, 13)
	year, month = cal.DisplayedMonth()
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.January, month)
}

func TestCalendarRange_Grid(t *testing.T) {
	cal, err := NewCalendarRange("2024-06-10", "2024-06-20")
	require.NoError(t, err)
	require.True(t, cal.Toggle("2024-06-12"))

	// June 2024 starts on a Saturday: five leading May days, no trailing days.
	grid := cal.Grid()
	require.Len(t, grid, 35)
	assert.Equal(t, entity.DateKey("2024-05-27"), grid[0].Date)
	assert.False(t, grid[0].IsInCurrentMonth)
	assert.False(t, grid[0].IsSelectable)

	assert.Equal(t, entity.DateKey("2024-06-01"), grid[5].Date)
	assert.True(t, grid[5].IsInCurrentMonth)
	assert.False(t, grid[5].IsSelectable)

	assert.Equal(t, entity.DateKey("2024-06-10"), grid[14].Date)
	assert.True(t, grid[14].IsSelectable)
	assert.False(t, grid[13].IsSelectable)

	assert.Equal(t, 12, grid[16].Day)
	assert.True(t, grid[16].IsSelected)

	cal.NextMonth()
	grid = cal.Grid()
	require.Len(t, grid, 35)
	assert.Equal(t, entity.DateKey("2024-07-01"), grid[0].Date)
	assert.Equal(t, entity.DateKey("2024-08-04"), grid[34].Date)
	for _, cell := range grid {
		assert.False(t, cell.IsSelectable, cell.Date)
	}
}
