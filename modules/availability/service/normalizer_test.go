package service

import (
	"testing"

	"meetpoll-api/modules/availability/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ana = entity.Participant{UserID: "u-ana", UserName: "Ana"}

func TestToEntries(t *testing.T) {
	sel := ParticipantSelection{
		SelectedDates: []entity.DateKey{"2024-06-02", "2024-06-01", "2024-06-02"},
		WindowsByDate: map[entity.DateKey][]entity.TimeWindow{
			"2024-06-01": {win(t, "14:00", "15:00"), win(t, "09:00", "10:00")},
			"2024-06-03": {win(t, "09:00", "10:00")}, // not selected
		},
	}

	entries, err := ToEntries(testEventID, ana, sel)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "2024-06-01", entries[0].Date)
	assert.False(t, entries[0].AllDay)
	assert.Equal(t, "09:00", *entries[0].StartTime)
	assert.Equal(t, "10:00", *entries[0].EndTime)

	assert.Equal(t, "2024-06-01", entries[1].Date)
	assert.Equal(t, "14:00", *entries[1].StartTime)

	assert.Equal(t, "2024-06-02", entries[2].Date)
	assert.True(t, entries[2].AllDay)
	assert.Nil(t, entries[2].StartTime)
	assert.Nil(t, entries[2].EndTime)

	for _, e := range entries {
		assert.Equal(t, testEventID, e.EventID)
		assert.Equal(t, "u-ana", e.UserID)
		assert.Equal(t, "Ana", e.UserName)
	}
}

func TestToEntries_Errors(t *testing.T) {
	_, err := ToEntries(testEventID, ana, ParticipantSelection{})
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = ToEntries(testEventID, ana, ParticipantSelection{
		SelectedDates: []entity.DateKey{"2024-06-01"},
		WindowsByDate: map[entity.DateKey][]entity.TimeWindow{
			"2024-06-01": {win(t, "09:00", "10:00"), win(t, "09:30", "11:00")},
		},
	})
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = ToEntries(testEventID, ana, ParticipantSelection{
		SelectedDates: []entity.DateKey{"2024-06-01"},
		WindowsByDate: map[entity.DateKey][]entity.TimeWindow{
			"2024-06-01": {win(t, "10:00", "09:00")},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ToEntries(testEventID, ana, ParticipantSelection{
		SelectedDates: []entity.DateKey{"June 1st"},
	})
	assert.ErrorIs(t, err, entity.ErrInvalidDateKey)
}

func TestToEntries_CanonicalDates(t *testing.T) {
	entries, err := ToEntries(testEventID, ana, ParticipantSelection{
		SelectedDates: []entity.DateKey{"2024-06-01T00:00:00Z", "2024-06-01"},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-06-01", entries[0].Date)
	assert.True(t, entries[0].AllDay)

	entries, err = ToEntries(testEventID, ana, ParticipantSelection{
		SelectedDates: []entity.DateKey{"2024-06-02"},
		WindowsByDate: map[entity.DateKey][]entity.TimeWindow{
			"2024-06-02T00:00:00Z": {win(t, "09:00", "10:00")},
			"2024-06-02":           {win(t, "09:00", "10:00"), win(t, "13:00", "14:00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "2024-06-02", e.Date)
	}
	assert.Equal(t, "09:00", *entries[0].StartTime)
	assert.Equal(t, "13:00", *entries[1].StartTime)

	entries, err = ToEntries(testEventID, ana, ParticipantSelection{
		SelectedDates: []entity.DateKey{"2024-06-01T99:junk", "2024-06-01"},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-06-01", entries[0].Date)

	_, err = ToEntries(testEventID, ana, ParticipantSelection{
		SelectedDates: []entity.DateKey{"2024-06-01xyz"},
	})
	assert.ErrorIs(t, err, entity.ErrInvalidDateKey)
}

func TestNormalizer_RoundTrip(t *testing.T) {
	sel := ParticipantSelection{
		SelectedDates: []entity.DateKey{"2024-06-01", "2024-06-02", "2024-06-05"},
		WindowsByDate: map[entity.DateKey][]entity.TimeWindow{
			"2024-06-01": {win(t, "18:00", "20:00"), win(t, "09:00", "10:00"), win(t, "10:00", "11:30")},
			"2024-06-05": {win(t, "12:00", "13:00")},
		},
	}

	entries, err := ToEntries(testEventID, ana, sel)
	require.NoError(t, err)

	got, skipped := FromEntries(entries)
	assert.Zero(t, skipped)
	assert.Equal(t, sel.SelectedDates, got.SelectedDates)
	assert.Len(t, got.WindowsByDate, 2, "all-day dates carry no windows")
	for date, windows := range sel.WindowsByDate {
		assert.ElementsMatch(t, windows, got.WindowsByDate[date], date)
	}
}

func TestFromEntries_SkipsAndDedupes(t *testing.T) {
	entries := []entity.Availability{
		timed("u1", "2024-06-02", "14:00", "15:00"),
		timed("u1", "2024-06-02", "09:00", "10:00"),
		timed("u1", "2024-06-02", "14:00", "15:00"),
		allDay("u1", "2024-06-01"),
		timed("u1", "2024-02-30", "09:00", "10:00"),
		timed("u1", "2024-06-03", "11:00", "10:00"),
		{UserID: "u1", Date: "2024-06-04"},
	}

	sel, skipped := FromEntries(entries)
	assert.Equal(t, 3, skipped)
	assert.Equal(t, []entity.DateKey{"2024-06-01", "2024-06-02"}, sel.SelectedDates)
	assert.Empty(t, sel.WindowsByDate["2024-06-01"])
	assert.Equal(t, []entity.TimeWindow{
		win(t, "09:00", "10:00"),
		win(t, "14:00", "15:00"),
	}, sel.WindowsByDate["2024-06-02"])
}
