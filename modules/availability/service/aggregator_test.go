package service

import (
	"fmt"
	"testing"

	"meetpoll-api/modules/availability/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_RanksByCount(t *testing.T) {
	entries := []entity.Availability{
		timed("u1", "2024-06-02", "09:00", "10:00"),
		timed("u2", "2024-06-02", "09:00", "10:00"),
		timed("u1", "2024-06-01", "14:00", "15:00"),
		timed("u2", "2024-06-01", "14:00", "15:00"),
		timed("u3", "2024-06-01", "14:00", "15:00"),
	}

	summary := NewAggregator(0).Aggregate(entries)
	require.Len(t, summary.BestSlots, 2)

	assert.Equal(t, entity.DateKey("2024-06-01"), summary.BestSlots[0].Date)
	assert.Equal(t, "14:00-15:00", summary.BestSlots[0].Window.String())
	assert.Equal(t, 3, summary.BestSlots[0].Count)
	assert.Equal(t, []string{"u1", "u2", "u3"}, userIDs(summary.BestSlots[0].Participants))

	assert.Equal(t, entity.DateKey("2024-06-02"), summary.BestSlots[1].Date)
	assert.Equal(t, 2, summary.BestSlots[1].Count)
}

func TestAggregator_TieBreaks(t *testing.T) {
	entries := []entity.Availability{
		timed("u1", "2024-06-03", "09:00", "10:00"),
		timed("u1", "2024-06-02", "15:00", "16:00"),
		timed("u1", "2024-06-02", "08:00", "09:00"),
		timed("u2", "2024-06-02", "08:00", "08:30"),
	}

	summary := NewAggregator(5).Aggregate(entries)

	var got []string
	for _, slot := range summary.BestSlots {
		got = append(got, slot.Date.String()+" "+slot.Window.String())
	}
	assert.Equal(t, []string{
		"2024-06-02 08:00-08:30",
		"2024-06-02 08:00-09:00",
		"2024-06-02 15:00-16:00",
		"2024-06-03 09:00-10:00",
	}, got)
}

func TestAggregator_TopK(t *testing.T) {
	var entries []entity.Availability
	for h := 8; h < 15; h++ {
		entries = append(entries, timed("u1", "2024-06-01", fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h)))
	}

	assert.Len(t, NewAggregator(0).Aggregate(entries).BestSlots, DefaultTopSlots)
	assert.Len(t, NewAggregator(2).Aggregate(entries).BestSlots, 2)
	assert.Len(t, NewAggregator(10).Aggregate(entries).BestSlots, 7)
}

func TestAggregator_CountsDistinctUsers(t *testing.T) {
	entries := []entity.Availability{
		timed("u1", "2024-06-01", "09:00", "10:00"),
		timed("u1", "2024-06-01", "09:00", "10:00"),
		allDay("u1", "2024-06-01"),
	}

	summary := NewAggregator(5).Aggregate(entries)
	agg := summary.Dates["2024-06-01"]
	require.NotNil(t, agg)

	require.Len(t, agg.Windows, 1)
	assert.Equal(t, 1, agg.Windows[0].Count)
	assert.Equal(t, []string{"u1"}, userIDs(agg.AllDay), "all-day and timed answers are both kept")
	assert.Len(t, agg.Available, 1)
	assert.Equal(t, 1, summary.Coverage("2024-06-01").Available)
	assert.Len(t, summary.BestSlots, 1)
}

func TestAggregator_AllDayIsNotRanked(t *testing.T) {
	summary := NewAggregator(5).Aggregate([]entity.Availability{
		allDay("u1", "2024-06-01"),
		allDay("u2", "2024-06-01"),
	})
	assert.Empty(t, summary.BestSlots)
	assert.Equal(t, 2, summary.Coverage("2024-06-01").Available)
}

func TestAggregator_CoverageUsesEventWideDenominator(t *testing.T) {
	entries := []entity.Availability{
		allDay("u1", "2024-06-01"),
		timed("u2", "2024-06-01", "09:00", "10:00"),
		timed("u3", "2024-06-02", "09:00", "10:00"),
		timed("u4", "2024-06-03", "09:00", "10:00"),
	}

	summary := NewAggregator(5).Aggregate(entries)
	assert.Equal(t, 4, summary.TotalParticipants())

	cov := summary.Coverage("2024-06-01")
	assert.Equal(t, 2, cov.Available)
	assert.Equal(t, 4, cov.Total)
	assert.InDelta(t, 0.5, cov.Fraction(), 1e-9)

	rng := summary.CoverageRange("2024-05-31", "2024-06-03")
	require.Len(t, rng, 4)
	assert.Zero(t, rng[0].Available)
	assert.Equal(t, 4, rng[0].Total)
	assert.Equal(t, 1, rng[3].Available)

	assert.Nil(t, summary.CoverageRange("2024-06-03", "2024-06-01"))
	assert.Nil(t, summary.CoverageRange("garbage", "2024-06-01"))
}

func TestAggregator_SkipsMalformedRecords(t *testing.T) {
	entries := []entity.Availability{
		timed("u1", "2024-06-01", "09:00", "10:00"),
		timed("u2", "2024-13-45", "09:00", "10:00"),
		timed("u3", "2024-06-01", "25:00", "26:00"),
		timed("u4", "2024-06-01", "10:00", "09:00"),
		{UserID: "", Date: "2024-06-01", AllDay: true},
	}

	var summary *entity.Summary
	require.NotPanics(t, func() { summary = NewAggregator(5).Aggregate(entries) })

	assert.Equal(t, 4, summary.Skipped)
	require.Len(t, summary.BestSlots, 1)
	assert.Equal(t, 1, summary.BestSlots[0].Count)
	assert.Len(t, summary.Dates, 1)
	// Users with only malformed rows still answered the poll.
	assert.Equal(t, 4, summary.TotalParticipants())
}

func TestSummary_AvailableFor(t *testing.T) {
	entries := []entity.Availability{
		allDay("u1", "2024-06-01"),
		timed("u2", "2024-06-01", "09:00", "12:00"),
		timed("u3", "2024-06-01", "10:00", "11:00"),
		timed("u1", "2024-06-01", "10:00", "11:00"),
	}
	summary := NewAggregator(5).Aggregate(entries)

	assert.Equal(t, []string{"u1", "u2", "u3"}, userIDs(summary.AvailableFor("2024-06-01", win(t, "10:00", "11:00"))))
	assert.Equal(t, []string{"u1", "u2"}, userIDs(summary.AvailableFor("2024-06-01", win(t, "09:00", "10:00"))))
	assert.Empty(t, summary.AvailableFor("2024-06-02", win(t, "09:00", "10:00")))
}
