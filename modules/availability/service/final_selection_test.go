package service

import (
	"testing"
	"time"

	"meetpoll-api/modules/availability/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalSelection(t *testing.T) {
	at := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	f := RestoreFinalSelection(nil)
	assert.Equal(t, SelectionUnset, f.State())
	_, ok := f.Current()
	assert.False(t, ok)

	require.NoError(t, f.Select("2024-06-01", win(t, "14:00", "15:00"), at))
	assert.Equal(t, SelectionSet, f.State())

	// A new choice replaces the old one without clearing first.
	require.NoError(t, f.Select("2024-06-02", win(t, "09:00", "10:00"), at))
	slot, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, entity.DateKey("2024-06-02"), slot.Date)
	assert.Equal(t, "09:00-10:00", slot.Window.String())

	assert.ErrorIs(t, f.Select("2024-06-03", win(t, "10:00", "09:00"), at), ErrInvalidRange)
	assert.ErrorIs(t, f.Select("nope", win(t, "09:00", "10:00"), at), entity.ErrInvalidDateKey)
	slot, _ = f.Current()
	assert.Equal(t, entity.DateKey("2024-06-02"), slot.Date, "failed selects keep the current slot")

	require.NoError(t, f.Select("2024-06-04T00:00:00Z", win(t, "09:00", "10:00"), at))
	slot, _ = f.Current()
	assert.Equal(t, entity.DateKey("2024-06-04"), slot.Date)

	f.Clear()
	assert.Equal(t, SelectionUnset, f.State())
	assert.Equal(t, "unset", f.State().String())
	f.Clear()
	assert.Equal(t, SelectionUnset, f.State())
}

func TestRestoreFinalSelection_Copies(t *testing.T) {
	stored := &entity.SelectedSlot{Date: "2024-06-01", Window: win(t, "09:00", "10:00")}
	f := RestoreFinalSelection(stored)
	assert.Equal(t, "set", f.State().String())

	stored.Date = "2024-07-01"
	slot, _ := f.Current()
	assert.Equal(t, entity.DateKey("2024-06-01"), slot.Date)
}
