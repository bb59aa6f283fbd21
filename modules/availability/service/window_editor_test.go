package service

import (
	"testing"

	"meetpoll-api/modules/availability/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowEditor_AddWindow(t *testing.T) {
	e := NewWindowEditor("2024-06-01")

	_, err := e.AddWindow(win(t, "09:00", "10:00"))
	require.NoError(t, err)
	_, err = e.AddWindow(win(t, "10:00", "11:00"))
	require.NoError(t, err, "touching windows do not overlap")

	_, err = e.AddWindow(win(t, "09:30", "10:30"))
	assert.ErrorIs(t, err, ErrOverlap)
	_, err = e.AddWindow(win(t, "08:00", "12:00"))
	assert.ErrorIs(t, err, ErrOverlap)
	_, err = e.AddWindow(win(t, "13:00", "13:00"))
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = e.AddWindow(win(t, "15:00", "14:00"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	assert.Equal(t, 2, e.Len(), "rejected windows leave the editor unchanged")
}

func TestWindowEditor_KeepsOrderAndIDs(t *testing.T) {
	e := NewWindowEditor("2024-06-01")
	ids := []string{"a", "a", "b", "c"}
	e.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	first, err := e.AddWindow(win(t, "14:00", "15:00"))
	require.NoError(t, err)
	second, err := e.AddWindow(win(t, "08:00", "09:00"))
	require.NoError(t, err)
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, "b", second.ID)

	assert.Equal(t, []entity.TimeWindow{
		win(t, "08:00", "09:00"),
		win(t, "14:00", "15:00"),
	}, e.TimeWindows())

	assert.False(t, e.RemoveWindow("missing"))
	assert.True(t, e.RemoveWindow("a"))
	assert.Equal(t, []entity.TimeWindow{win(t, "08:00", "09:00")}, e.TimeWindows())

	e.Clear()
	assert.Zero(t, e.Len())
	assert.Equal(t, entity.DateKey("2024-06-01"), e.Date())
}

func TestWindowEditor_WindowsIsACopy(t *testing.T) {
	e := NewWindowEditor("2024-06-01")
	_, err := e.AddWindow(win(t, "09:00", "10:00"))
	require.NoError(t, err)

	ws := e.Windows()
	ws[0].Start = entity.MustTimeOfDay("07:00")
	assert.Equal(t, "09:00", e.Windows()[0].Start.String())
}
