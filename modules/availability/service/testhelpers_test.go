package service

import (
	"testing"

	"meetpoll-api/modules/availability/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testEventID = uuid.MustParse("7f0c8c1e-1d7a-4c1b-9b7e-2f3a4b5c6d7e")

func win(t *testing.T, start, end string) entity.TimeWindow {
	t.Helper()
	w, err := entity.NewTimeWindow(start, end)
	require.NoError(t, err)
	return w
}

func timed(user, date, start, end string) entity.Availability {
	return entity.Availability{
		EventID:   testEventID,
		UserID:    user,
		UserName:  "name-" + user,
		Date:      date,
		StartTime: &start,
		EndTime:   &end,
	}
}

func allDay(user, date string) entity.Availability {
	return entity.Availability{
		EventID:  testEventID,
		UserID:   user,
		UserName: "name-" + user,
		Date:     date,
		AllDay:   true,
	}
}

func userIDs(ps []entity.Participant) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.UserID)
	}
	return out
}
