package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDateKey   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTimeOfDay = errors.New("invalid time, expected HH:MM")
)

// DateKey is a calendar date without time of day, formatted YYYY-MM-DD.
// Lexicographic order equals chronological order.
type DateKey string

// ParseDateKey accepts YYYY-MM-DD or a timestamp whose first ten characters are the date.
func ParseDateKey(raw string) (DateKey, error) {
	s := strings.TrimSpace(raw)
	if len(s) > len(dateLayout) && s[len(dateLayout)] == 'T' {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, raw)
	}
	return DateKeyOf(t), nil
}

func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.Format(dateLayout))
}

func (d DateKey) String() string {
	return string(d)
}

// Time returns midnight UTC of the date. The zero time is returned for invalid keys.
func (d DateKey) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d DateKey) AddDays(n int) DateKey {
	return DateKeyOf(d.Time().AddDate(0, 0, n))
}

func (d DateKey) Before(other DateKey) bool {
	return d < other
}

func (d DateKey) Within(start, end DateKey) bool {
	return d >= start && d <= end
}

// TimeOfDay is minutes since midnight.
type TimeOfDay int

const minutesPerDay = 24 * 60

// ParseTimeOfDay accepts HH:MM, or HH:MM:SS when seconds are zero.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, raw)
	}
	if len(parts) == 3 && parts[2] != "00" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, raw)
	}
	if len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, raw)
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, raw)
	}
	return TimeOfDay(h*60 + m), nil
}

func MustTimeOfDay(raw string) TimeOfDay {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	if t < 0 || t >= minutesPerDay {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidTimeOfDay, int(t))
	}
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeWindow is the half-open interval [Start, End) on one date.
type TimeWindow struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func NewTimeWindow(start, end string) (TimeWindow, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeWindow{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{Start: s, End: e}, nil
}

func (w TimeWindow) Valid() bool {
	return w.Start < w.End
}

func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start < other.End && other.Start < w.End
}

// Contains reports whether other lies entirely inside w.
func (w TimeWindow) Contains(other TimeWindow) bool {
	return w.Start <= other.Start && other.End <= w.End
}

func (w TimeWindow) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// Less orders windows by start, then end.
func (w TimeWindow) Less(other TimeWindow) bool {
	if w.Start != other.Start {
		return w.Start < other.Start
	}
	return w.End < other.End
}
