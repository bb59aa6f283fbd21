package entity

// WindowBucket groups the distinct participants who submitted exactly Window on one date.
type WindowBucket struct {
	Window       TimeWindow
	Participants []Participant
	Count        int
}

// DateAggregate is everything known about one date after grouping.
type DateAggregate struct {
	Date    DateKey
	AllDay  []Participant
	Windows []WindowBucket // ordered by window start, then end
	// Available is the distinct union of all-day and timed participants.
	Available []Participant
}

// RankedSlot is one candidate (date, window) with its participant count.
type RankedSlot struct {
	Date         DateKey
	Window       TimeWindow
	Participants []Participant
	Count        int
}

type Coverage struct {
	Date         DateKey
	Available    int
	Total        int
	Participants []Participant
}

func (c Coverage) Fraction() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Available) / float64(c.Total)
}

// Summary is the result of one aggregation pass. It is not persisted.
type Summary struct {
	Dates        map[DateKey]*DateAggregate
	BestSlots    []RankedSlot
	Participants []Participant // distinct across every record of the event
	Skipped      int
}

func (s *Summary) TotalParticipants() int {
	return len(s.Participants)
}

// Coverage reports how many distinct participants can make date, out of the event total.
func (s *Summary) Coverage(date DateKey) Coverage {
	cov := Coverage{Date: date, Total: s.TotalParticipants()}
	if agg, ok := s.Dates[date]; ok {
		cov.Available = len(agg.Available)
		cov.Participants = agg.Available
	}
	return cov
}

// CoverageRange returns one figure per date in [start, end], zero for dates without responses.
func (s *Summary) CoverageRange(start, end DateKey) []Coverage {
	if start.Time().IsZero() || end.Time().IsZero() || end.Before(start) {
		return nil
	}
	var out []Coverage
	for d := start; !end.Before(d); d = d.AddDays(1) {
		out = append(out, s.Coverage(d))
	}
	return out
}

// AvailableFor lists distinct participants free for the whole of window on date:
// all-day responders plus anyone whose submitted window contains it.
func (s *Summary) AvailableFor(date DateKey, window TimeWindow) []Participant {
	agg, ok := s.Dates[date]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []Participant
	add := func(p Participant) {
		if _, dup := seen[p.UserID]; dup {
			return
		}
		seen[p.UserID] = struct{}{}
		out = append(out, p)
	}
	for _, p := range agg.AllDay {
		add(p)
	}
	for _, bucket := range agg.Windows {
		if !bucket.Window.Contains(window) {
			continue
		}
		for _, p := range bucket.Participants {
			add(p)
		}
	}
	return out
}
