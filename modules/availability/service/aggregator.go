package service

import (
	"sort"

	"meetpoll-api/modules/availability/entity"
)

const DefaultTopSlots = 5

// Aggregator merges every participant's entries for one event into a per-date
// index and ranks candidate windows by how many distinct people can make them.
// A run is pure over its input, so one Aggregator is safe for concurrent use.
type Aggregator struct {
	// TopK - number of best slots returned, default 5
	TopK int
}

// NewAggregator creates an aggregator keeping the topK best slots, 5 when topK <= 0.
func NewAggregator(topK int) *Aggregator {
	if topK <= 0 {
		topK = DefaultTopSlots
	}
	return &Aggregator{TopK: topK}
}

// Aggregate never fails: rows with an unparseable date or window are left out
// of ranking and coverage and counted in Summary.Skipped.
func (a *Aggregator) Aggregate(entries []entity.Availability) *entity.Summary {
	summary := &entity.Summary{Dates: make(map[entity.DateKey]*entity.DateAggregate)}

	// 1. Group by date, then by exact window, counting distinct users
	groups := make(map[entity.DateKey]*dateGroup)
	everyone := newParticipantSet()
	for _, entry := range entries {
		if entry.UserID != "" {
			everyone.add(entity.Participant{UserID: entry.UserID, UserName: entry.UserName})
		}

		parsed, ok := entry.Parse()
		if !ok {
			summary.Skipped++
			continue
		}

		g, ok := groups[parsed.Date]
		if !ok {
			g = newDateGroup()
			groups[parsed.Date] = g
		}
		g.add(parsed)
	}
	summary.Participants = everyone.list

	// 2. Freeze groups into aggregates and collect timed candidates
	var candidates []entity.RankedSlot
	for date, g := range groups {
		agg := g.aggregate(date)
		summary.Dates[date] = agg
		for _, bucket := range agg.Windows {
			candidates = append(candidates, entity.RankedSlot{
				Date:         date,
				Window:       bucket.Window,
				Participants: bucket.Participants,
				Count:        bucket.Count,
			})
		}
	}

	// 3. Rank and keep the top K
	summary.BestSlots = a.rank(candidates)
	return summary
}

// rank orders by count desc, then date asc, then window start asc.
// End asc settles the remaining ties so the output is fully deterministic.
func (a *Aggregator) rank(candidates []entity.RankedSlot) []entity.RankedSlot {
	sort.SliceStable(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if ci.Count != cj.Count {
			return ci.Count > cj.Count
		}
		if ci.Date != cj.Date {
			return ci.Date < cj.Date
		}
		return ci.Window.Less(cj.Window)
	})

	if len(candidates) > a.TopK {
		return candidates[:a.TopK]
	}
	return candidates
}

type participantSet struct {
	seen map[string]struct{}
	list []entity.Participant
}

func newParticipantSet() *participantSet {
	return &participantSet{seen: make(map[string]struct{})}
}

func (s *participantSet) add(p entity.Participant) {
	if _, dup := s.seen[p.UserID]; dup {
		return
	}
	s.seen[p.UserID] = struct{}{}
	s.list = append(s.list, p)
}

type dateGroup struct {
	allDay    *participantSet
	windows   map[entity.TimeWindow]*participantSet
	available *participantSet
}

func newDateGroup() *dateGroup {
	return &dateGroup{
		allDay:    newParticipantSet(),
		windows:   make(map[entity.TimeWindow]*participantSet),
		available: newParticipantSet(),
	}
}

func (g *dateGroup) add(parsed entity.ParsedAvailability) {
	g.available.add(parsed.Participant)
	if parsed.Window == nil {
		g.allDay.add(parsed.Participant)
		return
	}
	set, ok := g.windows[*parsed.Window]
	if !ok {
		set = newParticipantSet()
		g.windows[*parsed.Window] = set
	}
	set.add(parsed.Participant)
}

func (g *dateGroup) aggregate(date entity.DateKey) *entity.DateAggregate {
	agg := &entity.DateAggregate{
		Date:      date,
		AllDay:    g.allDay.list,
		Available: g.available.list,
		Windows:   make([]entity.WindowBucket, 0, len(g.windows)),
	}
	for window, set := range g.windows {
		agg.Windows = append(agg.Windows, entity.WindowBucket{
			Window:       window,
			Participants: set.list,
			Count:        len(set.list),
		})
	}
	sort.Slice(agg.Windows, func(i, j int) bool {
		return agg.Windows[i].Window.Less(agg.Windows[j].Window)
	})
	return agg
}
