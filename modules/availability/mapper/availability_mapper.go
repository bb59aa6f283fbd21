package mapper

import (
	"sort"

	"meetpoll-api/modules/availability/dto"
	"meetpoll-api/modules/availability/entity"
)

func ToParticipantsDTO(participants []entity.Participant) []dto.ParticipantResponse {
	result := make([]dto.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		result = append(result, dto.ParticipantResponse{UserID: p.UserID, UserName: p.UserName})
	}
	return result
}

func ToWindowDTO(w entity.TimeWindow) dto.WindowResponse {
	return dto.WindowResponse{Start: w.Start.String(), End: w.End.String()}
}

// ToMyAvailabilityDTO lists dates in order; a date without windows is all day.
func ToMyAvailabilityDTO(eventID string, dates []entity.DateKey, windowsByDate map[entity.DateKey][]entity.TimeWindow, skipped int) *dto.MyAvailabilityResponse {
	resp := &dto.MyAvailabilityResponse{
		EventID: eventID,
		Dates:   make([]dto.DateAvailabilityResponse, 0, len(dates)),
		Skipped: skipped,
	}
	for _, date := range dates {
		windows := windowsByDate[date]
		item := dto.DateAvailabilityResponse{
			Date:    date.String(),
			AllDay:  len(windows) == 0,
			Windows: make([]dto.WindowResponse, 0, len(windows)),
		}
		for _, w := range windows {
			item.Windows = append(item.Windows, ToWindowDTO(w))
		}
		resp.Dates = append(resp.Dates, item)
	}
	return resp
}

func ToSlotDTO(slot entity.RankedSlot) dto.SlotResponse {
	return dto.SlotResponse{
		Date:         slot.Date.String(),
		Start:        slot.Window.Start.String(),
		End:          slot.Window.End.String(),
		Count:        slot.Count,
		Participants: ToParticipantsDTO(slot.Participants),
	}
}

func ToCoverageDTO(c entity.Coverage) dto.CoverageResponse {
	return dto.CoverageResponse{
		Date:      c.Date.String(),
		Available: c.Available,
		Total:     c.Total,
		Fraction:  c.Fraction(),
	}
}

// ToSummaryDTO renders one aggregation run. Coverage covers every date in
// [start, end], including dates nobody answered.
func ToSummaryDTO(eventID string, summary *entity.Summary, start, end entity.DateKey) *dto.SummaryResponse {
	resp := &dto.SummaryResponse{
		EventID:           eventID,
		TotalParticipants: summary.TotalParticipants(),
		Participants:      ToParticipantsDTO(summary.Participants),
		BestSlots:         make([]dto.SlotResponse, 0, len(summary.BestSlots)),
		Dates:             make([]dto.DateSummaryResponse, 0, len(summary.Dates)),
		Skipped:           summary.Skipped,
	}

	for _, slot := range summary.BestSlots {
		resp.BestSlots = append(resp.BestSlots, ToSlotDTO(slot))
	}

	dates := make([]entity.DateKey, 0, len(summary.Dates))
	for date := range summary.Dates {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	for _, date := range dates {
		agg := summary.Dates[date]
		item := dto.DateSummaryResponse{
			Date:           date.String(),
			AllDay:         ToParticipantsDTO(agg.AllDay),
			Windows:        make([]dto.WindowBucketResponse, 0, len(agg.Windows)),
			AvailableCount: len(agg.Available),
		}
		for _, bucket := range agg.Windows {
			item.Windows = append(item.Windows, dto.WindowBucketResponse{
				Start:        bucket.Window.Start.String(),
				End:          bucket.Window.End.String(),
				Count:        bucket.Count,
				Participants: ToParticipantsDTO(bucket.Participants),
			})
		}
		resp.Dates = append(resp.Dates, item)
	}

	coverage := summary.CoverageRange(start, end)
	resp.Coverage = make([]dto.CoverageResponse, 0, len(coverage))
	for _, c := range coverage {
		resp.Coverage = append(resp.Coverage, ToCoverageDTO(c))
	}
	return resp
}

// ToSelectionDTO maps a nil slot to the unset state.
func ToSelectionDTO(eventID string, slot *entity.SelectedSlot) *dto.SelectionResponse {
	if slot == nil {
		return &dto.SelectionResponse{EventID: eventID, State: "unset"}
	}
	return &dto.SelectionResponse{
		EventID: eventID,
		State:   "set",
		Slot: &dto.SelectedSlotResponse{
			Date:       slot.Date.String(),
			Start:      slot.Window.Start.String(),
			End:        slot.Window.End.String(),
			SelectedAt: slot.SelectedAt,
		},
	}
}
