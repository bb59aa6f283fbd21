package service

import (
	"context"
	stdErrors "errors"
	"time"

	"meetpoll-api/core/constants"
	"meetpoll-api/core/errors"
	"meetpoll-api/core/logger"
	"meetpoll-api/core/queue"
	"meetpoll-api/modules/availability/dto"
	"meetpoll-api/modules/availability/entity"
	"meetpoll-api/modules/availability/mapper"
	"meetpoll-api/modules/availability/repository"
	eventEntity "meetpoll-api/modules/event/entity"

	"github.com/google/uuid"
)

// EventReader is the part of the event store this module needs.
type EventReader interface {
	GetEventByID(ctx context.Context, id uuid.UUID) (*eventEntity.Event, error)
}

type AvailabilityService struct {
	repo       repository.AvailabilityRepositoryInterface
	events     EventReader
	selections repository.SelectionStore
	queue      queue.Enqueuer
	aggregator *Aggregator
	now        func() time.Time
}

type AvailabilityServiceInterface interface {
	GetCalendar(ctx context.Context, eventID uuid.UUID, userID string, month string) (*dto.CalendarResponse, *errors.AppError)
	GetMyAvailability(ctx context.Context, eventID uuid.UUID, userID string) (*dto.MyAvailabilityResponse, *errors.AppError)
	SubmitAvailability(ctx context.Context, eventID uuid.UUID, participant entity.Participant, req *dto.SubmitAvailabilityRequest) (*dto.MyAvailabilityResponse, *errors.AppError)
	WithdrawAvailability(ctx context.Context, eventID uuid.UUID, userID string) *errors.AppError
	GetSummary(ctx context.Context, eventID uuid.UUID, userID string) (*dto.SummaryResponse, *errors.AppError)
	GetSelection(ctx context.Context, eventID uuid.UUID, hostID string) (*dto.SelectionResponse, *errors.AppError)
	SelectSlot(ctx context.Context, eventID uuid.UUID, hostID string, req *dto.SelectSlotRequest) (*dto.SelectionResponse, *errors.AppError)
	ClearSelection(ctx context.Context, eventID uuid.UUID, hostID string) (*dto.SelectionResponse, *errors.AppError)
	ConfirmSelection(ctx context.Context, eventID uuid.UUID, hostID string) (*dto.ConfirmSelectionResponse, *errors.AppError)
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(
	repo repository.AvailabilityRepositoryInterface,
	events EventReader,
	selections repository.SelectionStore,
	enqueuer queue.Enqueuer,
	topSlots int,
) AvailabilityServiceInterface {
	return &AvailabilityService{
		repo:       repo,
		events:     events,
		selections: selections,
		queue:      enqueuer,
		aggregator: NewAggregator(topSlots),
		now:        time.Now,
	}
}

// GetCalendar renders the month grid with the caller's saved dates marked.
// An empty month shows the month of the event's first date.
func (s *AvailabilityService) GetCalendar(ctx context.Context, eventID uuid.UUID, userID string, month string) (*dto.CalendarResponse, *errors.AppError) {
	event, appErr := s.loadEvent(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}

	session, _, appErr := s.resume(ctx, event, userID)
	if appErr != nil {
		return nil, appErr
	}

	cal := session.Calendar()
	if month != "" {
		t, err := time.Parse(constants.MonthLayout, month)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid month, expected YYYY-MM", err)
		}
		cal.ShowMonth(t.Year(), t.Month())
	}

	return toCalendarDTO(event, cal), nil
}

func (s *AvailabilityService) GetMyAvailability(ctx context.Context, eventID uuid.UUID, userID string) (*dto.MyAvailabilityResponse, *errors.AppError) {
	event, appErr := s.loadEvent(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}

	session, skipped, appErr := s.resume(ctx, event, userID)
	if appErr != nil {
		return nil, appErr
	}

	sel := session.Selection()
	return mapper.ToMyAvailabilityDTO(event.ID.String(), sel.SelectedDates, sel.WindowsByDate, skipped), nil
}

// SubmitAvailability replays the request through an editing session so the
// stored rows obey the same rules as interactive editing, then replaces the
// caller's previous rows in one transaction.
func (s *AvailabilityService) SubmitAvailability(ctx context.Context, eventID uuid.UUID, participant entity.Participant, req *dto.SubmitAvailabilityRequest) (*dto.MyAvailabilityResponse, *errors.AppError) {
	event, appErr := s.loadEvent(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}

	session, err := NewEditingSession(entity.DateKey(event.StartDate), entity.DateKey(event.EndDate))
	if err != nil {
		logger.Error("AvailabilityService:SubmitAvailability - event range", err, "event_id", eventID.String())
		return nil, errors.NewAppError(errors.ErrInternalServer, "Event has an invalid date range", err)
	}

	for _, item := range req.Dates {
		if appErr := applyDate(session, item); appErr != nil {
			return nil, appErr
		}
	}

	entries, err := session.Entries(event.ID, participant)
	if err != nil {
		return nil, toAppError(err)
	}

	if err := s.repo.ReplaceForUser(ctx, event.ID, participant.UserID, entries); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to save availability", err)
	}

	logger.Info("AvailabilityService:SubmitAvailability",
		"event_id", event.ID.String(),
		"user_id", participant.UserID,
		"entries", len(entries),
	)

	sel := session.Selection()
	return mapper.ToMyAvailabilityDTO(event.ID.String(), sel.SelectedDates, sel.WindowsByDate, 0), nil
}

func (s *AvailabilityService) WithdrawAvailability(ctx context.Context, eventID uuid.UUID, userID string) *errors.AppError {
	if _, appErr := s.loadEvent(ctx, eventID); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteForUser(ctx, eventID, userID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to withdraw availability", err)
	}
	return nil
}

func (s *AvailabilityService) GetSummary(ctx context.Context, eventID uuid.UUID, userID string) (*dto.SummaryResponse, *errors.AppError) {
	event, appErr := s.loadEventAsHost(ctx, eventID, userID)
	if appErr != nil {
		return nil, appErr
	}

	summary, appErr := s.aggregate(ctx, event.ID)
	if appErr != nil {
		return nil, appErr
	}

	return mapper.ToSummaryDTO(event.ID.String(), summary,
		entity.DateKey(event.StartDate), entity.DateKey(event.EndDate)), nil
}

func (s *AvailabilityService) GetSelection(ctx context.Context, eventID uuid.UUID, hostID string) (*dto.SelectionResponse, *errors.AppError) {
	if _, appErr := s.loadEventAsHost(ctx, eventID, hostID); appErr != nil {
		return nil, appErr
	}

	selection, appErr := s.loadSelection(ctx, eventID, hostID)
	if appErr != nil {
		return nil, appErr
	}
	if slot, ok := selection.Current(); ok {
		return mapper.ToSelectionDTO(eventID.String(), &slot), nil
	}
	return mapper.ToSelectionDTO(eventID.String(), nil), nil
}

// SelectSlot overwrites any previous choice; clearing first is not required.
func (s *AvailabilityService) SelectSlot(ctx context.Context, eventID uuid.UUID, hostID string, req *dto.SelectSlotRequest) (*dto.SelectionResponse, *errors.AppError) {
	event, appErr := s.loadEventAsHost(ctx, eventID, hostID)
	if appErr != nil {
		return nil, appErr
	}

	date, err := entity.ParseDateKey(req.Date)
	if err != nil {
		return nil, toAppError(err)
	}
	if !date.Within(entity.DateKey(event.StartDate), entity.DateKey(event.EndDate)) {
		return nil, toAppError(ErrDateNotSelectable)
	}
	window, err := entity.NewTimeWindow(req.Start, req.End)
	if err != nil {
		return nil, toAppError(err)
	}

	selection, appErr := s.loadSelection(ctx, eventID, hostID)
	if appErr != nil {
		return nil, appErr
	}
	if err := selection.Select(date, window, s.now().UTC()); err != nil {
		return nil, toAppError(err)
	}

	slot, _ := selection.Current()
	if err := s.selections.Save(ctx, eventID, hostID, slot); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to save selection", err)
	}
	return mapper.ToSelectionDTO(eventID.String(), &slot), nil
}

func (s *AvailabilityService) ClearSelection(ctx context.Context, eventID uuid.UUID, hostID string) (*dto.SelectionResponse, *errors.AppError) {
	if _, appErr := s.loadEventAsHost(ctx, eventID, hostID); appErr != nil {
		return nil, appErr
	}
	if err := s.selections.Clear(ctx, eventID, hostID); err != nil {
		return nil, errors.NewAppError(errors.ErrDeleteFailed, "Failed to clear selection", err)
	}
	return mapper.ToSelectionDTO(eventID.String(), nil), nil
}

// ConfirmSelection hands the chosen slot and the people who can make it to the
// confirmation queue. The selection stays set.
func (s *AvailabilityService) ConfirmSelection(ctx context.Context, eventID uuid.UUID, hostID string) (*dto.ConfirmSelectionResponse, *errors.AppError) {
	event, appErr := s.loadEventAsHost(ctx, eventID, hostID)
	if appErr != nil {
		return nil, appErr
	}

	selection, appErr := s.loadSelection(ctx, eventID, hostID)
	if appErr != nil {
		return nil, appErr
	}
	slot, ok := selection.Current()
	if !ok {
		return nil, errors.NewAppError(errors.ErrSelectionUnset, "No slot selected", nil)
	}

	summary, appErr := s.aggregate(ctx, event.ID)
	if appErr != nil {
		return nil, appErr
	}
	participants := mapper.ToParticipantsDTO(summary.AvailableFor(slot.Date, slot.Window))

	payload := dto.SelectionConfirmedPayload{
		EventID:      event.ID.String(),
		Title:        event.Title,
		HostID:       hostID,
		Date:         slot.Date.String(),
		Start:        slot.Window.Start.String(),
		End:          slot.Window.End.String(),
		Participants: participants,
		ConfirmedAt:  s.now().UTC(),
	}
	if err := s.queue.Enqueue(ctx, constants.TaskSelectionConfirmed, payload); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to queue confirmation", err)
	}

	logger.Info("AvailabilityService:ConfirmSelection",
		"event_id", event.ID.String(),
		"slot", slot.Date.String()+" "+slot.Window.String(),
		"participants", len(participants),
	)

	return &dto.ConfirmSelectionResponse{
		SelectionResponse: *mapper.ToSelectionDTO(eventID.String(), &slot),
		Participants:      participants,
	}, nil
}

func (s *AvailabilityService) loadEvent(ctx context.Context, eventID uuid.UUID) (*eventEntity.Event, *errors.AppError) {
	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return event, nil
}

func (s *AvailabilityService) loadEventAsHost(ctx context.Context, eventID uuid.UUID, userID string) (*eventEntity.Event, *errors.AppError) {
	event, appErr := s.loadEvent(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}
	if !event.IsHost(userID) {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the host can do this", nil)
	}
	return event, nil
}

func (s *AvailabilityService) resume(ctx context.Context, event *eventEntity.Event, userID string) (*EditingSession, int, *errors.AppError) {
	entries, err := s.repo.ListByEventAndUser(ctx, event.ID, userID)
	if err != nil {
		return nil, 0, errors.NewAppError(errors.ErrGetFailed, "Failed to get availability", err)
	}

	session, skipped, err := ResumeEditingSession(entity.DateKey(event.StartDate), entity.DateKey(event.EndDate), entries)
	if err != nil {
		logger.Error("AvailabilityService:resume - event range", err, "event_id", event.ID.String())
		return nil, 0, errors.NewAppError(errors.ErrInternalServer, "Event has an invalid date range", err)
	}
	if skipped > 0 {
		logger.Warn("AvailabilityService:resume", ErrMalformedRecord,
			"event_id", event.ID.String(), "user_id", userID, "skipped", skipped)
	}
	return session, skipped, nil
}

func (s *AvailabilityService) aggregate(ctx context.Context, eventID uuid.UUID) (*entity.Summary, *errors.AppError) {
	entries, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get availability", err)
	}

	summary := s.aggregator.Aggregate(entries)
	if summary.Skipped > 0 {
		logger.Warn("AvailabilityService:aggregate", ErrMalformedRecord,
			"event_id", eventID.String(), "skipped", summary.Skipped)
	}
	return summary, nil
}

func (s *AvailabilityService) loadSelection(ctx context.Context, eventID uuid.UUID, hostID string) (*FinalSelection, *errors.AppError) {
	slot, err := s.selections.Load(ctx, eventID, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load selection", err)
	}
	return RestoreFinalSelection(slot), nil
}

func applyDate(session *EditingSession, item dto.DateAvailabilityRequest) *errors.AppError {
	date, err := entity.ParseDateKey(item.Date)
	if err != nil {
		return toAppError(err)
	}
	if session.Calendar().IsSelected(date) {
		return errors.NewAppError(errors.ErrInvalidInput, "Date "+date.String()+" is listed more than once", nil)
	}
	if item.AllDay && len(item.Windows) > 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "Date "+date.String()+" is all day but has windows", nil)
	}
	if !item.AllDay && len(item.Windows) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "Date "+date.String()+" needs windows or all_day", nil)
	}

	if err := session.ToggleDate(date); err != nil {
		return toAppError(err)
	}
	for _, w := range item.Windows {
		window, err := entity.NewTimeWindow(w.Start, w.End)
		if err != nil {
			return toAppError(err)
		}
		if _, err := session.AddWindow(date, window); err != nil {
			appErr := toAppError(err)
			appErr.Message = date.String() + " " + window.String() + ": " + appErr.Message
			return appErr
		}
	}
	return nil
}

// toAppError maps engine errors onto API error codes.
func toAppError(err error) *errors.AppError {
	switch {
	case stdErrors.Is(err, ErrInvalidRange):
		return errors.NewAppError(errors.ErrInvalidTimeRange, "End time must be after start time", err)
	case stdErrors.Is(err, ErrOverlap):
		return errors.NewAppError(errors.ErrWindowOverlap, "Time window overlaps another window on the same date", err)
	case stdErrors.Is(err, ErrEmptySelection):
		return errors.NewAppError(errors.ErrEmptySelection, "Select at least one date", err)
	case stdErrors.Is(err, ErrDateNotSelectable):
		return errors.NewAppError(errors.ErrDateNotSelectable, "Date is outside the event range", err)
	case stdErrors.Is(err, ErrInvalidDateRange):
		return errors.NewAppError(errors.ErrInvalidDateRange, "End date must not be before start date", err)
	case stdErrors.Is(err, ErrDateNotSelected):
		return errors.NewAppError(errors.ErrInvalidInput, "Date is not selected", err)
	case stdErrors.Is(err, entity.ErrInvalidDateKey), stdErrors.Is(err, entity.ErrInvalidTimeOfDay):
		return errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	default:
		return errors.NewAppError(errors.ErrInternalServer, "Unexpected error", err)
	}
}

func toCalendarDTO(event *eventEntity.Event, cal *CalendarRange) *dto.CalendarResponse {
	year, month := cal.DisplayedMonth()
	resp := &dto.CalendarResponse{
		EventID:   event.ID.String(),
		StartDate: cal.Start().String(),
		EndDate:   cal.End().String(),
		Month:     time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(constants.MonthLayout),
	}

	var week []dto.CalendarCellResponse
	for _, cell := range cal.Grid() {
		week = append(week, dto.CalendarCellResponse{
			Date:       cell.Date.String(),
			Day:        cell.Day,
			InMonth:    cell.IsInCurrentMonth,
			Selectable: cell.IsSelectable,
			Selected:   cell.IsSelected,
		})
		if len(week) == 7 {
			resp.Weeks = append(resp.Weeks, week)
			week = nil
		}
	}
	return resp
}
