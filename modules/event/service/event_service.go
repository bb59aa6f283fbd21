package service

import (
	"context"
	"strings"

	"meetpoll-api/core/errors"
	"meetpoll-api/core/utils"
	availabilityEntity "meetpoll-api/modules/availability/entity"
	"meetpoll-api/modules/event/dto"
	"meetpoll-api/modules/event/entity"
	"meetpoll-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type EventService struct {
	repo repository.EventRepositoryInterface
}

type EventServiceInterface interface {
	CreateEvent(ctx context.Context, host *utils.TokenClaims, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEventByID(ctx context.Context, id uuid.UUID, viewerID string) (*dto.EventResponse, *errors.AppError)
	GetPublicEvent(ctx context.Context, slug string) (*dto.PublicEventResponse, *errors.AppError)
	GetMyEvents(ctx context.Context, userID string) ([]dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, eventID uuid.UUID, hostID string, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, eventID uuid.UUID, hostID string) *errors.AppError
}

// NewEventService creates a new event service
func NewEventService(repo repository.EventRepositoryInterface) EventServiceInterface {
	return &EventService{repo: repo}
}

// CreateEvent opens a poll hosted by the caller and gives it a share slug.
func (s *EventService) CreateEvent(ctx context.Context, host *utils.TokenClaims, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Title is required", nil)
	}

	start, end, appErr := parseDateRange(req.StartDate, req.EndDate)
	if appErr != nil {
		return nil, appErr
	}

	event := &entity.Event{
		ID:        uuid.New(),
		HostID:    host.UserID,
		HostName:  host.DisplayName(),
		Title:     title,
		Slug:      shareSlug(title),
		StartDate: start.String(),
		EndDate:   end.String(),
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		event.Description = &d
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event", err)
	}

	return dto.ToEventResponse(created, host.UserID), nil
}

func (s *EventService) GetEventByID(ctx context.Context, id uuid.UUID, viewerID string) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToEventResponse(event, viewerID), nil
}

func (s *EventService) GetPublicEvent(ctx context.Context, slug string) (*dto.PublicEventResponse, *errors.AppError) {
	event, err := s.repo.GetEventBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return dto.ToPublicEventResponse(event), nil
}

// GetMyEvents lists events the user hosts or has answered.
func (s *EventService) GetMyEvents(ctx context.Context, userID string) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.GetMyEvents(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get events", err)
	}
	return dto.ToEventListResponse(events), nil
}

func (s *EventService) UpdateEvent(ctx context.Context, eventID uuid.UUID, hostID string, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.loadAsHost(ctx, eventID, hostID)
	if appErr != nil {
		return nil, appErr
	}

	if t := strings.TrimSpace(req.Title); t != "" {
		event.Title = t
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		event.Description = &d
	}

	startRaw, endRaw := event.StartDate, event.EndDate
	if req.StartDate != "" {
		startRaw = req.StartDate
	}
	if req.EndDate != "" {
		endRaw = req.EndDate
	}
	start, end, appErr := parseDateRange(startRaw, endRaw)
	if appErr != nil {
		return nil, appErr
	}
	event.StartDate, event.EndDate = start.String(), end.String()

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event", err)
	}

	return s.GetEventByID(ctx, eventID, hostID)
}

func (s *EventService) DeleteEvent(ctx context.Context, eventID uuid.UUID, hostID string) *errors.AppError {
	if _, appErr := s.loadAsHost(ctx, eventID, hostID); appErr != nil {
		return appErr
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event", err)
	}
	return nil
}

func (s *EventService) load(ctx context.Context, id uuid.UUID) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return event, nil
}

func (s *EventService) loadAsHost(ctx context.Context, id uuid.UUID, hostID string) (*entity.Event, *errors.AppError) {
	event, appErr := s.load(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	if !event.IsHost(hostID) {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the host can change this event", nil)
	}
	return event, nil
}

func parseDateRange(startRaw, endRaw string) (availabilityEntity.DateKey, availabilityEntity.DateKey, *errors.AppError) {
	start, err := availabilityEntity.ParseDateKey(startRaw)
	if err != nil {
		return "", "", errors.NewAppError(errors.ErrInvalidInput, "Invalid start date", err)
	}
	end, err := availabilityEntity.ParseDateKey(endRaw)
	if err != nil {
		return "", "", errors.NewAppError(errors.ErrInvalidInput, "Invalid end date", err)
	}
	if end.Before(start) {
		return "", "", errors.NewAppError(errors.ErrInvalidDateRange, "End date must not be before start date", nil)
	}
	return start, end, nil
}

// shareSlug builds "<title-slug>-<short id>" so titles may repeat.
func shareSlug(title string) string {
	base := slug.Make(title)
	if base == "" {
		base = "event"
	}
	return base + "-" + strings.ToLower(utils.GenerateID())
}
