package dto

import (
	"time"

	"meetpoll-api/modules/event/entity"
)

// ===================== Request DTOs =====================

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD, inclusive
}

// UpdateEventRequest leaves empty fields unchanged.
type UpdateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// ===================== Response DTOs =====================

type EventResponse struct {
	ID          string    `json:"id"`
	HostID      string    `json:"host_id"`
	HostName    string    `json:"host_name"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	IsHost      bool      `json:"is_host"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicEventResponse is what a share link shows before sign-in.
type PublicEventResponse struct {
	ID          string `json:"id"`
	HostName    string `json:"host_name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// ===================== Mappers =====================

func ToEventResponse(e *entity.Event, viewerID string) *EventResponse {
	resp := &EventResponse{
		ID:        e.ID.String(),
		HostID:    e.HostID,
		HostName:  e.HostName,
		Title:     e.Title,
		Slug:      e.Slug,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		IsHost:    e.IsHost(viewerID),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.Description != nil {
		resp.Description = *e.Description
	}
	return resp
}

func ToEventListResponse(events []entity.EventWithRole) []EventResponse {
	result := make([]EventResponse, 0, len(events))
	for i := range events {
		resp := ToEventResponse(&events[i].Event, "")
		resp.IsHost = events[i].IsHost
		result = append(result, *resp)
	}
	return result
}

func ToPublicEventResponse(e *entity.Event) *PublicEventResponse {
	resp := &PublicEventResponse{
		ID:        e.ID.String(),
		HostName:  e.HostName,
		Title:     e.Title,
		Slug:      e.Slug,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
	}
	if e.Description != nil {
		resp.Description = *e.Description
	}
	return resp
}
