package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meetpoll-api/core/config"
	"meetpoll-api/core/errors"
	"meetpoll-api/core/middleware"
	"meetpoll-api/core/utils"
	"meetpoll-api/modules/availability/dto"
	"meetpoll-api/modules/availability/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	submitted   *dto.SubmitAvailabilityRequest
	participant entity.Participant
	err         *errors.AppError
}

func (s *stubService) GetCalendar(context.Context, uuid.UUID, string, string) (*dto.CalendarResponse, *errors.AppError) {
	return &dto.CalendarResponse{Month: "2024-06"}, s.err
}

func (s *stubService) GetMyAvailability(context.Context, uuid.UUID, string) (*dto.MyAvailabilityResponse, *errors.AppError) {
	return &dto.MyAvailabilityResponse{}, s.err
}

func (s *stubService) SubmitAvailability(_ context.Context, eventID uuid.UUID, p entity.Participant, req *dto.SubmitAvailabilityRequest) (*dto.MyAvailabilityResponse, *errors.AppError) {
	s.submitted, s.participant = req, p
	if s.err != nil {
		return nil, s.err
	}
	return &dto.MyAvailabilityResponse{EventID: eventID.String()}, nil
}

func (s *stubService) WithdrawAvailability(context.Context, uuid.UUID, string) *errors.AppError {
	return s.err
}

func (s *stubService) GetSummary(context.Context, uuid.UUID, string) (*dto.SummaryResponse, *errors.AppError) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SummaryResponse{TotalParticipants: 3}, nil
}

func (s *stubService) GetSelection(context.Context, uuid.UUID, string) (*dto.SelectionResponse, *errors.AppError) {
	return &dto.SelectionResponse{State: "unset"}, s.err
}

func (s *stubService) SelectSlot(context.Context, uuid.UUID, string, *dto.SelectSlotRequest) (*dto.SelectionResponse, *errors.AppError) {
	return &dto.SelectionResponse{State: "set"}, s.err
}

func (s *stubService) ClearSelection(context.Context, uuid.UUID, string) (*dto.SelectionResponse, *errors.AppError) {
	return &dto.SelectionResponse{State: "unset"}, s.err
}

func (s *stubService) ConfirmSelection(context.Context, uuid.UUID, string) (*dto.ConfirmSelectionResponse, *errors.AppError) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ConfirmSelectionResponse{}, nil
}

const testSecret = "test-secret"

func newTestServer(t *testing.T, svc *stubService) *echo.Echo {
	t.Helper()
	e := echo.New()
	mw := middleware.NewMiddleware(config.JWTConfig{Secret: testSecret, Issuer: "meetpoll"})
	ctrl := NewAvailabilityController(svc)

	g := e.Group("/events/:id", mw.AuthMiddleware())
	g.PUT("/availability/me", ctrl.SubmitAvailability)
	g.GET("/summary", ctrl.GetSummary)
	g.POST("/selection/confirm", ctrl.ConfirmSelection)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authed {
		token, err := utils.GenerateToken(testSecret, "meetpoll", "user-1", "Ana", time.Hour)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSubmitAvailability(t *testing.T) {
	svc := &stubService{}
	e := newTestServer(t, svc)
	eventID := uuid.New()

	body := `{"dates":[{"date":"2024-06-01","all_day":true},{"date":"2024-06-02","windows":[{"start":"09:00","end":"10:00"}]}]}`
	rec := do(t, e, http.MethodPut, "/events/"+eventID.String()+"/availability/me", body, true)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.submitted)
	require.Len(t, svc.submitted.Dates, 2)
	assert.True(t, svc.submitted.Dates[0].AllDay)
	assert.Equal(t, "09:00", svc.submitted.Dates[1].Windows[0].Start)
	assert.Equal(t, entity.Participant{UserID: "user-1", UserName: "Ana"}, svc.participant)

	var resp struct {
		Data dto.MyAvailabilityResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, eventID.String(), resp.Data.EventID)
}

func TestAvailabilityController_ErrorMapping(t *testing.T) {
	eventPath := "/events/" + uuid.New().String()
	cases := []struct {
		name   string
		err    *errors.AppError
		method string
		path   string
		authed bool
		status int
		code   errors.ErrorCode
	}{
		{"no token", nil, http.MethodGet, eventPath + "/summary", false, http.StatusUnauthorized, ""},
		{"bad event id", nil, http.MethodGet, "/events/nope/summary", true, http.StatusBadRequest, ""},
		{"guest asks for summary", errors.NewAppError(errors.ErrForbidden, "Only the host can do this", nil), http.MethodGet, eventPath + "/summary", true, http.StatusForbidden, errors.ErrForbidden},
		{"overlap", errors.NewAppError(errors.ErrWindowOverlap, "overlap", nil), http.MethodPut, eventPath + "/availability/me", true, http.StatusUnprocessableEntity, errors.ErrWindowOverlap},
		{"empty selection", errors.NewAppError(errors.ErrEmptySelection, "empty", nil), http.MethodPut, eventPath + "/availability/me", true, http.StatusUnprocessableEntity, errors.ErrEmptySelection},
		{"confirm unset", errors.NewAppError(errors.ErrSelectionUnset, "No slot selected", nil), http.MethodPost, eventPath + "/selection/confirm", true, http.StatusConflict, errors.ErrSelectionUnset},
		{"missing event", errors.NewAppError(errors.ErrNotFound, "Event not found", nil), http.MethodGet, eventPath + "/summary", true, http.StatusNotFound, errors.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestServer(t, &stubService{err: tc.err})
			rec := do(t, e, tc.method, tc.path, `{"dates":[]}`, tc.authed)
			assert.Equal(t, tc.status, rec.Code)
			if tc.code != "" {
				var body struct {
					Code errors.ErrorCode `json:"code"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tc.code, body.Code)
			}
		})
	}
}
