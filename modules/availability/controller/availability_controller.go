package controller

import (
	"meetpoll-api/core/controller"
	"meetpoll-api/core/errors"
	"meetpoll-api/core/utils"
	"meetpoll-api/modules/availability/dto"
	"meetpoll-api/modules/availability/entity"
	"meetpoll-api/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

// NewAvailabilityController creates a new controller
func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// request resolves the caller and the :id path param shared by every route.
func (c *AvailabilityController) request(ctx echo.Context) (*utils.TokenClaims, uuid.UUID, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, uuid.Nil, c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return nil, uuid.Nil, c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}
	return user, eventID, nil
}

// GetCalendar handles GET /events/:id/calendar?month=YYYY-MM
// @Summary Month grid with the caller's selected dates
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Param month query string false "Month as YYYY-MM, defaults to the event's first month"
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/events/{id}/calendar [get]
func (c *AvailabilityController) GetCalendar(ctx echo.Context) error {
	user, eventID, err := c.request(ctx)
	if err != nil {
		return err
	}

	result, appErr := c.AvailabilityService.GetCalendar(ctx.Request().Context(), eventID, user.UserID, ctx.QueryParam("month"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyAvailability handles GET /events/:id/availability/me
// @Summary The caller's saved availability, ready for editing
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.MyAvailabilityResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/events/{id}/availability/me [get]
func (c *AvailabilityController) GetMyAvailability(ctx echo.Context) error {
	user, eventID, err := c.request(ctx)
	if err != nil {
		return err
	}

	result, appErr := c.AvailabilityService.GetMyAvailability(ctx.Request().Context(), eventID, user.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// SubmitAvailability handles PUT /events/:id/availability/me
// @Summary Replace the caller's availability
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.SubmitAvailabilityRequest true "Dates and windows"
// @Success 200 {object} dto.MyAvailabilityResponse
// @Failure 422 {object} controller.ErrorResponse
// @Router /private/events/{id}/availability/me [put]
func (c *AvailabilityController) SubmitAvailability(ctx echo.Context) error {
	user, eventID, err := c.request(ctx)
	if err != nil {
		return err
	}

	var req dto.SubmitAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	participant := entity.Participant{UserID: user.UserID, UserName: user.DisplayName()}
	result, appErr := c.AvailabilityService.SubmitAvailability(ctx.Request().Context(), eventID, participant, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Availability saved")
}

// WithdrawAvailability handles DELETE /events/:id/availability/me
// @Summary Remove all of the caller's availability
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/events/{id}/availability/me [delete]
func (c *AvailabilityController) WithdrawAvailability(ctx echo.Context) error {
	user, eventID, err := c.request(ctx)
	if err != nil {
		return err
	}

	if appErr := c.AvailabilityService.WithdrawAvailability(ctx.Request().Context(), eventID, user.UserID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Availability withdrawn")
}

// GetSummary handles GET /events/:id/summary
// @Summary Ranked best slots and per-date coverage (host only)
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.SummaryResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/events/{id}/summary [get]
func (c *AvailabilityController) GetSummary(ctx echo.Context) error {
	user, eventID, err := c.request(ctx)
	if err != nil {
		return err
	}

	result, appErr := c.AvailabilityService.GetSummary(ctx.Request().Context(), eventID, user.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetSelection handles GET /events/:id/selection
// @Summary The host's pending final slot
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.SelectionResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/events/{id}/selection [get]
func (c *AvailabilityController) GetSelection(ctx echo.Context) error {
	user, eventID, err := c.request(ctx)
	if err != nil {
		return err
	}

	result, appErr := c.AvailabilityService.GetSelection(ctx.Request().Context(), eventID, user.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// SelectSlot handles PUT /events/:id/selection
// @Summary Pick the final slot, replacing any earlier pick
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.SelectSlotRequest true "Date and window"
// @Success 200 {object} dto.SelectionResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 422 {object} controller.ErrorResponse
// @Router /private/events/{id}/selection [put]
func (c *AvailabilityController) SelectSlot(ctx echo.Context) error {
	user, eventID, err := c.request(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AvailabilityService.SelectSlot(ctx.Request().Context(), eventID, user.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Slot selected")
}

// ClearSelection handles DELETE /events/:id/selection
// @Summary Drop the pending final slot
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.SelectionResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/events/{id}/selection [delete]
func (c *AvailabilityController) ClearSelection(ctx echo.Context) error {
	user, eventID, err := c.request(ctx)
	if err != nil {
		return err
	}

	result, appErr := c.AvailabilityService.ClearSelection(ctx.Request().Context(), eventID, user.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Selection cleared")
}

// ConfirmSelection handles POST /events/:id/selection/confirm
// @Summary Hand off the selected slot with the participants who can attend
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.ConfirmSelectionResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/events/{id}/selection/confirm [post]
func (c *AvailabilityController) ConfirmSelection(ctx echo.Context) error {
	user, eventID, err := c.request(ctx)
	if err != nil {
		return err
	}

	result, appErr := c.AvailabilityService.ConfirmSelection(ctx.Request().Context(), eventID, user.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Selection confirmed")
}
