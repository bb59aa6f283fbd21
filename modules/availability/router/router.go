package router

import (
	"meetpoll-api/core/middleware"
	"meetpoll-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	AvailabilityController *controller.AvailabilityController
}

// NewAvailabilityRouter creates a new router
func NewAvailabilityRouter(availabilityController *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		AvailabilityController: availabilityController,
	}
}

func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	eventRoutes := e.Group("/api/v1/private/events/:id", mw.AuthMiddleware())

	eventRoutes.GET("/calendar", r.AvailabilityController.GetCalendar)

	eventRoutes.GET("/availability/me", r.AvailabilityController.GetMyAvailability)
	eventRoutes.PUT("/availability/me", r.AvailabilityController.SubmitAvailability)
	eventRoutes.DELETE("/availability/me", r.AvailabilityController.WithdrawAvailability)

	// Host only
	eventRoutes.GET("/summary", r.AvailabilityController.GetSummary)
	eventRoutes.GET("/selection", r.AvailabilityController.GetSelection)
	eventRoutes.PUT("/selection", r.AvailabilityController.SelectSlot)
	eventRoutes.DELETE("/selection", r.AvailabilityController.ClearSelection)
	eventRoutes.POST("/selection/confirm", r.AvailabilityController.ConfirmSelection)
}
