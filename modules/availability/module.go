package availability

import (
	"meetpoll-api/core/cache"
	"meetpoll-api/core/config"
	"meetpoll-api/core/database"
	"meetpoll-api/core/middleware"
	"meetpoll-api/core/queue"
	"meetpoll-api/modules/availability/controller"
	"meetpoll-api/modules/availability/repository"
	"meetpoll-api/modules/availability/router"
	"meetpoll-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init wires the availability module and registers its routes.
func Init(
	e *echo.Echo,
	db database.IDatabase,
	c cache.Cache,
	q queue.Enqueuer,
	events service.EventReader,
	cfg config.PlannerConfig,
	mw *middleware.Middleware,
) {
	repo := repository.NewAvailabilityRepository(db)
	selections := repository.NewCacheSelectionStore(c, cfg.SelectionTTL)
	svc := service.NewAvailabilityService(repo, events, selections, q, cfg.TopSlots)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
}
