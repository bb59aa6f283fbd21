package event

import (
	"meetpoll-api/core/database"
	"meetpoll-api/core/middleware"
	"meetpoll-api/modules/event/controller"
	"meetpoll-api/modules/event/repository"
	"meetpoll-api/modules/event/router"
	"meetpoll-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init wires the event module and registers its routes. The repository is
// returned so other modules can read events without a second connection.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) *repository.EventRepository {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
	return repo
}
