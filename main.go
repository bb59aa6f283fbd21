package main

import (
	"os"

	"meetpoll-api/core/logger"
	"meetpoll-api/core/server"
)

// @title MeetPoll API
// @version 1.0
// @description Group availability polling: participants mark dates and time windows, hosts see ranked slots.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
		os.Exit(1)
	}
}
