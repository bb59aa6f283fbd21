package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"meetpoll-api/core/cache"
	"meetpoll-api/core/config"
	"meetpoll-api/core/constants"
	"meetpoll-api/core/database"
	"meetpoll-api/core/logger"
	"meetpoll-api/core/middleware"
	"meetpoll-api/core/queue"
	"meetpoll-api/modules/availability"
	"meetpoll-api/modules/event"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run loads configuration, connects the stores, serves HTTP and blocks until
// SIGINT or SIGTERM, then drains in-flight requests.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisCache := cache.NewRedisCache(cfg.Redis)
	defer redisCache.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultRequestTimeout)
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("Redis not reachable, selections will fail until it is", "error", err)
	}
	cancel()

	queueClient := queue.NewClient(cfg.Redis, cfg.Planner.QueueName)
	defer queueClient.Close()

	e := NewEcho(cfg.Server)
	mw := middleware.NewMiddleware(cfg.JWT)

	e.GET("/healthz", healthz(db, redisCache))

	eventRepo := event.Init(e, db, mw)
	availability.Init(e, db, redisCache, queueClient, eventRepo, cfg.Planner, mw)

	return serve(e, cfg.Server)
}

// NewEcho builds the router with the shared middleware stack.
func NewEcho(cfg config.ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.ContextTimeout(constants.DefaultTimeout))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			logger.Info("HTTP:Request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
			)
			return nil
		},
	}))
	return e
}

func healthz(db database.IDatabase, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), constants.DefaultRequestTimeout)
		defer cancel()

		status := map[string]string{"database": "ok", "redis": "ok"}
		code := http.StatusOK
		if err := db.SQLx().PingContext(reqCtx); err != nil {
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if err := c.Ping(reqCtx); err != nil {
			status["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		return ctx.JSON(code, status)
	}
}

func serve(e *echo.Echo, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", srv.Addr, "base_url", cfg.BaseURL)
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case sig := <-sigCh:
		logger.Info("Signal received, shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server:Shutdown", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}
