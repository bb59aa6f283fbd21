package middleware

import (
	"errors"
	"strings"

	"meetpoll-api/core/config"
	"meetpoll-api/core/constants"
	"meetpoll-api/core/controller"
	appErrors "meetpoll-api/core/errors"
	"meetpoll-api/core/logger"
	"meetpoll-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	jwt  config.JWTConfig
	base controller.BaseController
}

// NewMiddleware creates middleware that validates tokens signed with jwtCfg.Secret.
func NewMiddleware(jwtCfg config.JWTConfig) *Middleware {
	return &Middleware{jwt: jwtCfg, base: controller.NewBaseController()}
}

// AuthMiddleware validates the bearer token and stores its claims under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return m.base.Unauthorized(appErrors.ErrMissingAuthorizationHeader, "Missing authorization header")
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				return m.base.Unauthorized(appErrors.ErrInvalidTokenFormat, "Invalid token format")
			}

			claims, err := utils.ValidateAndParseToken(m.jwt.Secret, token)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return m.base.Unauthorized(appErrors.ErrTokenExpired, "Token expired")
				}
				logger.Warn("Middleware:AuthMiddleware:ValidateAndParseToken", "error", err)
				return m.base.Unauthorized(appErrors.ErrUnauthorized, "Invalid token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
