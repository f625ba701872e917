// Package middleware holds the echo middleware specific to the HTTP API.
package middleware

import (
	"strings"

	"novasalud/config"
	"novasalud/internal/delivery/http/response"
	"novasalud/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// KeyOperator is the echo.Context key holding the authenticated operator name.
const KeyOperator = "operator"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenSvc service.TokenService
	Config   *config.Config
}

// AuthMiddleware validates operator access tokens.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	enabled  bool
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: params.TokenSvc,
		enabled:  params.Config.Auth != nil && params.Config.Auth.Enabled,
	}
}

// Authenticate rejects requests without a valid Bearer token. It is a no-op when auth is disabled.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.enabled {
			return next(c)
		}

		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(KeyOperator, claims.Operator)

		return next(c)
	}
}

// GetOperator returns the operator set by Authenticate.
func GetOperator(c echo.Context) (string, bool) {
	operator, ok := c.Get(KeyOperator).(string)

	return operator, ok && operator != ""
}
