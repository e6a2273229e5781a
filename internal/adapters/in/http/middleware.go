package http

import (
	"fmt"
	"log/slog"

	"warehouse/internal/auth"
	"warehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TokenCookie is the httpOnly cookie the frontend stores the JWT in.
const TokenCookie = "token"

// authenticate resolves the caller from the Authorization header, falling
// back to the token cookie, and stores the principal in the request context.
func authenticate(parser *auth.TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				cookie, err := c.Cookie(TokenCookie)
				if err != nil || cookie.Value == "" {
					return fmt.Errorf("%w: no token", auth.ErrUnauthorized)
				}
				token = cookie.Value
			}

			principal, err := parser.Parse(token)
			if err != nil {
				return err
			}

			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithPrincipal(req.Context(), principal)))
			return next(c)
		}
	}
}

// requirePermission rejects callers lacking any of the given permissions.
// With several permissions, holding one is enough.
func requirePermission(permissions ...auth.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := auth.FromContext(c.Request().Context())
			if !ok {
				return fmt.Errorf("%w: no principal", auth.ErrUnauthorized)
			}
			for _, p := range permissions {
				if principal.Has(p) {
					return next(c)
				}
			}
			return errs.NewForbiddenError(fmt.Sprintf("%s %s", c.Request().Method, c.Path()))
		}
	}
}

func principalFrom(c echo.Context) (*auth.Principal, error) {
	principal, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return nil, fmt.Errorf("%w: no principal", auth.ErrUnauthorized)
	}
	return principal, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}
