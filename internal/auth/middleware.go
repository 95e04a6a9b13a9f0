package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tasktrack/internal/errors"
)

const principalContextKey = "principal"

// Middleware is the token-validation stage of the request pipeline: it
// extracts the bearer credential from the Authorization header, runs
// JWTService.Authenticate, and attaches the resulting Principal to the
// request context. Every failure mode — missing header, malformed token,
// bad signature, expired — collapses into one uniform 401 so responses
// cannot serve as a validity oracle; the specific cause is logged
// server-side instead.
func Middleware(jwtService *JWTService, log *zap.SugaredLogger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  principalContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			return jwtService.Authenticate(raw)
		},
		SuccessHandler: func(c echo.Context) {
			p, ok := c.Get(principalContextKey).(Principal)
			if !ok {
				return
			}
			ctx := WithPrincipal(c.Request().Context(), p)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			log.Warnw("request rejected: token validation failed",
				"cause", err.Error(),
				"path", c.Path(),
			)
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "unauthorized",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}
