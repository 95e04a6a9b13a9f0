package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"tasktrack/internal/auth"
	"tasktrack/internal/config"
	"tasktrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.SugaredLogger,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: the token-validation stage runs before every task
	// operation and attaches the principal the handlers read back.
	secured := api.Group("", auth.Middleware(jwtService, log))

	secured.POST("/tasks", taskHandler.Create)
	secured.GET("/tasks", taskHandler.List)
	secured.GET("/tasks/:id", taskHandler.Get)
	secured.PUT("/tasks/:id", taskHandler.Update)
	secured.DELETE("/tasks/:id", taskHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
