package main

import (
	"log"
	"net/http"
	"os"

	_ "tasktrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tasktrack/internal/auth"
	"tasktrack/internal/cache"
	"tasktrack/internal/config"
	"tasktrack/internal/db"
	"tasktrack/internal/handler"
	"tasktrack/internal/logger"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
	"tasktrack/internal/router"
	"tasktrack/internal/service"
)

// @title Tasktrack API
// @version 1.0
// @description Task tracking API with per-user ownership and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	appLog, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer appLog.Sync()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		appLog.Fatalw("database init failed", "error", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		appLog.Info("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Task{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				appLog.Warnw("failed to drop table (may not exist)", "error", err)
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
	); err != nil {
		appLog.Fatalw("auto-migrate failed", "error", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize auth components. The signing secret is loaded once here
	// and handed to the issuer/validator by construction.
	hasher := auth.NewArgon2Hasher()
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService, appLog)
	taskService := service.NewTaskService(taskRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)

	// Register routes
	router.Register(e, cfg, appLog, jwtService, authHandler, taskHandler)

	addr := ":" + cfg.ServerPort
	appLog.Infow("starting server", "addr", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		appLog.Fatalw("server start failed", "error", err)
	}
}
