package main

import (
	"context"
	"log"

	"tasktrack/internal/auth"
	"tasktrack/internal/cache"
	"tasktrack/internal/config"
	"tasktrack/internal/db"
	"tasktrack/internal/logger"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
	"tasktrack/internal/service"
)

// Demo data for local development. Users are created through the real
// registration flow so their passwords hash exactly as production ones do.
var seedUsers = []struct {
	Username string
	Password string
	Tasks    []string
}{
	{"alice", "Secret123", []string{"buy milk", "write report"}},
	{"bob", "Passw0rd!", []string{"water plants"}},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	appLog, err := logger.New(true)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLog.Sync()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	hasher := auth.NewArgon2Hasher()
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, hasher, jwtService, appLog)
	taskService := service.NewTaskService(taskRepo, cacheClient)

	ctx := context.Background()
	created := 0
	for _, seed := range seedUsers {
		profile, err := authService.Register(ctx, seed.Username, seed.Password, seed.Password)
		if err != nil {
			// Re-running the script against a seeded database hits the
			// username conflict; skip and move on.
			log.Printf("Skipping user %s: %v", seed.Username, err)
			continue
		}

		principal := auth.Principal{UserID: profile.ID, Username: profile.Username}
		for _, title := range seed.Tasks {
			if _, err := taskService.Create(ctx, principal, service.CreateTaskInput{Title: title}); err != nil {
				log.Fatalf("Failed to create task %q for %s: %v", title, seed.Username, err)
			}
		}
		log.Printf("Seeded user %s with %d tasks", seed.Username, len(seed.Tasks))
		created++
	}

	log.Printf("Seed complete: %d users created", created)
}
