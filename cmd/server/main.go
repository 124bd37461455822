package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/team-task-tracker/internal/config"
	"github.com/yukikurage/team-task-tracker/internal/constants"
	"github.com/yukikurage/team-task-tracker/internal/database"
	"github.com/yukikurage/team-task-tracker/internal/handlers"
	"github.com/yukikurage/team-task-tracker/internal/logging"
	"github.com/yukikurage/team-task-tracker/internal/repository"
	"github.com/yukikurage/team-task-tracker/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Init(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	svc := handlers.Services{
		Auth:     services.NewAuthService(userRepo),
		Tasks:    services.NewTaskService(repository.NewTaskRepository(db), userRepo),
		Messages: services.NewMessageService(repository.NewMessageRepository(db)),
	}

	if _, err := svc.Auth.EnsureSeedAccount(services.SeedAccount{
		Username: cfg.SeedBossUsername,
		Password: cfg.SeedBossPassword,
	}); err != nil {
		log.Fatalf("Failed to seed boss account: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS)
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	handlers.RegisterRoutes(r, svc)

	// Start server
	addr := ":" + cfg.Port
	log.WithFields(log.Fields{
		"addr":   addr,
		"driver": cfg.DBDriver,
	}).Info("Server starting")
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newSessionStore returns a Redis backed store when configured and a signed
// cookie store otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionStore != "redis" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	return redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
}
