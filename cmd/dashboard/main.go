package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oseyili/myspace-dashboard/config"
	"github.com/oseyili/myspace-dashboard/internal/auth"
	"github.com/oseyili/myspace-dashboard/internal/endpoint"
	"github.com/oseyili/myspace-dashboard/internal/gateway"
	"github.com/oseyili/myspace-dashboard/internal/handlers"
	"github.com/oseyili/myspace-dashboard/internal/middleware"
	"github.com/oseyili/myspace-dashboard/internal/rooms"
	"github.com/oseyili/myspace-dashboard/internal/session"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Resolve the backend endpoint. An unconfigured URL is not fatal: the
	// gateway refuses calls with a configuration error the UI can show.
	ep := endpoint.Resolve(cfg.APIBaseURL)
	log.Println(ep.Status)

	// Pick the credential storage backend
	storage, cleanup, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize session storage: %v", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Rehydrate any session persisted by an earlier run
	sessions := session.New(storage)
	if err := sessions.Restore(context.Background()); err != nil {
		log.Printf("Could not restore persisted session: %v", err)
	}

	// Wire the core
	gw := gateway.New(ep)
	flow := auth.New(gw, sessions)
	directory := rooms.New(gw)
	events := handlers.NewEventHub()

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS for the dashboard origin(s)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Dashboard API
	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.Credential(sessions))
	{
		apiGroup.POST("/auth/login", handlers.Login(flow, sessions, events))
		apiGroup.POST("/auth/register", handlers.Register(flow, sessions))
		apiGroup.POST("/auth/logout", handlers.Logout(sessions, directory, events))
		apiGroup.GET("/session", handlers.Session(sessions))

		apiGroup.GET("/rooms/:hotelId", handlers.LoadRooms(directory, events))
		apiGroup.POST("/rooms", handlers.CreateRoom(directory, events))
		apiGroup.GET("/rooms/:hotelId/export", handlers.ExportRooms(directory))
	}

	// Live state snapshots for open dashboard tabs
	wsGroup := router.Group("/ws")
	{
		wsGroup.GET("/events", events.Subscribe)
	}

	// Start server
	log.Printf("Starting dashboard on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// newStorage builds the configured credential storage. The returned cleanup
// closes the backend when it holds a connection.
func newStorage(cfg *config.Config) (session.Storage, func() error, error) {
	switch cfg.SessionStore {
	case "redis":
		storage, err := session.NewRedisStorage(context.Background(), cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Redis connection established")
		return storage, storage.Close, nil
	case "memory":
		return session.NewMemoryStorage(), nil, nil
	default:
		storage, err := session.NewFileStorage(cfg.SessionDir)
		if err != nil {
			return nil, nil, err
		}
		return storage, nil, nil
	}
}
