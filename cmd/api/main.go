package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"davechat/cmd"
	"davechat/internal/api"
	"davechat/internal/conversation"
	"davechat/internal/database"
	"davechat/internal/llm"
	"davechat/internal/persona"
	"davechat/internal/quota"
	"davechat/internal/session"
)

type APIConfig struct {
	DatabaseURL      string   `env:"DATABASE_URL" envDefault:"davechat.db"`
	APIPort          string   `env:"API_PORT" envDefault:"5000"`
	LLMProvider      string   `env:"LLM_PROVIDER" envDefault:"googleai"`
	GoogleAPIKey     string   `env:"GOOGLE_API_KEY"`
	LLMModel         string   `env:"LLM_MODEL" envDefault:"gemini-1.5-flash-latest"`
	MaxGuestMessages int      `env:"MAX_GUEST_MESSAGES" envDefault:"10"`
	PersonaPath      string   `env:"PERSONA_PATH" envDefault:"persona.json"`
	SessionBackend   string   `env:"SESSION_BACKEND" envDefault:"memory"`
	RedisAddr        string   `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	SessionTTLDays   int      `env:"SESSION_TTL_DAYS" envDefault:"30"`
	CORSOrigins      []string `env:"CORS_ORIGINS" envDefault:"*"`
}

func main() {
	log.Println("Starting API Server...")

	cmd.LoadEnvFile()

	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	slog.Info("configuration loaded",
		"database_url", cfg.DatabaseURL,
		"llm_provider", cfg.LLMProvider,
		"llm_model", cfg.LLMModel,
		"google_api_key_set", cfg.GoogleAPIKey != "",
		"max_guest_messages", cfg.MaxGuestMessages,
		"session_backend", cfg.SessionBackend,
	)

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.GetMigrator(db).Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	p := persona.Load(cfg.PersonaPath)
	if p == nil {
		slog.Warn("no persona loaded, conversations start with the bare preamble")
	}
	conversations := conversation.NewManager(p)

	sessionTTL := time.Duration(cfg.SessionTTLDays) * 24 * time.Hour
	var sessionStore session.Store
	switch cfg.SessionBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		sessionStore = session.NewRedisStore(rdb, sessionTTL)
	case "memory":
		sessionStore = session.NewMemoryStore(sessionTTL)
	default:
		log.Fatalf("unknown session backend %q", cfg.SessionBackend)
	}
	sessions := session.NewManager(sessionStore, sessionTTL)

	if cfg.LLMProvider == llm.ProviderGoogleAI && cfg.GoogleAPIKey == "" {
		log.Fatalf("GOOGLE_API_KEY environment variable not set")
	}
	generator, err := llm.NewGenerator(context.Background(), cfg.LLMProvider, cfg.GoogleAPIKey, cfg.LLMModel)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	// --- Chi Router Setup ---
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true, // the session cookie crosses origins
	}))
	r.Use(sessions.Middleware)

	gate := quota.NewGate(cfg.MaxGuestMessages)
	service := api.NewChatbotService(db, sessions, conversations, gate, generator)
	service.AddRoutes(r)

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("API server listening on port %s", cfg.APIPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
	}

	log.Println("Server stopped.")
}
