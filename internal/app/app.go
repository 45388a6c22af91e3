package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"questforge/internal/api"
	"questforge/internal/config"
	"questforge/internal/database"
	"questforge/internal/llm"
	"questforge/internal/repository"
	"questforge/internal/service"
)

// App bundles the wired application for startup and tests.
type App struct {
	Config *config.Config
	// DB is nil when the redis backend is configured.
	DB     *sql.DB
	Server *http.Server
}

// NewApp wires the repository, services and router from the given config.
func NewApp(cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	var repo repository.Repository
	var db *sql.DB
	switch cfg.StorageBackend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("could not connect to redis: %w", err)
		}
		repo = repository.NewRedisRepository(rdb)
		slog.Info("Using redis storage backend", "addr", cfg.RedisAddr)
	default:
		db, err = database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("could not initialize database: %w", err)
		}
		repo = repository.NewSQLiteRepository(db)
		slog.Info("Using sqlite storage backend", "path", cfg.DatabasePath)
	}

	provider := llm.NewGatewayProvider(cfg.GatewayURL, cfg.GatewayAPIKey)

	progressionService := service.NewProgressionService(repo, loc)
	streakService := service.NewStreakService(repo, loc)
	profileService := service.NewProfileService(repo, streakService)
	questService := service.NewQuestService(repo, progressionService)
	chatService := service.NewChatService(repo, provider)

	router := api.NewRouter(
		api.NewProfileHandler(profileService),
		api.NewQuestHandler(questService),
		api.NewChatHandler(chatService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return &App{Config: cfg, DB: db, Server: server}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	if app.DB != nil {
		defer func() {
			if err := app.DB.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
