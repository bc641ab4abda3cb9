// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"
	"github.com/spf13/pflag"

	"go_vocab_srs/internal/config"
	"go_vocab_srs/internal/handlers"
	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/repository"
	"go_vocab_srs/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	fs := pflag.NewFlagSet(config.AppName, pflag.ExitOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		slog.Error("Error parsing flags", slog.Any("error", err))
		os.Exit(2)
	}
	if err := config.BindFlags(fs); err != nil {
		slog.Error("Error binding flags", slog.Any("error", err))
		os.Exit(2)
	}
	configDir, _ := fs.GetString("config")

	log.Println("Log Config Loading...")
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(tempLogger)
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("app", config.AppName))

	// Database (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()
	if err := repository.Migrate(db); err != nil {
		slog.Error("Error migrating database", slog.Any("error", err))
		os.Exit(1)
	}

	// Dependency Injection
	cfg := &config.Cfg
	cardRepo := repository.NewGormCardRepository()
	stateRepo := repository.NewGormReviewStateRepository()
	historyRepo := repository.NewGormHistoryRepository()
	kv := repository.NewGormKVStore(db)

	progressService := service.NewProgressService(db, kv, cardRepo, stateRepo, cfg)
	cardService := service.NewCardService(db, cardRepo)
	reviewService := service.NewReviewService(db, cardRepo, stateRepo, historyRepo, progressService, cfg)
	quizService := service.NewQuizService(db, cardRepo, stateRepo, historyRepo, progressService, cfg)
	examService := service.NewExamService(db, kv, historyRepo, cfg)
	phraseService := service.NewPhraseService(kv)
	historyService := service.NewHistoryService(db, historyRepo)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	r.Use(cors.New(corsOptions(config.Cfg.CORS)).Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	handlers.RegisterRoutes(r, handlers.Handlers{
		Card:     handlers.NewCardHandler(cardService, logger),
		Review:   handlers.NewReviewHandler(reviewService, logger),
		Quiz:     handlers.NewQuizHandler(quizService, logger),
		Progress: handlers.NewProgressHandler(progressService, logger),
		Exam:     handlers.NewExamHandler(examService, logger),
		History:  handlers.NewHistoryHandler(historyService, logger),
		Phrase:   handlers.NewPhraseHandler(phraseService, logger),
	})
	r.Get("/health", handlers.HealthHandler(sqlDB.PingContext, logger))

	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// newLogger は APP_ENV=dev なら tint、それ以外は JSON ハンドラを使う
func newLogger(tempLogger *slog.Logger) *slog.Logger {
	level, ok := config.Cfg.Log.SlogLevel()
	if !ok {
		tempLogger.Warn("Unknown log level in config, falling back to INFO", slog.String("level", config.Cfg.Log.Level))
	}
	logLevel := new(slog.LevelVar)
	logLevel.Set(level)

	appEnv := os.Getenv("APP_ENV")
	if strings.EqualFold(appEnv, "dev") {
		tempLogger.Info("Using tint log handler", slog.String("APP_ENV", appEnv))
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}))
	}
	tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	}))
}

func corsOptions(c config.CORSConfig) cors.Options {
	return cors.Options{
		AllowedOrigins:   c.AllowedOrigins,
		AllowedMethods:   c.AllowedMethods,
		AllowedHeaders:   c.AllowedHeaders,
		ExposedHeaders:   c.ExposedHeaders,
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
	}
}
