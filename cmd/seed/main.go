// cmd/seed/main.go
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"go_vocab_srs/internal/config"
	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/repository"
	"go_vocab_srs/internal/seed"
	"go_vocab_srs/internal/service"
)

// YAML の単語帳をデータベースへ取り込む。既に登録済みの表面はスキップされる。
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	fs := pflag.NewFlagSet("seed", pflag.ExitOnError)
	config.RegisterFlags(fs)
	file := fs.StringP("file", "f", "configs/vocabulary.yaml", "deck file to import")
	if err := fs.Parse(os.Args[1:]); err != nil {
		logger.Error("Error parsing flags", slog.Any("error", err))
		os.Exit(2)
	}
	if err := config.BindFlags(fs); err != nil {
		logger.Error("Error binding flags", slog.Any("error", err))
		os.Exit(2)
	}
	configDir, _ := fs.GetString("config")
	if err := config.LoadConfig(configDir); err != nil {
		logger.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	reqs, err := seed.LoadFile(*file)
	if err != nil {
		logger.Error("Error reading deck file", slog.String("file", *file), slog.Any("error", err))
		os.Exit(1)
	}

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		logger.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := repository.Migrate(db); err != nil {
		logger.Error("Error migrating database", slog.Any("error", err))
		os.Exit(1)
	}

	cardService := service.NewCardService(db, repository.NewGormCardRepository())
	ctx := middleware.WithLogger(context.Background(), logger)
	result, err := cardService.ImportCards(ctx, reqs)
	if err != nil {
		logger.Error("Import failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Seed completed", slog.String("file", *file), slog.Int("created", result.Created), slog.Int("skipped", len(result.Skipped)))
}
