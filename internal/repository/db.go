package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"go_vocab_srs/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"               // postgresドライバ
	"gorm.io/driver/sqlite"                 // ローカル実行・テスト用
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB はURLに応じて postgres か sqlite に接続する。
// "postgres://", "postgresql://", "host=" で始まるものは postgres、それ以外は sqlite のDSNとして扱う。
func NewDB(databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	if appLogger == nil {
		appLogger = slog.Default()
	}

	// === slog を利用する GORM Logger の設定 ===
	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond), // 遅いクエリの閾値
	)

	dialector, driver := dialectorFor(databaseURL)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         slogGormLogger.LogMode(gormLogLevel),
		TranslateError: true, // 一意制約違反を gorm.ErrDuplicatedKey に変換
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err), slog.String("driver", driver))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	if driver == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// sqlite は書き込みを直列化する
		sqlDB.SetMaxOpenConns(1)
	}

	appLogger.Info("Database connection established with GORM", slog.String("driver", driver))
	return db, nil
}

func dialectorFor(databaseURL string) (gorm.Dialector, string) {
	lower := strings.ToLower(databaseURL)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") || strings.HasPrefix(lower, "host=") {
		return postgres.Open(databaseURL), "postgres"
	}
	return sqlite.Open(databaseURL), "sqlite"
}

// Migrate はアプリケーションのテーブルを作成・更新する
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Card{}, &model.ReviewState{}, &model.HistoryEntry{}, &model.KVEntry{}); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}
	return nil
}

// isDuplicateKeyError は一意制約違反かどうか (postgres の 23505 または GORM の変換済みエラー)
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
