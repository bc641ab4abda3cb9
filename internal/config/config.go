// internal/config/config.go
package config

import (
	"errors"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AppConfig struct {
	ReviewLimit      int           `mapstructure:"review_limit"` // 1セッションの最大枚数
	QuizSize         int           `mapstructure:"quiz_size"`
	QuizTimeLimit    time.Duration `mapstructure:"quiz_time_limit"`
	RunRetention     time.Duration `mapstructure:"run_retention"`
	MasteryThreshold int           `mapstructure:"mastery_threshold"` // level がこれを超えたら習得済み
	DailyGoal        int           `mapstructure:"daily_goal"`
	Timezone         string        `mapstructure:"timezone"` // 日次リセットの基準
	StreakThreshold  int           `mapstructure:"streak_threshold"`
	ExamDate         string        `mapstructure:"exam_date"` // 2006-01-02。空なら残り日数を出さない
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	App      AppConfig      `mapstructure:"app"`
}

var Cfg Config

// RegisterFlags はコマンドラインフラグを定義する。値は LoadConfig で設定より優先される。
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "configs", "directory containing config.yaml")
	fs.String("database-url", "", "database URL (postgres://... or sqlite DSN)")
	fs.String("port", "", "listen address, e.g. :8080")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
}

// BindFlags はフラグを viper のキーに紐付ける
func BindFlags(fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"database.url": "database-url",
		"server.port":  "port",
		"log.level":    "log-level",
	}
	for key, name := range bindings {
		if f := fs.Lookup(name); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("database.url", DefaultDatabaseURL)
	viper.SetDefault("server.port", DefaultServerPort)
	viper.SetDefault("log.level", DefaultLogLevel)
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type", "X-Request-Id"})
	viper.SetDefault("cors.max_age", 300)
	viper.SetDefault("app.review_limit", DefaultAppReviewLimit)
	viper.SetDefault("app.quiz_size", DefaultQuizSize)
	viper.SetDefault("app.quiz_time_limit", DefaultQuizTimeLimit)
	viper.SetDefault("app.run_retention", DefaultRunRetention)
	viper.SetDefault("app.mastery_threshold", DefaultMasteryThreshold)
	viper.SetDefault("app.daily_goal", DefaultDailyGoal)
	viper.SetDefault("app.timezone", DefaultTimezone)
	viper.SetDefault("app.streak_threshold", DefaultStreakThreshold)
	viper.SetDefault("app.exam_date", "")
}

func LoadConfig(path string) error {
	// .env があれば環境変数に読み込む (既存の環境変数は上書きしない)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %s", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// APP_DATABASE_URL のように接頭辞をつけた環境変数で上書きできる
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}
	Cfg.normalize()

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Review Limit: %d, Quiz Size: %d, Mastery Threshold: %d", Cfg.App.ReviewLimit, Cfg.App.QuizSize, Cfg.App.MasteryThreshold)
	return nil
}

// normalize は不正な値をデフォルトに戻す
func (c *Config) normalize() {
	if c.Server.Port == "" {
		log.Println("Server port not set, using default ':8080'")
		c.Server.Port = DefaultServerPort
	}
	if c.Database.URL == "" {
		log.Println("Database URL not set, using local sqlite file")
		c.Database.URL = DefaultDatabaseURL
	}
	if c.App.ReviewLimit <= 0 {
		c.App.ReviewLimit = DefaultAppReviewLimit
	}
	if c.App.QuizSize <= 0 {
		c.App.QuizSize = DefaultQuizSize
	}
	if c.App.QuizTimeLimit < 0 {
		c.App.QuizTimeLimit = 0
	}
	if c.App.RunRetention <= 0 {
		c.App.RunRetention = DefaultRunRetention
	}
	if c.App.MasteryThreshold < 0 {
		c.App.MasteryThreshold = DefaultMasteryThreshold
	}
	if c.App.DailyGoal <= 0 {
		c.App.DailyGoal = DefaultDailyGoal
	}
	if c.App.StreakThreshold <= 0 {
		c.App.StreakThreshold = DefaultStreakThreshold
	}
	c.App.ExamDate = strings.TrimSpace(c.App.ExamDate)
	if c.App.ExamDate != "" {
		if _, err := time.Parse(ExamDateLayout, c.App.ExamDate); err != nil {
			log.Printf("Warning: invalid app.exam_date %q (want YYYY-MM-DD), countdown disabled", c.App.ExamDate)
			c.App.ExamDate = ""
		}
	}
}

// SlogLevel は log.level を slog.Level に変換する。未知の値は INFO と false を返す。
func (l LogConfig) SlogLevel() (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Location は日次リセットに使うタイムゾーン。読み込めない場合はローカル。
func (a AppConfig) Location() *time.Location {
	if a.Timezone == "" || strings.EqualFold(a.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time", a.Timezone)
		return time.Local
	}
	return loc
}

// ExamDay は試験日をタイムゾーン loc の0時として返す。未設定なら false。
func (a AppConfig) ExamDay(loc *time.Location) (time.Time, bool) {
	if a.ExamDate == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(ExamDateLayout, a.ExamDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Default はファイルを読まずにデフォルト値だけで作った設定 (テスト・シード用)
func Default() *Config {
	c := &Config{}
	c.App.MasteryThreshold = DefaultMasteryThreshold
	c.App.Timezone = DefaultTimezone
	c.normalize()
	return c
}
