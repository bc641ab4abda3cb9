// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "vocab-srs"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultDatabaseURL      = "file:vocab_srs.db?_foreign_keys=on"
	DefaultLogLevel         = "info"
	DefaultAppReviewLimit   = 100
	DefaultQuizSize         = 10
	DefaultQuizTimeLimit    = time.Duration(0) // 0 は制限なし
	DefaultRunRetention     = 2 * time.Hour
	DefaultMasteryThreshold = 5
	DefaultDailyGoal        = 50
	DefaultTimezone         = "Local"
	DefaultStreakThreshold  = 50 // 週間トラッカーで「達成」とみなす1日の件数
)

// ExamDateLayout は app.exam_date の書式
const ExamDateLayout = "2006-01-02"

// KVストアのキー
const (
	ProgressKey     = "progress"
	FiltersKey      = "filters"
	PhraseDraftKey  = "phrases-draft"
	ExamDraftPrefix = "exam-"
)
