// internal/model/progress.go
package model

import "strings"

// ProgressSnapshot は学習進捗の読み取り専用コピー
type ProgressSnapshot struct {
	TotalReviewed    int               `json:"total_reviewed"`
	CurrentStreak    int               `json:"current_streak"`
	BestStreak       int               `json:"best_streak"`
	MasteredCount    int64             `json:"mastered_count"`
	TotalCards       int64             `json:"total_cards"`
	DailyProgress    int               `json:"daily_progress"`
	DailyGoal        int               `json:"daily_goal"`
	LastStudyDate    string            `json:"last_study_date"` // 2006-01-02 (ローカル日付)
	MasteryThreshold int               `json:"mastery_threshold"`
	WeeklyProgress   []WeekdayProgress `json:"weekly_progress"` // 日曜始まりの7日分
	StreakThreshold  int               `json:"streak_threshold"`
	ExamDate         string            `json:"exam_date,omitempty"`
	DaysUntilExam    *int              `json:"days_until_exam"` // 試験日未設定なら null
	LastFilter       SavedFilter       `json:"last_filter"`
}

// WeekdayStatus は週間トラッカーの各日の状態
type WeekdayStatus string

const (
	WeekdayCompleted WeekdayStatus = "completed" // 過去の日で目標件数に到達
	WeekdayMissed    WeekdayStatus = "missed"
	WeekdayCurrent   WeekdayStatus = "current"
	WeekdayUpcoming  WeekdayStatus = "upcoming"
)

type WeekdayProgress struct {
	Date   string        `json:"date"`
	Count  int           `json:"count"`
	Status WeekdayStatus `json:"status"`
}

// ProgressCounters はKVストアに保存する累積値
type ProgressCounters struct {
	TotalReviewed  int    `json:"total_reviewed"`
	CurrentStreak  int    `json:"current_streak"`
	BestStreak     int    `json:"best_streak"`
	DailyProgress  int    `json:"daily_progress"`
	LastStudyDate  string `json:"last_study_date"`
	WeekStart      string `json:"week_start"` // 週の日曜日のローカル日付
	WeeklyProgress [7]int `json:"weekly_progress"`
}

// SavedFilter は前回使った絞り込み条件。次回の訪問でも同じ条件を使えるように保存する。
type SavedFilter struct {
	Category   string `json:"category"`
	Difficulty *int   `json:"difficulty"` // null は全難易度
}

func NewSavedFilter(f CardFilter) SavedFilter {
	category := strings.TrimSpace(f.Category)
	if f.AllCategories() {
		category = FilterAll
	}
	saved := SavedFilter{Category: category}
	if f.Difficulty != nil {
		d := *f.Difficulty
		saved.Difficulty = &d
	}
	return saved
}

func (f SavedFilter) CardFilter() CardFilter {
	return CardFilter{Category: f.Category, Difficulty: f.Difficulty}
}

// 絞り込み条件の保存リクエストDTO
type SaveFilterRequest struct {
	Category   string `json:"category" validate:"omitempty,max=64"`
	Difficulty *int   `json:"difficulty" validate:"omitempty,min=1,max=5"`
}
