// internal/model/history.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type HistoryKind string

const (
	HistoryReview HistoryKind = "review"
	HistoryQuiz   HistoryKind = "quiz"
	HistoryExam   HistoryKind = "exam"
)

// HistoryEntry はレビュー・クイズ・模擬試験の実施履歴
type HistoryEntry struct {
	HistoryID  uuid.UUID   `gorm:"type:uuid;primaryKey" json:"history_id"`
	Kind       HistoryKind `gorm:"not null;index" json:"kind"`
	Score      int         `json:"score"`
	Total      int         `json:"total"`
	DurationMs int64       `json:"duration_ms"`
	WordCount  int         `json:"word_count,omitempty"`
	TimeUp     bool        `json:"time_up,omitempty"`
	Detail     string      `json:"detail,omitempty"`
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`
}

func (HistoryEntry) TableName() string {
	return "history_entries"
}
