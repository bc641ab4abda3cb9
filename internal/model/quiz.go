// internal/model/quiz.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizQuestion は4択問題1問分
type QuizQuestion struct {
	Index         int       `json:"index"`
	Prompt        string    `json:"prompt"`
	CorrectAnswer string    `json:"-"`
	Distractors   []string  `json:"-"`
	Options       []string  `json:"options"`
	SourceCard    *Card     `json:"-"`
	StartedAt     time.Time `json:"-"`
	Degraded      bool      `json:"degraded"` // 誤答候補が3つ未満
}

// Answer は1問分の回答
type Answer struct {
	QuestionIndex int       `json:"question_index"`
	CardID        uuid.UUID `json:"card_id"`
	Prompt        string    `json:"prompt"`
	Selected      string    `json:"selected"`
	CorrectAnswer string    `json:"correct_answer"`
	Correct       bool      `json:"correct"`
	ElapsedMs     int64     `json:"elapsed_ms"`
}

// QuizView はクイズの現在の問題
type QuizView struct {
	QuizID    uuid.UUID     `json:"quiz_id"`
	Empty     bool          `json:"empty"`
	Total     int           `json:"total"`
	Answered  int           `json:"answered"`
	Score     int           `json:"score"`
	Complete  bool          `json:"complete"`
	Question  *QuizQuestion `json:"question"`
	Remaining *int64        `json:"remaining_seconds,omitempty"` // 制限時間ありの場合のみ
}

// AnswerOutcome は回答1回分の結果
type AnswerOutcome struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Usage         string `json:"usage,omitempty"`
	Score         int    `json:"score"`
	IsComplete    bool   `json:"is_complete"`
	Warning       string `json:"warning,omitempty"`
}

// QuizResult はクイズの結果
type QuizResult struct {
	QuizID           uuid.UUID `json:"quiz_id"`
	Score            int       `json:"score"`
	Total            int       `json:"total"`
	Answered         int       `json:"answered"`
	Accuracy         float64   `json:"accuracy"` // 0..1
	DurationMs       int64     `json:"duration_ms"`
	AverageElapsedMs int64     `json:"average_elapsed_ms"`
	Complete         bool      `json:"complete"`
	Expired          bool      `json:"expired"`
	Answers          []Answer  `json:"answers"`
	Mistakes         []Answer  `json:"mistakes"`
}

// クイズ開始リクエストDTO
type StartQuizRequest struct {
	Category   string `json:"category" validate:"omitempty,max=64"`
	Difficulty *int   `json:"difficulty" validate:"omitempty,min=1,max=5"`
	Size       int    `json:"size" validate:"omitempty,min=1,max=50"`
}

// 回答送信リクエストDTO
type SubmitAnswerRequest struct {
	Selected string `json:"selected" validate:"required"`
}

// NoMistakesResponse は復習する間違いがなかったことを示す
type NoMistakesResponse struct {
	NoMistakes bool `json:"no_mistakes"`
}
