// internal/model/session.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionState はレビューセッションの状態
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionBuilding
	SessionActive
	SessionCompleted
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionBuilding:
		return "building"
	case SessionActive:
		return "active"
	case SessionCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SessionState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = SessionIdle
	case "building":
		*s = SessionBuilding
	case "active":
		*s = SessionActive
	case "completed":
		*s = SessionCompleted
	default:
		return fmt.Errorf("unknown session state %q", text)
	}
	return nil
}

// SessionStats はセッション中の集計
type SessionStats struct {
	Reviewed  int       `json:"reviewed"`
	Correct   int       `json:"correct"`
	StartedAt time.Time `json:"started_at"`
}

// SessionSummary はセッション終了時の結果
type SessionSummary struct {
	Reviewed   int     `json:"reviewed"`
	Correct    int     `json:"correct"`
	Accuracy   float64 `json:"accuracy"` // 0..1
	DurationMs int64   `json:"duration_ms"`
	Abandoned  bool    `json:"abandoned"`
}

// NewSessionSummary は集計から結果を作る。件数0のとき正答率は0。
func NewSessionSummary(stats SessionStats, endedAt time.Time, abandoned bool) SessionSummary {
	sum := SessionSummary{
		Reviewed:   stats.Reviewed,
		Correct:    stats.Correct,
		DurationMs: endedAt.Sub(stats.StartedAt).Milliseconds(),
		Abandoned:  abandoned,
	}
	if stats.Reviewed > 0 {
		sum.Accuracy = float64(stats.Correct) / float64(stats.Reviewed)
	}
	return sum
}

// ReviewCardView は復習画面に表示するカード
type ReviewCardView struct {
	CardID     uuid.UUID `json:"card_id"`
	Front      string    `json:"front"`
	Back       string    `json:"back"` // 正解表示用に含める
	Category   string    `json:"category"`
	Difficulty int       `json:"difficulty"`
	Usage      string    `json:"usage,omitempty"`
	Level      int       `json:"level"`
}

func NewReviewCardView(c *Card) *ReviewCardView {
	if c == nil {
		return nil
	}
	return &ReviewCardView{
		CardID:     c.CardID,
		Front:      c.Front,
		Back:       c.Back,
		Category:   c.Category,
		Difficulty: c.Difficulty,
		Usage:      c.Usage,
		Level:      c.State().Level,
	}
}

// SessionView はセッションの現在の様子
type SessionView struct {
	SessionID   uuid.UUID       `json:"session_id"`
	State       SessionState    `json:"state"`
	Empty       bool            `json:"empty"`
	Remaining   int             `json:"remaining"`
	Stats       SessionStats    `json:"stats"`
	CurrentCard *ReviewCardView `json:"current_card"`
	Summary     *SessionSummary `json:"summary,omitempty"`
}

// RateOutcome は評価1回分の結果
type RateOutcome struct {
	Quality     int             `json:"quality"` // 丸め後の値
	Correct     bool            `json:"correct"`
	ReviewState ReviewState     `json:"review_state"`
	NextCard    *ReviewCardView `json:"next_card"`
	Remaining   int             `json:"remaining"`
	Summary     *SessionSummary `json:"summary,omitempty"`
	Warning     string          `json:"warning,omitempty"`
}

// セッション開始リクエストDTO
type StartSessionRequest struct {
	Category   string `json:"category" validate:"omitempty,max=64"`
	Difficulty *int   `json:"difficulty" validate:"omitempty,min=1,max=5"`
}

// 評価送信リクエストDTO (範囲外の値は丸める)
type RateCardRequest struct {
	Quality *int `json:"quality" validate:"required"`
}

// DueCountResponse は復習対象の件数
type DueCountResponse struct {
	Count int `json:"count"`
}

// CurrentCardResponse は現在のカード。完了済みなら current_card は null。
type CurrentCardResponse struct {
	CurrentCard *ReviewCardView `json:"current_card"`
}
