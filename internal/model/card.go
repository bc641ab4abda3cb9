// internal/model/card.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FilterAll はカテゴリ・難易度の「すべて」を表す
const FilterAll = "all"

// Card は表(問題)と裏(答え)の組を表します
type Card struct {
	CardID     uuid.UUID      `gorm:"type:uuid;primaryKey" json:"card_id"`
	Front      string         `gorm:"not null;uniqueIndex" json:"front"`
	Back       string         `gorm:"not null" json:"back"`
	Category   string         `gorm:"not null;index" json:"category"`
	Difficulty int            `gorm:"not null;default:1;index" json:"difficulty"`
	Usage      string         `json:"usage,omitempty"` // 例文
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	ReviewState *ReviewState `gorm:"foreignKey:CardID;references:CardID" json:"review_state,omitempty"`
}

func (Card) TableName() string {
	return "cards"
}

// State はレビュー状態を返す。未作成の場合は初期状態(即復習対象)。
func (c *Card) State() ReviewState {
	if c.ReviewState == nil {
		return DefaultReviewState(c.CardID)
	}
	return *c.ReviewState
}

// ReviewState はカードごとの間隔反復の状態を表します
type ReviewState struct {
	CardID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"card_id"`
	Repetitions    int        `gorm:"not null;default:0" json:"repetitions"`
	Level          int        `gorm:"not null;default:0;index" json:"level"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	NextDueAt      *time.Time `gorm:"index" json:"next_due_at"`
	UpdatedAt      time.Time  `json:"-"`
}

func (ReviewState) TableName() string {
	return "review_states"
}

func DefaultReviewState(cardID uuid.UUID) ReviewState {
	return ReviewState{CardID: cardID}
}

// IsDue は復習期限が来ているか。一度も復習していないカードは常に対象。
func (s ReviewState) IsDue(now time.Time) bool {
	return s.NextDueAt == nil || !s.NextDueAt.After(now)
}

// CardFilter はカテゴリと難易度による絞り込み条件
type CardFilter struct {
	Category   string // "" または "all" で全件
	Difficulty *int   // nil で全件
}

func (f CardFilter) AllCategories() bool {
	c := strings.TrimSpace(f.Category)
	return c == "" || strings.EqualFold(c, FilterAll)
}

// Matches はメモリ上での絞り込みに使う
func (f CardFilter) Matches(c *Card) bool {
	if !f.AllCategories() && c.Category != strings.TrimSpace(f.Category) {
		return false
	}
	if f.Difficulty != nil && c.Difficulty != *f.Difficulty {
		return false
	}
	return true
}

// カード作成リクエストDTO
type CreateCardRequest struct {
	Front      string `json:"front" validate:"required,max=255"`
	Back       string `json:"back" validate:"required,max=255"`
	Category   string `json:"category" validate:"required,max=64"`
	Difficulty int    `json:"difficulty" validate:"omitempty,min=1,max=5"`
	Usage      string `json:"usage" validate:"omitempty,max=1000"`
}

// カード一括登録リクエストDTO
type ImportCardsRequest struct {
	Cards []CreateCardRequest `json:"cards" validate:"required,min=1,dive"`
}

// ImportResult は一括登録の結果
type ImportResult struct {
	Created int      `json:"created"`
	Skipped []string `json:"skipped"` // 既に存在していた表面
}
