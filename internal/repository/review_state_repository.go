//go:generate mockery --name ReviewStateRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewStateRepository interface {
	GetReviewState(ctx context.Context, db *gorm.DB, cardID uuid.UUID) (model.ReviewState, error) // 未作成なら初期状態
	SaveReviewState(ctx context.Context, tx *gorm.DB, state *model.ReviewState) error
	CountDue(ctx context.Context, db *gorm.DB, filter model.CardFilter, now time.Time) (int64, error)
	CountMastered(ctx context.Context, db *gorm.DB, threshold int) (int64, error)
}

type gormReviewStateRepository struct{}

func NewGormReviewStateRepository() ReviewStateRepository {
	return &gormReviewStateRepository{}
}

func (r *gormReviewStateRepository) GetReviewState(ctx context.Context, db *gorm.DB, cardID uuid.UUID) (model.ReviewState, error) {
	var state model.ReviewState
	result := db.WithContext(ctx).Where("card_id = ?", cardID).First(&state)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.DefaultReviewState(cardID), nil
		}
		middleware.GetLogger(ctx).Error("Error finding review state in DB",
			"error", result.Error,
			"card_id", cardID.String(),
		)
		return model.ReviewState{}, fmt.Errorf("gormReviewStateRepository.GetReviewState: %w", result.Error)
	}
	return state, nil
}

// SaveReviewState は card_id をキーに upsert する
func (r *gormReviewStateRepository) SaveReviewState(ctx context.Context, tx *gorm.DB, state *model.ReviewState) error {
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"repetitions", "level", "last_reviewed_at", "next_due_at", "updated_at"}),
	}).Create(state)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error saving review state in DB",
			"error", result.Error,
			"card_id", state.CardID.String(),
		)
		return fmt.Errorf("gormReviewStateRepository.SaveReviewState: %w", result.Error)
	}
	return nil
}

// CountDue は復習期限が来ているカード (未復習を含む) を数える
func (r *gormReviewStateRepository) CountDue(ctx context.Context, db *gorm.DB, filter model.CardFilter, now time.Time) (int64, error) {
	var count int64
	query := db.WithContext(ctx).Model(&model.Card{}).
		Joins("LEFT JOIN review_states ON review_states.card_id = cards.card_id").
		Where("(review_states.next_due_at IS NULL OR review_states.next_due_at <= ?)", now)
	if err := applyCardFilter(query, filter).Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error counting due cards in DB", "error", err)
		return 0, fmt.Errorf("gormReviewStateRepository.CountDue: %w", err)
	}
	return count, nil
}

// CountMastered はレベルが閾値を超えたカードを数える (論理削除済みは除く)
func (r *gormReviewStateRepository) CountMastered(ctx context.Context, db *gorm.DB, threshold int) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Card{}).
		Joins("JOIN review_states ON review_states.card_id = cards.card_id").
		Where("review_states.level > ?", threshold).
		Count(&count).Error
	if err != nil {
		middleware.GetLogger(ctx).Error("Error counting mastered cards in DB", "error", err)
		return 0, fmt.Errorf("gormReviewStateRepository.CountMastered: %w", err)
	}
	return count, nil
}
