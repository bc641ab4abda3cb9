//go:generate mockery --name CardRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository interface {
	Create(ctx context.Context, tx *gorm.DB, card *model.Card) error
	FindByID(ctx context.Context, db *gorm.DB, cardID uuid.UUID) (*model.Card, error)
	GetAllCards(ctx context.Context, db *gorm.DB, filter model.CardFilter) ([]*model.Card, error) // ReviewStateはPreloadする
	Delete(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) error
	CheckFrontExists(ctx context.Context, db *gorm.DB, front string) (bool, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}

type gormCardRepository struct{}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

func (r *gormCardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(card)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			logger.Warn("Duplicate key error on create card",
				"error", result.Error,
				"front", card.Front,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating card in DB",
			"error", result.Error,
			"front", card.Front,
		)
		return fmt.Errorf("gormCardRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, cardID uuid.UUID) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card
	result := db.WithContext(ctx).Preload("ReviewState").Where("card_id = ?", cardID).First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card by ID in DB",
			"error", result.Error,
			"card_id", cardID.String(),
		)
		return nil, fmt.Errorf("gormCardRepository.FindByID: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) GetAllCards(ctx context.Context, db *gorm.DB, filter model.CardFilter) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card
	query := applyCardFilter(db.WithContext(ctx).Preload("ReviewState"), filter)
	result := query.Order("cards.created_at ASC, cards.front ASC").Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding cards in DB",
			"error", result.Error,
			"category", filter.Category,
		)
		return nil, fmt.Errorf("gormCardRepository.GetAllCards: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) Delete(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	// 論理削除。review_states の行は残す。
	result := tx.WithContext(ctx).Where("card_id = ?", cardID).Delete(&model.Card{})
	if result.Error != nil {
		logger.Error("Error deleting card in DB",
			"error", result.Error,
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormCardRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCardRepository) CheckFrontExists(ctx context.Context, db *gorm.DB, front string) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	// 論理削除済みも一意制約に含まれるため Unscoped で数える
	result := db.WithContext(ctx).Unscoped().Model(&model.Card{}).Where("front = ?", front).Count(&count)
	if result.Error != nil {
		logger.Error("Error checking front existence in DB",
			"error", result.Error,
			"front", front,
		)
		return false, fmt.Errorf("gormCardRepository.CheckFrontExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormCardRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Card{}).Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error counting cards in DB", "error", err)
		return 0, fmt.Errorf("gormCardRepository.Count: %w", err)
	}
	return count, nil
}

// applyCardFilter はカテゴリ・難易度の条件を付ける ("all" は条件なし)
func applyCardFilter(query *gorm.DB, filter model.CardFilter) *gorm.DB {
	if !filter.AllCategories() {
		query = query.Where("cards.category = ?", strings.TrimSpace(filter.Category))
	}
	if filter.Difficulty != nil {
		query = query.Where("cards.difficulty = ?", *filter.Difficulty)
	}
	return query
}
