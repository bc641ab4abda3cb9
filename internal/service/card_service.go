//go:generate mockery --name CardService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"strings"

	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardService interface {
	CreateCard(ctx context.Context, req *model.CreateCardRequest) (*model.Card, error)
	GetCard(ctx context.Context, cardID uuid.UUID) (*model.Card, error)
	ListCards(ctx context.Context, filter model.CardFilter) ([]*model.Card, error)
	DeleteCard(ctx context.Context, cardID uuid.UUID) error
	ImportCards(ctx context.Context, reqs []model.CreateCardRequest) (*model.ImportResult, error)
}

type cardService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	cardRepo repository.CardRepository
}

func NewCardService(db *gorm.DB, cardRepo repository.CardRepository) CardService {
	return &cardService{
		db:       db,
		cardRepo: cardRepo,
	}
}

func newCard(req *model.CreateCardRequest) *model.Card {
	difficulty := req.Difficulty
	if difficulty <= 0 {
		difficulty = 1
	}
	return &model.Card{
		CardID:     uuid.New(),
		Front:      strings.TrimSpace(req.Front),
		Back:       strings.TrimSpace(req.Back),
		Category:   strings.TrimSpace(req.Category),
		Difficulty: difficulty,
		Usage:      strings.TrimSpace(req.Usage),
	}
}

func (s *cardService) CreateCard(ctx context.Context, req *model.CreateCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	if strings.TrimSpace(req.Front) == "" || strings.TrimSpace(req.Back) == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "表面と裏面は必須項目です。", "front", model.ErrInvalidInput)
	}

	var created *model.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 重複チェック
		exists, err := s.cardRepo.CheckFrontExists(ctx, tx, strings.TrimSpace(req.Front))
		if err != nil {
			return err
		}
		if exists {
			return model.ErrConflict
		}

		// 2. カードを作成 (レビュー状態は最初の評価時に作られる)
		card := newCard(req)
		if err := s.cardRepo.Create(ctx, tx, card); err != nil {
			return err
		}
		created = card
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			logger.Warn("Card front already exists", "front", req.Front)
			return nil, model.NewAppError("CONFLICT", "同じ表面のカードが既に存在します。", "front", model.ErrConflict)
		}
		logger.Error("Transaction failed for CreateCard", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの作成に失敗しました。", "", err)
	}

	logger.Info("Card created", "card_id", created.CardID)
	return created, nil
}

func (s *cardService) GetCard(ctx context.Context, cardID uuid.UUID) (*model.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, s.db, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", err)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", err)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, filter model.CardFilter) ([]*model.Card, error) {
	cards, err := s.cardRepo.GetAllCards(ctx, s.db, filter)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード一覧の取得に失敗しました。", "", err)
	}
	return cards, nil
}

func (s *cardService) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.cardRepo.Delete(ctx, tx, cardID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "削除対象のカードが見つかりません。", "card_id", err)
		}
		middleware.GetLogger(ctx).Error("Error deleting card", "error", err, "card_id", cardID)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの削除に失敗しました。", "", err)
	}
	return nil
}

// ImportCards は1トランザクションでまとめて登録する。既存の表面はスキップする。
func (s *cardService) ImportCards(ctx context.Context, reqs []model.CreateCardRequest) (*model.ImportResult, error) {
	logger := middleware.GetLogger(ctx)
	result := &model.ImportResult{Skipped: []string{}}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]struct{}, len(reqs))
		for i := range reqs {
			req := &reqs[i]
			front := strings.TrimSpace(req.Front)
			if front == "" || strings.TrimSpace(req.Back) == "" {
				return model.NewAppError("VALIDATION_ERROR", "表面と裏面は必須項目です。", "cards", model.ErrInvalidInput)
			}
			if _, dup := seen[front]; dup {
				result.Skipped = append(result.Skipped, front)
				continue
			}
			seen[front] = struct{}{}

			exists, err := s.cardRepo.CheckFrontExists(ctx, tx, front)
			if err != nil {
				return err
			}
			if exists {
				result.Skipped = append(result.Skipped, front)
				continue
			}
			if err := s.cardRepo.Create(ctx, tx, newCard(req)); err != nil {
				return err
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		logger.Error("Transaction failed for ImportCards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの一括登録に失敗しました。", "", err)
	}

	logger.Info("Cards imported", "created", result.Created, "skipped", len(result.Skipped))
	return result, nil
}
