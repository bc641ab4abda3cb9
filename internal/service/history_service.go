//go:generate mockery --name HistoryService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"

	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/repository"

	"gorm.io/gorm"
)

const defaultHistoryLimit = 20

type HistoryService interface {
	List(ctx context.Context, kind model.HistoryKind, limit int) ([]*model.HistoryEntry, error)
}

type historyService struct {
	db          *gorm.DB
	historyRepo repository.HistoryRepository
}

func NewHistoryService(db *gorm.DB, historyRepo repository.HistoryRepository) HistoryService {
	return &historyService{db: db, historyRepo: historyRepo}
}

func (s *historyService) List(ctx context.Context, kind model.HistoryKind, limit int) ([]*model.HistoryEntry, error) {
	switch kind {
	case "", model.HistoryReview, model.HistoryQuiz, model.HistoryExam:
	default:
		return nil, model.NewAppError("VALIDATION_ERROR", "履歴の種類が正しくありません。", "kind", model.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	entries, err := s.historyRepo.List(ctx, s.db, kind, limit)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing history", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "履歴の取得に失敗しました。", "", err)
	}
	return entries, nil
}
