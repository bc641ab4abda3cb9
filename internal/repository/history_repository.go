//go:generate mockery --name HistoryRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistoryRepository interface {
	Append(ctx context.Context, db *gorm.DB, entry *model.HistoryEntry) error
	List(ctx context.Context, db *gorm.DB, kind model.HistoryKind, limit int) ([]*model.HistoryEntry, error) // 新しい順
}

type gormHistoryRepository struct{}

func NewGormHistoryRepository() HistoryRepository {
	return &gormHistoryRepository{}
}

func (r *gormHistoryRepository) Append(ctx context.Context, db *gorm.DB, entry *model.HistoryEntry) error {
	if entry.HistoryID == uuid.Nil {
		entry.HistoryID = uuid.New()
	}
	if err := db.WithContext(ctx).Create(entry).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error appending history entry in DB",
			"error", err,
			"kind", string(entry.Kind),
		)
		return fmt.Errorf("gormHistoryRepository.Append: %w", err)
	}
	return nil
}

func (r *gormHistoryRepository) List(ctx context.Context, db *gorm.DB, kind model.HistoryKind, limit int) ([]*model.HistoryEntry, error) {
	var entries []*model.HistoryEntry
	query := db.WithContext(ctx).Order("created_at DESC")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error listing history entries in DB",
			"error", err,
			"kind", string(kind),
		)
		return nil, fmt.Errorf("gormHistoryRepository.List: %w", err)
	}
	return entries, nil
}
