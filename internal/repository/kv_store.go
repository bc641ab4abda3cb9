//go:generate mockery --name KVStore --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore は進捗カウンタや下書きを保存する単純なキーバリューストア
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// Iterate はprefixに一致するキーをキー順に渡す。fnがエラーを返すと中断する。
	Iterate(ctx context.Context, prefix string, fn func(key, value string) error) error
}

type gormKVStore struct {
	db *gorm.DB
}

func NewGormKVStore(db *gorm.DB) KVStore {
	return &gormKVStore{db: db}
}

func (s *gormKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry model.KVEntry
	result := s.db.WithContext(ctx).Where("key = ?", key).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		middleware.GetLogger(ctx).Error("Error reading kv entry in DB", "error", result.Error, "key", key)
		return "", false, fmt.Errorf("gormKVStore.Get: %w", result.Error)
	}
	return entry.Value, true, nil
}

func (s *gormKVStore) Set(ctx context.Context, key, value string) error {
	entry := model.KVEntry{Key: key, Value: value}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error writing kv entry in DB", "error", result.Error, "key", key)
		return fmt.Errorf("gormKVStore.Set: %w", result.Error)
	}
	return nil
}

func (s *gormKVStore) Iterate(ctx context.Context, prefix string, fn func(key, value string) error) error {
	var entries []model.KVEntry
	query := s.db.WithContext(ctx).Order("key ASC")
	if prefix != "" {
		query = query.Where("key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%")
	}
	if err := query.Find(&entries).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error iterating kv entries in DB", "error", err, "prefix", prefix)
		return fmt.Errorf("gormKVStore.Iterate: %w", err)
	}
	for _, e := range entries {
		// LIKE の大文字小文字の扱いはDBごとに異なるため再確認する
		if !strings.HasPrefix(e.Key, prefix) {
			continue
		}
		if err := fn(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// memoryKVStore はテスト用のインメモリ実装
type memoryKVStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryKVStore() KVStore {
	return &memoryKVStore{entries: make(map[string]string)}
}

func (s *memoryKVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *memoryKVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *memoryKVStore) Iterate(_ context.Context, prefix string, fn func(key, value string) error) error {
	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	snapshot := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
			snapshot[k] = v
		}
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		if err := fn(k, snapshot[k]); err != nil {
			return err
		}
	}
	return nil
}
