package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go_vocab_srs/internal/config"
	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect database for service testing")
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// testClock は手動で進める時計
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.App.Timezone = "UTC"
	return cfg
}

type cardSpec struct {
	front, back, category string
	difficulty            int
}

func seedCards(t *testing.T, db *gorm.DB, specs ...cardSpec) []*model.Card {
	t.Helper()
	repo := repository.NewGormCardRepository()
	cards := make([]*model.Card, 0, len(specs))
	for _, sp := range specs {
		d := sp.difficulty
		if d == 0 {
			d = 1
		}
		category := sp.category
		if category == "" {
			category = "general"
		}
		c := &model.Card{CardID: uuid.New(), Front: sp.front, Back: sp.back, Category: category, Difficulty: d}
		require.NoError(t, repo.Create(context.Background(), db, c))
		cards = append(cards, c)
	}
	return cards
}

// numberedCards は表裏がすべて異なるカードを n 枚作る
func numberedCards(n int) []cardSpec {
	specs := make([]cardSpec, n)
	for i := range specs {
		specs[i] = cardSpec{front: fmt.Sprintf("front-%02d", i), back: fmt.Sprintf("back-%02d", i)}
	}
	return specs
}

func saveState(t *testing.T, db *gorm.DB, state model.ReviewState) {
	t.Helper()
	require.NoError(t, repository.NewGormReviewStateRepository().SaveReviewState(context.Background(), db, &state))
}

// testEnv は実リポジトリ (sqlite) で組み立てたサービス一式
type testEnv struct {
	db       *gorm.DB
	clock    *testClock
	cfg      *config.Config
	kv       repository.KVStore
	cards    repository.CardRepository
	states   repository.ReviewStateRepository
	history  repository.HistoryRepository
	progress ProgressService
	opts     []Option
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		db:      setupTestDB(t),
		clock:   newTestClock(),
		cfg:     testConfig(),
		kv:      repository.NewMemoryKVStore(),
		cards:   repository.NewGormCardRepository(),
		states:  repository.NewGormReviewStateRepository(),
		history: repository.NewGormHistoryRepository(),
	}
	env.opts = []Option{WithClock(env.clock.Now), WithRandom(NewRandomSource(42))}
	env.progress = NewProgressService(env.db, env.kv, env.cards, env.states, env.cfg, env.opts...)
	return env
}

func (e *testEnv) reviewService() ReviewService {
	return NewReviewService(e.db, e.cards, e.states, e.history, e.progress, e.cfg, e.opts...)
}

func (e *testEnv) quizService() *quizService {
	return NewQuizService(e.db, e.cards, e.states, e.history, e.progress, e.cfg, e.opts...).(*quizService)
}

func (e *testEnv) historyCount(t *testing.T, kind model.HistoryKind) int {
	t.Helper()
	entries, err := e.history.List(context.Background(), e.db, kind, 0)
	require.NoError(t, err)
	return len(entries)
}
