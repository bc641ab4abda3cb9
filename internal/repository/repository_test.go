package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go_vocab_srs/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	// テストごとに別のインメモリDBを使う
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect database for repository testing")
	require.NoError(t, Migrate(db), "failed to migrate database for repository testing")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// RepositorySuite は sqlite と postgres の両方で同じテストを流すためのスイート
type RepositorySuite struct {
	suite.Suite
	newDB   func(t testing.TB) *gorm.DB
	db      *gorm.DB
	ctx     context.Context
	cards   CardRepository
	states  ReviewStateRepository
	history HistoryRepository
	now     time.Time
}

func (s *RepositorySuite) SetupTest() {
	s.db = s.newDB(s.T())
	s.ctx = context.Background()
	s.cards = NewGormCardRepository()
	s.states = NewGormReviewStateRepository()
	s.history = NewGormHistoryRepository()
	s.now = time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
}

func TestRepositorySuite_SQLite(t *testing.T) {
	suite.Run(t, &RepositorySuite{newDB: setupTestDB})
}

func (s *RepositorySuite) createCard(front, back, category string, difficulty int) *model.Card {
	card := &model.Card{
		CardID:     uuid.New(),
		Front:      front,
		Back:       back,
		Category:   category,
		Difficulty: difficulty,
	}
	s.Require().NoError(s.cards.Create(s.ctx, s.db, card))
	return card
}

func (s *RepositorySuite) TestCreateAndFindByID() {
	card := s.createCard("to carry out", "effectuer, réaliser", "business", 2)

	found, err := s.cards.FindByID(s.ctx, s.db, card.CardID)
	s.Require().NoError(err)
	s.Equal("to carry out", found.Front)
	s.Equal("effectuer, réaliser", found.Back)
	s.Nil(found.ReviewState, "未復習のカードにレビュー状態はない")
	s.Equal(model.DefaultReviewState(card.CardID), found.State())

	_, err = s.cards.FindByID(s.ctx, s.db, uuid.New())
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *RepositorySuite) TestCreate_DuplicateFront() {
	s.createCard("to point out", "souligner", "general", 1)

	dup := &model.Card{CardID: uuid.New(), Front: "to point out", Back: "indiquer", Category: "general", Difficulty: 1}
	err := s.cards.Create(s.ctx, s.db, dup)
	s.ErrorIs(err, model.ErrConflict)

	exists, err := s.cards.CheckFrontExists(s.ctx, s.db, "to point out")
	s.Require().NoError(err)
	s.True(exists)
	exists, err = s.cards.CheckFrontExists(s.ctx, s.db, "to set up")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *RepositorySuite) TestGetAllCards_Filter() {
	a := s.createCard("to carry out", "effectuer", "business", 2)
	s.createCard("to point out", "souligner", "general", 1)
	s.createCard("nevertheless", "néanmoins", "general", 2)

	due := s.now.AddDate(0, 0, 2)
	s.Require().NoError(s.states.SaveReviewState(s.ctx, s.db, &model.ReviewState{CardID: a.CardID, Repetitions: 1, Level: 1, LastReviewedAt: &s.now, NextDueAt: &due}))

	two := 2
	tests := []struct {
		name   string
		filter model.CardFilter
		want   int
	}{
		{name: "正常系: 全件", filter: model.CardFilter{}, want: 3},
		{name: "正常系: all指定", filter: model.CardFilter{Category: "all"}, want: 3},
		{name: "正常系: カテゴリ", filter: model.CardFilter{Category: "general"}, want: 2},
		{name: "正常系: 難易度", filter: model.CardFilter{Difficulty: &two}, want: 2},
		{name: "正常系: カテゴリと難易度", filter: model.CardFilter{Category: "general", Difficulty: &two}, want: 1},
		{name: "正常系: 該当なし", filter: model.CardFilter{Category: "unknown"}, want: 0},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			cards, err := s.cards.GetAllCards(s.ctx, s.db, tt.filter)
			s.Require().NoError(err)
			s.Len(cards, tt.want)
			for _, c := range cards {
				s.True(tt.filter.Matches(c))
			}
		})
	}

	cards, err := s.cards.GetAllCards(s.ctx, s.db, model.CardFilter{Category: "business"})
	s.Require().NoError(err)
	s.Require().Len(cards, 1)
	s.Require().NotNil(cards[0].ReviewState, "ReviewStateがPreloadされる")
	s.Equal(1, cards[0].ReviewState.Level)
}

func (s *RepositorySuite) TestDelete_KeepsReviewState() {
	card := s.createCard("to carry out", "effectuer", "business", 2)
	s.Require().NoError(s.states.SaveReviewState(s.ctx, s.db, &model.ReviewState{CardID: card.CardID, Repetitions: 3, Level: 3}))

	s.Require().NoError(s.cards.Delete(s.ctx, s.db, card.CardID))
	_, err := s.cards.FindByID(s.ctx, s.db, card.CardID)
	s.ErrorIs(err, model.ErrNotFound)
	s.ErrorIs(s.cards.Delete(s.ctx, s.db, card.CardID), model.ErrNotFound)

	state, err := s.states.GetReviewState(s.ctx, s.db, card.CardID)
	s.Require().NoError(err)
	s.Equal(3, state.Level, "レビュー状態は削除されない")

	count, err := s.cards.Count(s.ctx, s.db)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *RepositorySuite) TestReviewState_DefaultAndUpsert() {
	card := s.createCard("however", "cependant", "general", 1)

	state, err := s.states.GetReviewState(s.ctx, s.db, card.CardID)
	s.Require().NoError(err)
	s.Equal(model.DefaultReviewState(card.CardID), state)

	due := s.now.AddDate(0, 0, 3)
	s.Require().NoError(s.states.SaveReviewState(s.ctx, s.db, &model.ReviewState{CardID: card.CardID, Repetitions: 1, Level: 1, LastReviewedAt: &s.now, NextDueAt: &due}))

	due2 := s.now.AddDate(0, 0, 1)
	s.Require().NoError(s.states.SaveReviewState(s.ctx, s.db, &model.ReviewState{CardID: card.CardID, Repetitions: 0, Level: 0, LastReviewedAt: &s.now, NextDueAt: &due2}))

	state, err = s.states.GetReviewState(s.ctx, s.db, card.CardID)
	s.Require().NoError(err)
	s.Equal(0, state.Level)
	s.Equal(0, state.Repetitions)
	s.Require().NotNil(state.NextDueAt)
	s.True(state.NextDueAt.Equal(due2))

	var rows int64
	s.Require().NoError(s.db.Model(&model.ReviewState{}).Count(&rows).Error)
	s.Equal(int64(1), rows, "upsertなので1行のまま")
}

func (s *RepositorySuite) TestCountDueAndMastered() {
	fresh := s.createCard("fresh", "neuf", "general", 1)
	past := s.createCard("past", "passé", "general", 1)
	future := s.createCard("future", "futur", "business", 1)
	_ = fresh

	yesterday := s.now.AddDate(0, 0, -1)
	tomorrow := s.now.AddDate(0, 0, 1)
	s.Require().NoError(s.states.SaveReviewState(s.ctx, s.db, &model.ReviewState{CardID: past.CardID, Repetitions: 6, Level: 6, NextDueAt: &yesterday}))
	s.Require().NoError(s.states.SaveReviewState(s.ctx, s.db, &model.ReviewState{CardID: future.CardID, Repetitions: 2, Level: 2, NextDueAt: &tomorrow}))

	due, err := s.states.CountDue(s.ctx, s.db, model.CardFilter{}, s.now)
	s.Require().NoError(err)
	s.Equal(int64(2), due)

	due, err = s.states.CountDue(s.ctx, s.db, model.CardFilter{Category: "business"}, s.now)
	s.Require().NoError(err)
	s.Zero(due)

	mastered, err := s.states.CountMastered(s.ctx, s.db, 5)
	s.Require().NoError(err)
	s.Equal(int64(1), mastered)

	mastered, err = s.states.CountMastered(s.ctx, s.db, 1)
	s.Require().NoError(err)
	s.Equal(int64(2), mastered)

	// 論理削除したカードは数えない
	s.Require().NoError(s.cards.Delete(s.ctx, s.db, past.CardID))
	mastered, err = s.states.CountMastered(s.ctx, s.db, 5)
	s.Require().NoError(err)
	s.Zero(mastered)
}

func (s *RepositorySuite) TestHistory_AppendAndList() {
	base := s.now
	entries := []*model.HistoryEntry{
		{Kind: model.HistoryReview, Score: 3, Total: 4, CreatedAt: base.Add(-3 * time.Minute)},
		{Kind: model.HistoryQuiz, Score: 8, Total: 10, CreatedAt: base.Add(-2 * time.Minute)},
		{Kind: model.HistoryExam, WordCount: 540, TimeUp: true, CreatedAt: base.Add(-1 * time.Minute)},
	}
	for _, e := range entries {
		s.Require().NoError(s.history.Append(s.ctx, s.db, e))
		s.NotEqual(uuid.Nil, e.HistoryID)
	}

	all, err := s.history.List(s.ctx, s.db, "", 0)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(model.HistoryExam, all[0].Kind, "新しい順")
	s.Equal(model.HistoryReview, all[2].Kind)

	quizzes, err := s.history.List(s.ctx, s.db, model.HistoryQuiz, 10)
	s.Require().NoError(err)
	s.Require().Len(quizzes, 1)
	s.Equal(8, quizzes[0].Score)

	limited, err := s.history.List(s.ctx, s.db, "", 2)
	s.Require().NoError(err)
	s.Len(limited, 2)
}

func (s *RepositorySuite) TestGormKVStore() {
	runKVStoreContract(s.T(), NewGormKVStore(s.db))
}

func TestMemoryKVStore(t *testing.T) {
	runKVStoreContract(t, NewMemoryKVStore())
}

func runKVStoreContract(t *testing.T, store KVStore) {
	ctx := context.Background()

	_, found, err := store.Get(ctx, "progress")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set(ctx, "progress", `{"total_reviewed":1}`))
	require.NoError(t, store.Set(ctx, "progress", `{"total_reviewed":2}`))
	v, found, err := store.Get(ctx, "progress")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"total_reviewed":2}`, v)

	require.NoError(t, store.Set(ctx, "exam-essay-draft", "essay"))
	require.NoError(t, store.Set(ctx, "exam-synthesis-draft", "synthesis"))
	require.NoError(t, store.Set(ctx, "examXessay", "not a draft"))

	var keys []string
	err = store.Iterate(ctx, "exam-", func(key, value string) error {
		keys = append(keys, key)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"exam-essay-draft", "exam-synthesis-draft"}, keys)

	// fn のエラーで中断する
	stop := fmt.Errorf("stop")
	calls := 0
	err = store.Iterate(ctx, "", func(key, value string) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, calls)
}
