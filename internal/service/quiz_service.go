//go:generate mockery --name QuizService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go_vocab_srs/internal/config"
	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/repository"
	"go_vocab_srs/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizService interface {
	StartQuiz(ctx context.Context, filter model.CardFilter, size int) (*model.QuizView, error)
	CurrentQuestion(ctx context.Context, quizID uuid.UUID) (*model.QuizView, error)
	Answer(ctx context.Context, quizID uuid.UUID, selected string) (*model.AnswerOutcome, error)
	Results(ctx context.Context, quizID uuid.UUID) (*model.QuizResult, error)
	ReviewMistakes(ctx context.Context, quizID uuid.UUID) (*model.QuizView, error)
	DiscardQuiz(ctx context.Context, quizID uuid.UUID) error
}

type quizService struct {
	db          *gorm.DB
	cardRepo    repository.CardRepository
	stateRepo   repository.ReviewStateRepository
	historyRepo repository.HistoryRepository
	progress    ProgressService
	cfg         *config.Config
	now         Clock
	rnd         RandomSource
	tick        time.Duration

	mu   sync.Mutex
	runs map[uuid.UUID]*QuizRun
}

func NewQuizService(db *gorm.DB, cardRepo repository.CardRepository, stateRepo repository.ReviewStateRepository, historyRepo repository.HistoryRepository, progress ProgressService, cfg *config.Config, opts ...Option) QuizService {
	o := newOptions(opts)
	return &quizService{
		db:          db,
		cardRepo:    cardRepo,
		stateRepo:   stateRepo,
		historyRepo: historyRepo,
		progress:    progress,
		cfg:         cfg,
		now:         o.Now,
		rnd:         o.Random,
		tick:        time.Second,
		runs:        make(map[uuid.UUID]*QuizRun),
	}
}

// StartQuiz は絞り込んだカードから最大 size 問のクイズを作る。
// 該当カードがない場合はエラーではなく Empty のビューを返す。
func (s *quizService) StartQuiz(ctx context.Context, filter model.CardFilter, size int) (*model.QuizView, error) {
	logger := middleware.GetLogger(ctx).With("category", filter.Category)
	if size <= 0 {
		size = s.cfg.App.QuizSize
	}

	pool, err := s.cardRepo.GetAllCards(ctx, s.db, filter)
	if err != nil {
		logger.Error("Failed to load cards for quiz", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズ用カードの取得に失敗しました。", "", err)
	}
	s.progress.RememberFilter(ctx, filter)
	if len(pool) == 0 {
		logger.Info("Quiz requested with empty pool")
		return &model.QuizView{Empty: true, Complete: true}, nil
	}

	picked := sampleIndices(s.rnd, len(pool), size)
	selected := make([]*model.Card, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, pool[i])
	}
	return s.startRun(ctx, pool, selected)
}

func (s *quizService) startRun(ctx context.Context, pool, selected []*model.Card) (*model.QuizView, error) {
	logger := middleware.GetLogger(ctx)

	questions, err := buildQuestions(pool, selected, s.rnd)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientDistractors) {
			logger.Warn("Not enough distinct answers for quiz", "pool_size", len(pool))
			return nil, model.NewAppError("INSUFFICIENT_DISTRACTORS", "選択肢を作るのに十分な種類のカードがありません。", "", err)
		}
		return nil, err
	}

	now := s.now()
	run := newQuizRun(pool, questions, now)
	if limit := s.cfg.App.QuizTimeLimit; limit > 0 {
		bgCtx := context.WithoutCancel(ctx)
		run.countdown = NewCountdown(limit, s.tick, nil, func() { s.expire(bgCtx, run) })
	}

	s.mu.Lock()
	s.pruneLocked(now)
	s.runs[run.id] = run
	s.mu.Unlock()

	run.mu.Lock()
	defer run.mu.Unlock()
	if run.countdown != nil {
		run.countdown.Start()
	}
	logger.Info("Quiz started", "quiz_id", run.id, "questions", len(questions))
	return run.view(), nil
}

func (s *quizService) CurrentQuestion(ctx context.Context, quizID uuid.UUID) (*model.QuizView, error) {
	run, err := s.lookup(quizID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	return run.view(), nil
}

// Answer は現在の問題に回答し、結果をレビュー状態に反映する (正解=5, 不正解=1)
func (s *quizService) Answer(ctx context.Context, quizID uuid.UUID, selected string) (*model.AnswerOutcome, error) {
	logger := middleware.GetLogger(ctx).With("quiz_id", quizID)

	run, err := s.lookup(quizID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()

	q := run.current()
	if q == nil {
		return nil, model.NewAppError("QUIZ_COMPLETED", "このクイズは既に終了しています。", "", model.ErrQuizCompleted)
	}
	card := q.SourceCard

	now := s.now()
	ans, complete := run.answer(selected, now)

	outcome := &model.AnswerOutcome{
		Correct:       ans.Correct,
		CorrectAnswer: ans.CorrectAnswer,
		Usage:         card.Usage,
		Score:         run.score,
		IsComplete:    complete,
	}

	prev, err := s.stateRepo.GetReviewState(ctx, s.db, card.CardID)
	if err != nil {
		logger.Warn("Failed to reload review state, using in-memory copy", "error", err, "card_id", card.CardID)
		prev = card.State()
	}
	next := srs.Schedule(prev, srs.QuizQuality(ans.Correct), now)
	card.ReviewState = &next
	if err := s.stateRepo.SaveReviewState(ctx, s.db, &next); err != nil {
		logger.Warn("Failed to persist review state, keeping in-memory state", "error", err, "card_id", card.CardID)
		outcome.Warning = persistWarning
	}

	s.progress.RecordOutcome(ctx, ans.Correct)

	if complete {
		s.appendHistory(ctx, run.result(now))
		logger.Info("Quiz completed", "score", run.score, "total", len(run.questions))
	}
	return outcome, nil
}

// Results はいつでも取得できる。Complete が false の場合は途中経過。
func (s *quizService) Results(ctx context.Context, quizID uuid.UUID) (*model.QuizResult, error) {
	run, err := s.lookup(quizID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	return run.result(s.now()), nil
}

// ReviewMistakes は間違えたカードだけで新しいクイズを作る。ミスがなければ ErrNoMistakes。
func (s *quizService) ReviewMistakes(ctx context.Context, quizID uuid.UUID) (*model.QuizView, error) {
	run, err := s.lookup(quizID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	if !run.complete {
		run.mu.Unlock()
		return nil, model.NewAppError("QUIZ_NOT_COMPLETE", "クイズが終了していません。", "", model.ErrQuizNotComplete)
	}
	mistakes := run.mistakeCards()
	pool := run.pool
	run.mu.Unlock()

	if len(mistakes) == 0 {
		return nil, model.NewAppError("NO_MISTAKES", "復習する間違いはありません。", "", model.ErrNoMistakes)
	}
	s.rnd.Shuffle(len(mistakes), func(i, j int) { mistakes[i], mistakes[j] = mistakes[j], mistakes[i] })
	return s.startRun(ctx, pool, mistakes)
}

func (s *quizService) DiscardQuiz(ctx context.Context, quizID uuid.UUID) error {
	s.mu.Lock()
	run, ok := s.runs[quizID]
	delete(s.runs, quizID)
	s.mu.Unlock()
	if !ok {
		return model.NewAppError("QUIZ_NOT_FOUND", "クイズが見つかりません。", "quiz_id", model.ErrQuizNotFound)
	}
	if run.countdown != nil {
		run.countdown.Stop()
	}
	middleware.GetLogger(ctx).Info("Quiz discarded", "quiz_id", quizID)
	return nil
}

// expire は制限時間切れで呼ばれる。未回答の問題は未回答のまま終了する。
func (s *quizService) expire(ctx context.Context, run *QuizRun) {
	run.mu.Lock()
	defer run.mu.Unlock()
	if run.complete {
		return
	}
	now := s.now()
	run.finish(now, true)
	s.appendHistory(ctx, run.result(now))
	middleware.GetLogger(ctx).Info("Quiz time limit reached", "quiz_id", run.id, "answered", len(run.answers))
}

func (s *quizService) lookup(quizID uuid.UUID) (*QuizRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[quizID]
	if !ok {
		return nil, model.NewAppError("QUIZ_NOT_FOUND", "クイズが見つかりません。", "quiz_id", model.ErrQuizNotFound)
	}
	return run, nil
}

// pruneLocked は保持期間を過ぎた完了済みクイズを破棄する。s.mu を保持して呼ぶこと。
func (s *quizService) pruneLocked(now time.Time) {
	for id, run := range s.runs {
		if !run.mu.TryLock() {
			continue
		}
		expired := run.complete && now.Sub(run.completedAt) > s.cfg.App.RunRetention
		run.mu.Unlock()
		if expired {
			delete(s.runs, id)
		}
	}
}

func (s *quizService) appendHistory(ctx context.Context, res *model.QuizResult) {
	entry := &model.HistoryEntry{
		Kind:       model.HistoryQuiz,
		Score:      res.Score,
		Total:      res.Total,
		DurationMs: res.DurationMs,
		TimeUp:     res.Expired,
		Detail:     fmt.Sprintf("answered=%d avg_ms=%d", res.Answered, res.AverageElapsedMs),
		CreatedAt:  s.now(),
	}
	if err := s.historyRepo.Append(ctx, s.db, entry); err != nil {
		middleware.GetLogger(ctx).Warn("Failed to append quiz history", "error", err)
	}
}
