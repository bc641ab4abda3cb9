//go:generate mockery --name ReviewService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
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

const persistWarning = "学習状態の保存に失敗しました。この結果は再起動すると失われます。"

type ReviewService interface {
	StartSession(ctx context.Context, filter model.CardFilter) (*model.SessionView, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*model.SessionView, error)
	CurrentCard(ctx context.Context, sessionID uuid.UUID) (*model.ReviewCardView, error)
	RateCurrentCard(ctx context.Context, sessionID uuid.UUID, quality int) (*model.RateOutcome, error)
	AbandonSession(ctx context.Context, sessionID uuid.UUID) (*model.SessionSummary, error)
	CountDue(ctx context.Context, filter model.CardFilter) (int64, error)
}

type reviewService struct {
	db          *gorm.DB
	cardRepo    repository.CardRepository
	stateRepo   repository.ReviewStateRepository
	historyRepo repository.HistoryRepository
	progress    ProgressService
	cfg         *config.Config
	now         Clock
	rnd         RandomSource

	mu       sync.Mutex
	sessions map[uuid.UUID]*ReviewSession
}

func NewReviewService(db *gorm.DB, cardRepo repository.CardRepository, stateRepo repository.ReviewStateRepository, historyRepo repository.HistoryRepository, progress ProgressService, cfg *config.Config, opts ...Option) ReviewService {
	o := newOptions(opts)
	return &reviewService{
		db:          db,
		cardRepo:    cardRepo,
		stateRepo:   stateRepo,
		historyRepo: historyRepo,
		progress:    progress,
		cfg:         cfg,
		now:         o.Now,
		rnd:         o.Random,
		sessions:    make(map[uuid.UUID]*ReviewSession),
	}
}

func (s *reviewService) StartSession(ctx context.Context, filter model.CardFilter) (*model.SessionView, error) {
	logger := middleware.GetLogger(ctx).With("category", filter.Category)

	sess := newReviewSession(filter)
	cards, err := s.cardRepo.GetAllCards(ctx, s.db, filter)
	if err != nil {
		logger.Error("Failed to load cards for review session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習カードの取得に失敗しました。", "", err)
	}
	s.progress.RememberFilter(ctx, filter)

	now := s.now()
	sess.build(cards, now, s.rnd, s.cfg.App.ReviewLimit)

	s.mu.Lock()
	s.pruneLocked(now)
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	view := sess.view()
	logger.Info("Review session started", "session_id", sess.id, "due_cards", view.Remaining, "empty", view.Empty)
	return view, nil
}

func (s *reviewService) GetSession(ctx context.Context, sessionID uuid.UUID) (*model.SessionView, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// CurrentCard は現在のカードを返す。完了済みセッションでは nil。
func (s *reviewService) CurrentCard(ctx context.Context, sessionID uuid.UUID) (*model.ReviewCardView, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return model.NewReviewCardView(sess.current()), nil
}

// RateCurrentCard は現在のカードを評価し、次の状態を保存してキューを進める。
// 保存に失敗してもセッションは続行し、Warning に理由を入れて返す。
func (s *reviewService) RateCurrentCard(ctx context.Context, sessionID uuid.UUID, quality int) (*model.RateOutcome, error) {
	logger := middleware.GetLogger(ctx).With("session_id", sessionID)

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	card := sess.current()
	if card == nil {
		return nil, model.NewAppError("SESSION_COMPLETED", "このセッションは既に終了しています。", "", model.ErrSessionCompleted)
	}
	logger = logger.With("card_id", card.CardID)

	q := srs.ClampQuality(quality)
	if q != quality {
		logger.Debug("Quality out of range, clamped", "quality", quality, "clamped", q)
	}
	now := s.now()

	prev, err := s.stateRepo.GetReviewState(ctx, s.db, card.CardID)
	if err != nil {
		logger.Warn("Failed to reload review state, using in-memory copy", "error", err)
		prev = card.State()
	}
	next := srs.Schedule(prev, q, now)
	card.ReviewState = &next

	outcome := &model.RateOutcome{
		Quality:     q,
		Correct:     srs.IsCorrect(q),
		ReviewState: next,
	}
	if err := s.stateRepo.SaveReviewState(ctx, s.db, &next); err != nil {
		logger.Warn("Failed to persist review state, keeping in-memory state", "error", err)
		outcome.Warning = persistWarning
	}

	s.progress.RecordOutcome(ctx, outcome.Correct)

	if completed := sess.record(outcome.Correct, now); completed {
		outcome.Summary = sess.summary
		s.appendHistory(ctx, *sess.summary)
		logger.Info("Review session completed", "reviewed", sess.summary.Reviewed, "correct", sess.summary.Correct)
	}
	outcome.NextCard = model.NewReviewCardView(sess.current())
	outcome.Remaining = len(sess.queue)

	logger.Info("Card rated", "quality", q, "rating", srs.RatingFromQuality(q).String(), "next_due_at", next.NextDueAt)
	return outcome, nil
}

// AbandonSession は途中で終了し、そこまでの集計を返す
func (s *reviewService) AbandonSession(ctx context.Context, sessionID uuid.UUID) (*model.SessionSummary, error) {
	logger := middleware.GetLogger(ctx).With("session_id", sessionID)

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state == model.SessionCompleted {
		return sess.summary, nil
	}
	sum := sess.complete(s.now(), true)
	if sum.Reviewed > 0 {
		s.appendHistory(ctx, sum)
	}
	logger.Info("Review session abandoned", "reviewed", sum.Reviewed)
	return &sum, nil
}

func (s *reviewService) CountDue(ctx context.Context, filter model.CardFilter) (int64, error) {
	logger := middleware.GetLogger(ctx)
	count, err := s.stateRepo.CountDue(ctx, s.db, filter, s.now())
	if err != nil {
		logger.Error("Failed to count due cards", "error", err)
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "復習対象数の取得に失敗しました。", "", err)
	}
	return count, nil
}

func (s *reviewService) lookup(sessionID uuid.UUID) (*ReviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, model.NewAppError("SESSION_NOT_FOUND", "セッションが見つかりません。", "session_id", model.ErrSessionNotFound)
	}
	return sess, nil
}

// pruneLocked は保持期間を過ぎた完了済みセッションを破棄する。s.mu を保持して呼ぶこと。
func (s *reviewService) pruneLocked(now time.Time) {
	for id, sess := range s.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		expired := sess.state == model.SessionCompleted && now.Sub(sess.completedAt) > s.cfg.App.RunRetention
		sess.mu.Unlock()
		if expired {
			delete(s.sessions, id)
		}
	}
}

func (s *reviewService) appendHistory(ctx context.Context, sum model.SessionSummary) {
	entry := &model.HistoryEntry{
		Kind:       model.HistoryReview,
		Score:      sum.Correct,
		Total:      sum.Reviewed,
		DurationMs: sum.DurationMs,
		Detail:     fmt.Sprintf("accuracy=%.2f abandoned=%t", sum.Accuracy, sum.Abandoned),
		CreatedAt:  s.now(),
	}
	if err := s.historyRepo.Append(ctx, s.db, entry); err != nil {
		middleware.GetLogger(ctx).Warn("Failed to append review history", "error", err)
	}
}
