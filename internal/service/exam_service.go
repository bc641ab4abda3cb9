//go:generate mockery --name ExamService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go_vocab_srs/internal/config"
	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExamService interface {
	ListTypes(ctx context.Context) []model.ExamDefinition
	StartExam(ctx context.Context, examType model.ExamType) (*model.ExamView, error)
	GetExam(ctx context.Context, examID uuid.UUID) (*model.ExamView, error)
	ToggleTimer(ctx context.Context, examID uuid.UUID) (*model.ExamView, error)
	SaveDraft(ctx context.Context, examID uuid.UUID, answer string) error
	Submit(ctx context.Context, examID uuid.UUID, answer string) (*model.ExamResult, error)
	Abandon(ctx context.Context, examID uuid.UUID) error
}

type examRun struct {
	mu        sync.Mutex
	id        uuid.UUID
	def       model.ExamDefinition
	content   model.ExamContent
	startedAt time.Time
	total     time.Duration
	countdown *Countdown
	draft     string
	result    *model.ExamResult
	endedAt   time.Time
}

type examService struct {
	db          *gorm.DB
	kv          repository.KVStore
	historyRepo repository.HistoryRepository
	cfg         *config.Config
	now         Clock
	tick        time.Duration
	durationOf  func(model.ExamDefinition) time.Duration

	mu    sync.Mutex
	exams map[uuid.UUID]*examRun
}

func NewExamService(db *gorm.DB, kv repository.KVStore, historyRepo repository.HistoryRepository, cfg *config.Config, opts ...Option) ExamService {
	o := newOptions(opts)
	return &examService{
		db:          db,
		kv:          kv,
		historyRepo: historyRepo,
		cfg:         cfg,
		now:         o.Now,
		tick:        time.Second,
		durationOf:  func(def model.ExamDefinition) time.Duration { return time.Duration(def.DurationMin) * time.Minute },
		exams:       make(map[uuid.UUID]*examRun),
	}
}

const draftKeyPrefix = config.ExamDraftPrefix

func draftKey(t model.ExamType) string {
	return fmt.Sprintf("%s%s-draft", draftKeyPrefix, t)
}

// ListTypes は試験形式の一覧に、下書きが残っているかを付けて返す
func (s *examService) ListTypes(ctx context.Context) []model.ExamDefinition {
	types := model.ExamTypes()
	drafts := make(map[string]bool)
	err := s.kv.Iterate(ctx, draftKeyPrefix, func(key, value string) error {
		if strings.TrimSpace(value) != "" {
			drafts[key] = true
		}
		return nil
	})
	if err != nil {
		middleware.GetLogger(ctx).Warn("Failed to scan exam drafts", "error", err)
	}
	for i := range types {
		types[i].HasDraft = drafts[draftKey(types[i].Type)]
	}
	return types
}

// StartExam は試験を開始し、カウントダウンを動かす。前回の下書きがあれば引き継ぐ。
func (s *examService) StartExam(ctx context.Context, examType model.ExamType) (*model.ExamView, error) {
	logger := middleware.GetLogger(ctx).With("exam_type", string(examType))

	def, ok := model.LookupExam(examType)
	if !ok {
		return nil, model.NewAppError("UNKNOWN_EXAM_TYPE", "試験の種類が正しくありません。", "type", model.ErrUnknownExamType)
	}

	draft, _, err := s.kv.Get(ctx, draftKey(examType))
	if err != nil {
		logger.Warn("Failed to load exam draft, starting blank", "error", err)
		draft = ""
	}

	now := s.now()
	run := &examRun{
		id:        uuid.New(),
		def:       def,
		content:   model.ExamContentFor(examType),
		startedAt: now,
		total:     s.durationOf(def),
		draft:     draft,
	}
	bgCtx := context.WithoutCancel(ctx)
	run.countdown = NewCountdown(run.total, s.tick, nil, func() { s.timeUp(bgCtx, run) })

	s.mu.Lock()
	s.pruneLocked(now)
	s.exams[run.id] = run
	s.mu.Unlock()

	run.mu.Lock()
	defer run.mu.Unlock()
	run.countdown.Start()
	logger.Info("Exam started", "exam_id", run.id, "duration_min", def.DurationMin)
	return run.view(), nil
}

func (s *examService) GetExam(ctx context.Context, examID uuid.UUID) (*model.ExamView, error) {
	run, err := s.lookup(examID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	return run.view(), nil
}

// ToggleTimer は一時停止と再開を切り替える
func (s *examService) ToggleTimer(ctx context.Context, examID uuid.UUID) (*model.ExamView, error) {
	run, err := s.lookup(examID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	if run.result != nil {
		return nil, model.NewAppError("EXAM_FINISHED", "この試験は既に終了しています。", "", model.ErrExamFinished)
	}
	running := run.countdown.Toggle()
	middleware.GetLogger(ctx).Info("Exam timer toggled", "exam_id", examID, "running", running)
	return run.view(), nil
}

// SaveDraft は下書きをKVストアに保存する。保存に失敗してもメモリ上の下書きは更新する。
func (s *examService) SaveDraft(ctx context.Context, examID uuid.UUID, answer string) error {
	logger := middleware.GetLogger(ctx).With("exam_id", examID)
	run, err := s.lookup(examID)
	if err != nil {
		return err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	if run.result != nil {
		return model.NewAppError("EXAM_FINISHED", "この試験は既に終了しています。", "", model.ErrExamFinished)
	}
	run.draft = answer
	if err := s.kv.Set(ctx, draftKey(run.def.Type), answer); err != nil {
		logger.Error("Failed to save exam draft", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "下書きの保存に失敗しました。", "", err)
	}
	logger.Debug("Exam draft saved", "length", len(answer))
	return nil
}

// Submit は解答を提出し、語数と使用時間を記録する
func (s *examService) Submit(ctx context.Context, examID uuid.UUID, answer string) (*model.ExamResult, error) {
	run, err := s.lookup(examID)
	if err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	if run.result != nil {
		return nil, model.NewAppError("EXAM_FINISHED", "この試験は既に終了しています。", "", model.ErrExamFinished)
	}
	run.draft = answer
	return s.finishLocked(ctx, run, false), nil
}

// Abandon は提出せずに試験を破棄する
func (s *examService) Abandon(ctx context.Context, examID uuid.UUID) error {
	s.mu.Lock()
	run, ok := s.exams[examID]
	delete(s.exams, examID)
	s.mu.Unlock()
	if !ok {
		return model.NewAppError("EXAM_NOT_FOUND", "試験が見つかりません。", "exam_id", model.ErrExamNotFound)
	}
	run.countdown.Stop()
	middleware.GetLogger(ctx).Info("Exam abandoned", "exam_id", examID)
	return nil
}

func (s *examService) timeUp(ctx context.Context, run *examRun) {
	run.mu.Lock()
	defer run.mu.Unlock()
	if run.result != nil {
		return
	}
	s.finishLocked(ctx, run, true)
}

// finishLocked は run.mu を保持して呼ぶこと
func (s *examService) finishLocked(ctx context.Context, run *examRun, timeUp bool) *model.ExamResult {
	logger := middleware.GetLogger(ctx).With("exam_id", run.id)
	run.countdown.Stop()
	now := s.now()

	used := run.total - run.countdown.Remaining()
	res := &model.ExamResult{
		Type:         run.def.Type,
		SubmittedAt:  now,
		DurationUsed: int64(used / time.Second),
		WordCount:    countWords(run.draft),
		TimeUp:       timeUp,
	}
	run.result = res
	run.endedAt = now

	entry := &model.HistoryEntry{
		Kind:       model.HistoryExam,
		DurationMs: used.Milliseconds(),
		WordCount:  res.WordCount,
		TimeUp:     timeUp,
		Detail:     string(run.def.Type),
		CreatedAt:  now,
	}
	if err := s.historyRepo.Append(ctx, s.db, entry); err != nil {
		logger.Warn("Failed to append exam history", "error", err)
	}
	// 提出後は下書きを消す
	if err := s.kv.Set(ctx, draftKey(run.def.Type), ""); err != nil {
		logger.Warn("Failed to clear exam draft", "error", err)
	}
	logger.Info("Exam finished", "word_count", res.WordCount, "time_up", timeUp, "duration_used_s", res.DurationUsed)
	return res
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

func (s *examService) lookup(examID uuid.UUID) (*examRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.exams[examID]
	if !ok {
		return nil, model.NewAppError("EXAM_NOT_FOUND", "試験が見つかりません。", "exam_id", model.ErrExamNotFound)
	}
	return run, nil
}

func (s *examService) pruneLocked(now time.Time) {
	for id, run := range s.exams {
		if !run.mu.TryLock() {
			continue
		}
		expired := run.result != nil && now.Sub(run.endedAt) > s.cfg.App.RunRetention
		run.mu.Unlock()
		if expired {
			delete(s.exams, id)
		}
	}
}

func (r *examRun) view() *model.ExamView {
	return &model.ExamView{
		ExamID:           r.id,
		Type:             r.def.Type,
		Name:             r.def.Name,
		Content:          r.content,
		StartedAt:        r.startedAt,
		RemainingSeconds: int64(r.countdown.Remaining() / time.Second),
		Running:          r.countdown.Running(),
		Draft:            r.draft,
		Finished:         r.result != nil,
		Result:           r.result,
	}
}
