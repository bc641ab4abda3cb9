//go:generate mockery --name ProgressService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"time"

	"go_vocab_srs/internal/config"
	"go_vocab_srs/internal/middleware"
	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/repository"

	"gorm.io/gorm"
)

const localDateLayout = "2006-01-02"

// ProgressService は連続正解数・累計・日次/週間進捗と前回の絞り込み条件を管理する
type ProgressService interface {
	RecordOutcome(ctx context.Context, correct bool)
	Snapshot(ctx context.Context) (*model.ProgressSnapshot, error)
	RememberFilter(ctx context.Context, filter model.CardFilter) model.SavedFilter
}

type progressService struct {
	db        *gorm.DB
	kv        repository.KVStore
	cardRepo  repository.CardRepository
	stateRepo repository.ReviewStateRepository
	cfg       *config.Config
	now       Clock
	loc       *time.Location

	mu       sync.Mutex
	loaded   bool
	counters model.ProgressCounters
	filter   model.SavedFilter
}

func NewProgressService(db *gorm.DB, kv repository.KVStore, cardRepo repository.CardRepository, stateRepo repository.ReviewStateRepository, cfg *config.Config, opts ...Option) ProgressService {
	o := newOptions(opts)
	return &progressService{
		db:        db,
		kv:        kv,
		cardRepo:  cardRepo,
		stateRepo: stateRepo,
		cfg:       cfg,
		now:       o.Now,
		loc:       cfg.App.Location(),
	}
}

// RecordOutcome は1回分の正誤を反映する。保存に失敗してもメモリ上の値は保持する。
func (s *progressService) RecordOutcome(ctx context.Context, correct bool) {
	logger := middleware.GetLogger(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	s.checkDailyReset()

	s.counters.TotalReviewed++
	s.counters.DailyProgress++
	s.counters.WeeklyProgress[s.now().In(s.loc).Weekday()]++
	if correct {
		s.counters.CurrentStreak++
	} else {
		s.counters.CurrentStreak = 0
	}
	if s.counters.CurrentStreak > s.counters.BestStreak {
		s.counters.BestStreak = s.counters.CurrentStreak
	}

	if err := s.persist(ctx); err != nil {
		logger.Warn("Failed to persist progress counters, keeping in-memory values", "error", err)
	}
}

func (s *progressService) Snapshot(ctx context.Context) (*model.ProgressSnapshot, error) {
	logger := middleware.GetLogger(ctx)

	s.mu.Lock()
	s.ensureLoaded(ctx)
	if s.checkDailyReset() {
		if err := s.persist(ctx); err != nil {
			logger.Warn("Failed to persist daily reset", "error", err)
		}
	}
	counters := s.counters
	filter := s.filter
	s.mu.Unlock()

	mastered, err := s.stateRepo.CountMastered(ctx, s.db, s.cfg.App.MasteryThreshold)
	if err != nil {
		logger.Error("Failed to count mastered cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "習得済みカード数の取得に失敗しました。", "", err)
	}
	total, err := s.cardRepo.Count(ctx, s.db)
	if err != nil {
		logger.Error("Failed to count cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード数の取得に失敗しました。", "", err)
	}

	snap := &model.ProgressSnapshot{
		TotalReviewed:    counters.TotalReviewed,
		CurrentStreak:    counters.CurrentStreak,
		BestStreak:       counters.BestStreak,
		MasteredCount:    mastered,
		TotalCards:       total,
		DailyProgress:    counters.DailyProgress,
		DailyGoal:        s.cfg.App.DailyGoal,
		LastStudyDate:    counters.LastStudyDate,
		MasteryThreshold: s.cfg.App.MasteryThreshold,
		WeeklyProgress:   s.weekView(counters),
		StreakThreshold:  s.cfg.App.StreakThreshold,
		ExamDate:         s.cfg.App.ExamDate,
		LastFilter:       filter,
	}
	if days, ok := s.daysUntilExam(); ok {
		snap.DaysUntilExam = &days
	}
	return snap, nil
}

// RememberFilter は最後に使った絞り込み条件を保存する。保存に失敗してもメモリ上の値は更新する。
func (s *progressService) RememberFilter(ctx context.Context, filter model.CardFilter) model.SavedFilter {
	logger := middleware.GetLogger(ctx)
	saved := model.NewSavedFilter(filter)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	s.filter = saved

	b, err := json.Marshal(saved)
	if err == nil {
		err = s.kv.Set(ctx, config.FiltersKey, string(b))
	}
	if err != nil {
		logger.Warn("Failed to persist last used filter", "error", err)
	}
	return saved
}

// weekView は今週(日曜始まり)の7日分を返す。過去の日は件数が streak_threshold 以上なら completed。
func (s *progressService) weekView(c model.ProgressCounters) []model.WeekdayProgress {
	today := startOfDay(s.now().In(s.loc))
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	days := make([]model.WeekdayProgress, 7)
	for i := range days {
		day := weekStart.AddDate(0, 0, i)
		d := model.WeekdayProgress{Date: day.Format(localDateLayout), Status: model.WeekdayUpcoming}
		if c.WeekStart == weekStart.Format(localDateLayout) {
			d.Count = c.WeeklyProgress[i]
		}
		switch {
		case day.Before(today):
			d.Status = model.WeekdayMissed
			if d.Count >= s.cfg.App.StreakThreshold {
				d.Status = model.WeekdayCompleted
			}
		case day.Equal(today):
			d.Status = model.WeekdayCurrent
		}
		days[i] = d
	}
	return days
}

// daysUntilExam は試験日までの残り日数。過ぎていれば0。
func (s *progressService) daysUntilExam() (int, bool) {
	examDay, ok := s.cfg.App.ExamDay(s.loc)
	if !ok {
		return 0, false
	}
	today := startOfDay(s.now().In(s.loc))
	days := int(math.Round(examDay.Sub(today).Hours() / 24)) // 夏時間の切り替えで23/25時間の日がある
	if days < 0 {
		days = 0
	}
	return days, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ensureLoaded はKVストアから前回の値を読み込む。失敗した場合は0から始める。
// s.mu を保持して呼ぶこと。
func (s *progressService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	logger := middleware.GetLogger(ctx)

	s.filter = model.NewSavedFilter(model.CardFilter{})
	if raw, found, err := s.kv.Get(ctx, config.FiltersKey); err != nil {
		logger.Warn("Failed to load last used filter", "error", err)
	} else if found {
		var f model.SavedFilter
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			logger.Warn("Stored filter is corrupted, using all cards", "error", err)
		} else {
			s.filter = f
		}
	}

	raw, found, err := s.kv.Get(ctx, config.ProgressKey)
	if err != nil {
		logger.Warn("Failed to load progress counters, starting from zero", "error", err)
		return
	}
	if !found {
		return
	}
	var c model.ProgressCounters
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		logger.Warn("Stored progress counters are corrupted, starting from zero", "error", err)
		return
	}
	s.counters = c
}

// checkDailyReset はローカル日付が変わっていれば日次進捗を、週が変わっていれば週間進捗を0に戻す。
// 変更があれば true。s.mu を保持して呼ぶこと。
func (s *progressService) checkDailyReset() bool {
	now := startOfDay(s.now().In(s.loc))
	changed := false

	if today := now.Format(localDateLayout); s.counters.LastStudyDate != today {
		s.counters.DailyProgress = 0
		s.counters.LastStudyDate = today
		changed = true
	}
	if weekStart := now.AddDate(0, 0, -int(now.Weekday())).Format(localDateLayout); s.counters.WeekStart != weekStart {
		s.counters.WeekStart = weekStart
		s.counters.WeeklyProgress = [7]int{}
		changed = true
	}
	return changed
}

func (s *progressService) persist(ctx context.Context) error {
	b, err := json.Marshal(s.counters)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, config.ProgressKey, string(b))
}
