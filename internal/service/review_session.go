package service

import (
	"sync"
	"time"

	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/srs"

	"github.com/google/uuid"
)

// ReviewSession は1回分の復習セッション。queue の先頭が現在のカード。
// Idle -> Building -> Active -> Completed の順にしか遷移しない。
type ReviewSession struct {
	mu sync.Mutex

	id          uuid.UUID
	state       model.SessionState
	filter      model.CardFilter
	queue       []*model.Card
	stats       model.SessionStats
	summary     *model.SessionSummary
	empty       bool
	completedAt time.Time
}

func newReviewSession(filter model.CardFilter) *ReviewSession {
	return &ReviewSession{
		id:     uuid.New(),
		state:  model.SessionIdle,
		filter: filter,
	}
}

// build は期限が来たカードを重複なしでシャッフルして並べる。
// limit > 0 のときは先頭 limit 枚に絞る。
func (rs *ReviewSession) build(cards []*model.Card, now time.Time, rnd RandomSource, limit int) {
	rs.state = model.SessionBuilding

	seen := make(map[uuid.UUID]struct{}, len(cards))
	queue := make([]*model.Card, 0, len(cards))
	for _, c := range cards {
		if c == nil || !rs.filter.Matches(c) || !srs.IsDue(c.State(), now) {
			continue
		}
		if _, dup := seen[c.CardID]; dup {
			continue
		}
		seen[c.CardID] = struct{}{}
		queue = append(queue, c)
	}
	rnd.Shuffle(len(queue), func(i, j int) { queue[i], queue[j] = queue[j], queue[i] })
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}

	rs.queue = queue
	rs.stats = model.SessionStats{StartedAt: now}
	if len(queue) == 0 {
		rs.empty = true
		rs.complete(now, false)
		return
	}
	rs.state = model.SessionActive
}

// current は先頭のカードを返す (取り除かない)。完了後は nil。
func (rs *ReviewSession) current() *model.Card {
	if rs.state != model.SessionActive || len(rs.queue) == 0 {
		return nil
	}
	return rs.queue[0]
}

// pending は現在のカードを除いた残り
func (rs *ReviewSession) pending() []*model.Card {
	if len(rs.queue) <= 1 {
		return nil
	}
	return rs.queue[1:]
}

// record は評価を集計し、先頭を取り除く。キューが空になったら完了して true を返す。
func (rs *ReviewSession) record(correct bool, now time.Time) bool {
	rs.stats.Reviewed++
	if correct {
		rs.stats.Correct++
	}
	rs.queue[0] = nil
	rs.queue = rs.queue[1:]
	if len(rs.queue) == 0 {
		rs.complete(now, false)
		return true
	}
	return false
}

func (rs *ReviewSession) complete(now time.Time, abandoned bool) model.SessionSummary {
	if rs.state == model.SessionCompleted && rs.summary != nil {
		return *rs.summary
	}
	sum := model.NewSessionSummary(rs.stats, now, abandoned)
	rs.summary = &sum
	rs.state = model.SessionCompleted
	rs.queue = nil
	rs.completedAt = now
	return sum
}

func (rs *ReviewSession) view() *model.SessionView {
	return &model.SessionView{
		SessionID:   rs.id,
		State:       rs.state,
		Empty:       rs.empty,
		Remaining:   len(rs.queue),
		Stats:       rs.stats,
		CurrentCard: model.NewReviewCardView(rs.current()),
		Summary:     rs.summary,
	}
}
