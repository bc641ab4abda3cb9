package service

import (
	"strings"
	"sync"
	"time"

	"go_vocab_srs/internal/model"

	"github.com/google/uuid"
)

// maxDistractors は1問あたりの誤答の数
const maxDistractors = 3

// QuizRun は1回分の4択クイズ
type QuizRun struct {
	mu sync.Mutex

	id          uuid.UUID
	questions   []*model.QuizQuestion
	answers     []model.Answer
	score       int
	pool        []*model.Card // 誤答候補の母集団。ミス復習でも同じものを使う
	startedAt   time.Time
	completedAt time.Time
	complete    bool
	expired     bool
	countdown   *Countdown
}

func newQuizRun(pool []*model.Card, questions []*model.QuizQuestion, now time.Time) *QuizRun {
	if len(questions) > 0 {
		questions[0].StartedAt = now
	}
	return &QuizRun{
		id:        uuid.New(),
		questions: questions,
		pool:      pool,
		startedAt: now,
		answers:   make([]model.Answer, 0, len(questions)),
	}
}

// buildQuestions は選ばれたカードごとに問題を作る。
// 誤答は pool 内の他カードの裏面から重複なしで最大3つ選ぶ。
// 候補が1つもないカードがあればクイズ自体を作らない。
func buildQuestions(pool, selected []*model.Card, rnd RandomSource) ([]*model.QuizQuestion, error) {
	questions := make([]*model.QuizQuestion, 0, len(selected))
	for i, card := range selected {
		candidates := distractorCandidates(pool, card)
		if len(candidates) == 0 {
			return nil, model.ErrInsufficientDistractors
		}
		picked := sampleIndices(rnd, len(candidates), maxDistractors)
		distractors := make([]string, 0, len(picked))
		for _, j := range picked {
			distractors = append(distractors, candidates[j])
		}

		options := make([]string, 0, len(distractors)+1)
		options = append(options, card.Back)
		options = append(options, distractors...)
		rnd.Shuffle(len(options), func(a, b int) { options[a], options[b] = options[b], options[a] })

		questions = append(questions, &model.QuizQuestion{
			Index:         i,
			Prompt:        card.Front,
			CorrectAnswer: card.Back,
			Distractors:   distractors,
			Options:       options,
			SourceCard:    card,
			Degraded:      len(distractors) < maxDistractors,
		})
	}
	return questions, nil
}

// distractorCandidates は正解と異なる裏面を pool の順に重複なしで集める
func distractorCandidates(pool []*model.Card, card *model.Card) []string {
	seen := map[string]struct{}{normalizeAnswer(card.Back): {}}
	candidates := make([]string, 0, len(pool))
	for _, c := range pool {
		if c == nil || c.CardID == card.CardID {
			continue
		}
		key := normalizeAnswer(c.Back)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		candidates = append(candidates, c.Back)
	}
	return candidates
}

func normalizeAnswer(s string) string {
	return strings.TrimSpace(s)
}

// current は未回答の最初の問題。完了後は nil。
func (r *QuizRun) current() *model.QuizQuestion {
	if r.complete || len(r.answers) >= len(r.questions) {
		return nil
	}
	return r.questions[len(r.answers)]
}

// answer は現在の問題に回答する。全問回答したら true を返す。
func (r *QuizRun) answer(selected string, now time.Time) (model.Answer, bool) {
	q := r.current()
	ans := model.Answer{
		QuestionIndex: q.Index,
		CardID:        q.SourceCard.CardID,
		Prompt:        q.Prompt,
		Selected:      selected,
		CorrectAnswer: q.CorrectAnswer,
		Correct:       normalizeAnswer(selected) == normalizeAnswer(q.CorrectAnswer),
		ElapsedMs:     now.Sub(q.StartedAt).Milliseconds(),
	}
	r.answers = append(r.answers, ans)
	if ans.Correct {
		r.score++
	}
	if next := r.current(); next != nil {
		next.StartedAt = now
		return ans, false
	}
	r.finish(now, false)
	return ans, true
}

func (r *QuizRun) finish(now time.Time, expired bool) {
	if r.complete {
		return
	}
	r.complete = true
	r.expired = expired
	r.completedAt = now
	if r.countdown != nil {
		r.countdown.Stop()
	}
}

// mistakeCards は不正解だった問題のカード (回答順)
func (r *QuizRun) mistakeCards() []*model.Card {
	var cards []*model.Card
	for _, a := range r.answers {
		if !a.Correct {
			cards = append(cards, r.questions[a.QuestionIndex].SourceCard)
		}
	}
	return cards
}

func (r *QuizRun) view() *model.QuizView {
	v := &model.QuizView{
		QuizID:   r.id,
		Total:    len(r.questions),
		Answered: len(r.answers),
		Score:    r.score,
		Complete: r.complete,
		Question: r.current(),
	}
	if r.countdown != nil {
		secs := int64(r.countdown.Remaining() / time.Second)
		v.Remaining = &secs
	}
	return v
}

func (r *QuizRun) result(now time.Time) *model.QuizResult {
	res := &model.QuizResult{
		QuizID:   r.id,
		Score:    r.score,
		Total:    len(r.questions),
		Answered: len(r.answers),
		Complete: r.complete,
		Expired:  r.expired,
		Answers:  append([]model.Answer(nil), r.answers...),
		Mistakes: []model.Answer{},
	}
	end := now
	if r.complete {
		end = r.completedAt
	}
	res.DurationMs = end.Sub(r.startedAt).Milliseconds()
	if res.Total > 0 {
		res.Accuracy = float64(r.score) / float64(res.Total)
	}
	var elapsed int64
	for _, a := range r.answers {
		elapsed += a.ElapsedMs
		if !a.Correct {
			res.Mistakes = append(res.Mistakes, a)
		}
	}
	if len(r.answers) > 0 {
		res.AverageElapsedMs = elapsed / int64(len(r.answers))
	}
	return res
}
