package service

import (
	"context"
	"testing"
	"time"

	"go_vocab_srs/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answerAll は current の問題に正解/不正解を順に答える
func answerAll(t *testing.T, svc QuizService, quizID uuid.UUID, correct ...bool) []*model.AnswerOutcome {
	t.Helper()
	ctx := context.Background()
	var outs []*model.AnswerOutcome
	for _, ok := range correct {
		view, err := svc.CurrentQuestion(ctx, quizID)
		require.NoError(t, err)
		require.NotNil(t, view.Question)
		selected := view.Question.CorrectAnswer
		if !ok {
			selected = view.Question.Distractors[0]
		}
		out, err := svc.Answer(ctx, quizID, selected)
		require.NoError(t, err)
		assert.Equal(t, ok, out.Correct)
		outs = append(outs, out)
	}
	return outs
}

func Test_quizService_StartQuiz(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		poolSize     int
		size         int
		wantTotal    int
		wantDegraded bool
	}{
		{name: "正常系: 4枚なら4問、誤答は3つ", poolSize: 4, size: 10, wantTotal: 4},
		{name: "正常系: 15枚から10問", poolSize: 15, size: 10, wantTotal: 10},
		{name: "正常系: size未指定は設定値", poolSize: 12, size: 0, wantTotal: 10},
		{name: "正常系: 3枚だと誤答が足りず縮退", poolSize: 3, size: 10, wantTotal: 3, wantDegraded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			seedCards(t, env.db, numberedCards(tt.poolSize)...)
			svc := env.quizService()

			view, err := svc.StartQuiz(ctx, model.CardFilter{}, tt.size)
			require.NoError(t, err)
			assert.False(t, view.Empty)
			assert.Equal(t, tt.wantTotal, view.Total)
			assert.Nil(t, view.Remaining, "制限時間なし")

			run := svc.runs[view.QuizID]
			require.NotNil(t, run)
			prompts := map[string]bool{}
			for _, q := range run.questions {
				assert.False(t, prompts[q.Prompt], "同じカードは2度出ない")
				prompts[q.Prompt] = true

				assert.Equal(t, tt.wantDegraded, q.Degraded)
				wantDistractors := maxDistractors
				if tt.wantDegraded {
					wantDistractors = tt.poolSize - 1
				}
				assert.Len(t, q.Distractors, wantDistractors)
				assert.NotContains(t, q.Distractors, q.CorrectAnswer)

				seen := map[string]bool{}
				for _, d := range q.Distractors {
					assert.False(t, seen[d], "誤答は重複しない")
					seen[d] = true
				}
				assert.Len(t, q.Options, wantDistractors+1)
				assert.Contains(t, q.Options, q.CorrectAnswer)
				assert.Equal(t, q.SourceCard.Back, q.CorrectAnswer)
			}
		})
	}
}

func Test_quizService_StartQuiz_EmptyPool(t *testing.T) {
	env := newTestEnv(t)
	seedCards(t, env.db, cardSpec{front: "however", back: "cependant", category: "general"})
	svc := env.quizService()

	view, err := svc.StartQuiz(context.Background(), model.CardFilter{Category: "business"}, 10)
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.True(t, view.Complete)
	assert.Nil(t, view.Question)
	assert.Empty(t, svc.runs)
}

func Test_quizService_StartQuiz_InsufficientDistractors(t *testing.T) {
	tests := []struct {
		name  string
		specs []cardSpec
	}{
		{
			name:  "異常系: カードが1枚",
			specs: numberedCards(1),
		},
		{
			name: "異常系: 裏面がすべて同じ",
			specs: []cardSpec{
				{front: "nevertheless", back: "néanmoins"},
				{front: "nonetheless", back: "néanmoins"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			seedCards(t, env.db, tt.specs...)

			view, err := env.quizService().StartQuiz(context.Background(), model.CardFilter{}, 10)
			assert.Nil(t, view)
			require.ErrorIs(t, err, model.ErrInsufficientDistractors)
			var appErr *model.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "INSUFFICIENT_DISTRACTORS", appErr.Detail.Code)
		})
	}
}

func Test_quizService_Answer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedCards(t, env.db, numberedCards(4)...)
	svc := env.quizService()

	view, err := svc.StartQuiz(ctx, model.CardFilter{}, 2)
	require.NoError(t, err)
	first := view.Question
	require.NotNil(t, first)

	// 前後の空白は無視して比較する
	out, err := svc.Answer(ctx, view.QuizID, "  "+first.CorrectAnswer+" ")
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, 1, out.Score)
	assert.False(t, out.IsComplete)
	assert.Empty(t, out.Warning)

	state, err := env.states.GetReviewState(ctx, env.db, first.SourceCard.CardID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Level, "正解は評価5として記録")

	cur, err := svc.CurrentQuestion(ctx, view.QuizID)
	require.NoError(t, err)
	second := cur.Question
	require.NotNil(t, second)
	assert.NotEqual(t, first.Prompt, second.Prompt)

	out, err = svc.Answer(ctx, view.QuizID, "not an option")
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Equal(t, second.CorrectAnswer, out.CorrectAnswer)
	assert.True(t, out.IsComplete)

	state, err = env.states.GetReviewState(ctx, env.db, second.SourceCard.CardID)
	require.NoError(t, err)
	assert.Zero(t, state.Level, "不正解は評価1として記録")

	_, err = svc.Answer(ctx, view.QuizID, "anything")
	assert.ErrorIs(t, err, model.ErrQuizCompleted)

	assert.Equal(t, 1, env.historyCount(t, model.HistoryQuiz))

	snap, err := env.progress.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.TotalReviewed)
	assert.Equal(t, 0, snap.CurrentStreak)
	assert.Equal(t, 1, snap.BestStreak)
}

func Test_quizService_Results(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedCards(t, env.db, numberedCards(5)...)
	svc := env.quizService()

	view, err := svc.StartQuiz(ctx, model.CardFilter{}, 4)
	require.NoError(t, err)

	for _, ok := range []bool{true, false, true, true} {
		env.clock.Advance(3 * time.Second)
		answerAll(t, svc, view.QuizID, ok)
	}

	res, err := svc.Results(ctx, view.QuizID)
	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.False(t, res.Expired)
	assert.Equal(t, 3, res.Score)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 4, res.Answered)
	assert.InDelta(t, 0.75, res.Accuracy, 1e-9)
	assert.Equal(t, int64(12000), res.DurationMs)
	assert.Equal(t, int64(3000), res.AverageElapsedMs)
	require.Len(t, res.Mistakes, 1)
	assert.Equal(t, 1, res.Mistakes[0].QuestionIndex)

	// 完了後は時計が進んでも変わらない
	env.clock.Advance(time.Minute)
	again, err := svc.Results(ctx, view.QuizID)
	require.NoError(t, err)
	assert.Equal(t, res.DurationMs, again.DurationMs)
}

func Test_quizService_Results_InProgress(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedCards(t, env.db, numberedCards(4)...)
	svc := env.quizService()

	view, err := svc.StartQuiz(ctx, model.CardFilter{}, 4)
	require.NoError(t, err)
	answerAll(t, svc, view.QuizID, true)

	res, err := svc.Results(ctx, view.QuizID)
	require.NoError(t, err)
	assert.False(t, res.Complete)
	assert.Equal(t, 1, res.Answered)
	assert.InDelta(t, 0.25, res.Accuracy, 1e-9)
	assert.Zero(t, env.historyCount(t, model.HistoryQuiz))
}

func Test_quizService_ReviewMistakes(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 間違えた問題だけで新しいクイズ", func(t *testing.T) {
		env := newTestEnv(t)
		seedCards(t, env.db, numberedCards(6)...)
		svc := env.quizService()

		view, err := svc.StartQuiz(ctx, model.CardFilter{}, 4)
		require.NoError(t, err)

		_, err = svc.ReviewMistakes(ctx, view.QuizID)
		assert.ErrorIs(t, err, model.ErrQuizNotComplete)

		answerAll(t, svc, view.QuizID, false, true, false, true)
		res, err := svc.Results(ctx, view.QuizID)
		require.NoError(t, err)
		wrong := map[string]bool{}
		for _, m := range res.Mistakes {
			wrong[m.Prompt] = true
		}

		retry, err := svc.ReviewMistakes(ctx, view.QuizID)
		require.NoError(t, err)
		assert.NotEqual(t, view.QuizID, retry.QuizID)
		assert.Equal(t, 2, retry.Total)

		run := svc.runs[retry.QuizID]
		require.NotNil(t, run)
		for _, q := range run.questions {
			assert.True(t, wrong[q.Prompt])
			assert.Len(t, q.Distractors, maxDistractors, "誤答は元のカード群から選ぶ")
		}
	})

	t.Run("正常系: 全問正解ならミスなし", func(t *testing.T) {
		env := newTestEnv(t)
		seedCards(t, env.db, numberedCards(4)...)
		svc := env.quizService()

		view, err := svc.StartQuiz(ctx, model.CardFilter{}, 3)
		require.NoError(t, err)
		answerAll(t, svc, view.QuizID, true, true, true)

		retry, err := svc.ReviewMistakes(ctx, view.QuizID)
		assert.Nil(t, retry)
		assert.ErrorIs(t, err, model.ErrNoMistakes)
	})

	t.Run("異常系: 存在しないクイズ", func(t *testing.T) {
		_, err := newTestEnv(t).quizService().ReviewMistakes(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrQuizNotFound)
	})
}

func Test_quizService_TimeLimit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.cfg.App.QuizTimeLimit = 200 * time.Millisecond
	seedCards(t, env.db, numberedCards(4)...)
	svc := env.quizService()
	svc.tick = 20 * time.Millisecond

	view, err := svc.StartQuiz(ctx, model.CardFilter{}, 4)
	require.NoError(t, err)
	require.NotNil(t, view.Remaining)
	answerAll(t, svc, view.QuizID, true)

	require.Eventually(t, func() bool {
		res, err := svc.Results(ctx, view.QuizID)
		return err == nil && res.Expired
	}, 2*time.Second, 10*time.Millisecond)

	res, err := svc.Results(ctx, view.QuizID)
	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.Equal(t, 1, res.Answered)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 1, res.Score)

	_, err = svc.Answer(ctx, view.QuizID, "late")
	assert.ErrorIs(t, err, model.ErrQuizCompleted)
	assert.Equal(t, 1, env.historyCount(t, model.HistoryQuiz))

	// 期限切れで未回答の問題はミスに含めない
	retry, err := svc.ReviewMistakes(ctx, view.QuizID)
	assert.Nil(t, retry)
	assert.ErrorIs(t, err, model.ErrNoMistakes)
}

func Test_quizService_DiscardQuiz(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedCards(t, env.db, numberedCards(4)...)
	svc := env.quizService()

	view, err := svc.StartQuiz(ctx, model.CardFilter{}, 2)
	require.NoError(t, err)

	require.NoError(t, svc.DiscardQuiz(ctx, view.QuizID))
	_, err = svc.CurrentQuestion(ctx, view.QuizID)
	assert.ErrorIs(t, err, model.ErrQuizNotFound)
	assert.ErrorIs(t, svc.DiscardQuiz(ctx, view.QuizID), model.ErrQuizNotFound)
}

func Test_quizService_StartQuiz_RemembersFilter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	view, err := env.quizService().StartQuiz(ctx, model.CardFilter{Category: "travel"}, 0)
	require.NoError(t, err)
	assert.True(t, view.Empty)

	snap, err := env.progress.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SavedFilter{Category: "travel"}, snap.LastFilter, "空のクイズでも条件は保存する")
}
