package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_vocab_srs/internal/handlers"
	"go_vocab_srs/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestExamHandler(t *testing.T) {
	examID := uuid.New()
	base := "/api/v1/exams/" + examID.String()

	t.Run("正常系: 試験形式一覧", func(t *testing.T) {
		s := newTestServices(t)
		s.exam.On("ListTypes", mock.Anything).Return(model.ExamTypes()).Once()

		rr := s.do(t, http.MethodGet, "/api/v1/exams/types", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"duration_minutes":180`)
	})

	t.Run("正常系: 開始", func(t *testing.T) {
		s := newTestServices(t)
		s.exam.On("StartExam", mock.Anything, model.ExamEssay).
			Return(&model.ExamView{ExamID: examID, Type: model.ExamEssay, RemainingSeconds: 7200, Running: true}, nil).Once()

		rr := s.do(t, http.MethodPost, "/api/v1/exams", model.StartExamRequest{Type: model.ExamEssay})
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"remaining_seconds":7200`)
	})

	t.Run("異常系: 不明な形式", func(t *testing.T) {
		s := newTestServices(t)
		rr := s.do(t, http.MethodPost, "/api/v1/exams", `{"type":"oral"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assertErrorCode(t, rr, "VALIDATION_ERROR")
	})

	t.Run("正常系: 下書き保存", func(t *testing.T) {
		s := newTestServices(t)
		s.exam.On("SaveDraft", mock.Anything, examID, "draft text").Return(nil).Once()

		rr := s.do(t, http.MethodPut, base+"/draft", model.ExamAnswerRequest{Answer: "draft text"})
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("正常系: タイマー切り替え", func(t *testing.T) {
		s := newTestServices(t)
		s.exam.On("ToggleTimer", mock.Anything, examID).Return(&model.ExamView{ExamID: examID, Running: false}, nil).Once()

		rr := s.do(t, http.MethodPost, base+"/timer", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"running":false`)
	})

	t.Run("正常系: 提出", func(t *testing.T) {
		s := newTestServices(t)
		s.exam.On("Submit", mock.Anything, examID, "one two three").
			Return(&model.ExamResult{Type: model.ExamEssay, WordCount: 3, DurationUsed: 60}, nil).Once()

		rr := s.do(t, http.MethodPost, base+"/submit", model.ExamAnswerRequest{Answer: "one two three"})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"word_count":3`)
	})

	t.Run("異常系: 提出済み", func(t *testing.T) {
		s := newTestServices(t)
		s.exam.On("Submit", mock.Anything, examID, "again").
			Return(nil, model.NewAppError("EXAM_FINISHED", "この試験は既に終了しています。", "", model.ErrExamFinished)).Once()

		rr := s.do(t, http.MethodPost, base+"/submit", model.ExamAnswerRequest{Answer: "again"})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("異常系: 存在しない試験", func(t *testing.T) {
		s := newTestServices(t)
		s.exam.On("GetExam", mock.Anything, examID).
			Return(nil, model.NewAppError("EXAM_NOT_FOUND", "試験が見つかりません。", "exam_id", model.ErrExamNotFound)).Once()

		rr := s.do(t, http.MethodGet, base, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("正常系: 破棄", func(t *testing.T) {
		s := newTestServices(t)
		s.exam.On("Abandon", mock.Anything, examID).Return(nil).Once()

		rr := s.do(t, http.MethodDelete, base, nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestProgressHandler_GetProgress(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		s := newTestServices(t)
		s.progress.On("Snapshot", mock.Anything).
			Return(&model.ProgressSnapshot{TotalReviewed: 10, CurrentStreak: 1, BestStreak: 4, DailyGoal: 50}, nil).Once()

		rr := s.do(t, http.MethodGet, "/api/v1/progress", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"best_streak":4`)
	})

	t.Run("異常系: サービスエラー", func(t *testing.T) {
		s := newTestServices(t)
		s.progress.On("Snapshot", mock.Anything).Return(nil, errors.New("db down")).Once()

		rr := s.do(t, http.MethodGet, "/api/v1/progress", nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestProgressHandler_SaveFilter(t *testing.T) {
	two := 2

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(s *testServices)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "正常系: カテゴリと難易度",
			body: `{"category":"business","difficulty":2}`,
			setupMock: func(s *testServices) {
				s.progress.On("RememberFilter", mock.Anything, model.CardFilter{Category: "business", Difficulty: &two}).
					Return(model.SavedFilter{Category: "business", Difficulty: &two}).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"category":"business"`,
		},
		{
			name: "正常系: 空の条件",
			body: `{}`,
			setupMock: func(s *testServices) {
				s.progress.On("RememberFilter", mock.Anything, model.CardFilter{}).
					Return(model.SavedFilter{Category: model.FilterAll}).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"category":"all"`,
		},
		{
			name:           "異常系: 難易度が範囲外",
			body:           `{"difficulty":7}`,
			setupMock:      func(s *testServices) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: 不正なJSON",
			body:           `{"category":`,
			setupMock:      func(s *testServices) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "INVALID_REQUEST_BODY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t)
			tt.setupMock(s)

			rr := s.do(t, http.MethodPut, "/api/v1/progress/filters", tt.body)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}

func TestHistoryHandler_GetHistory(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(s *testServices)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "正常系: 種類と件数",
			query: "?kind=quiz&limit=5",
			setupMock: func(s *testServices) {
				s.history.On("List", mock.Anything, model.HistoryQuiz, 5).
					Return([]*model.HistoryEntry{{HistoryID: uuid.New(), Kind: model.HistoryQuiz, Score: 8, Total: 10}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"kind":"quiz"`,
		},
		{
			name:  "正常系: 履歴なし",
			query: "",
			setupMock: func(s *testServices) {
				s.history.On("List", mock.Anything, model.HistoryKind(""), 0).Return(nil, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "異常系: limitが数値でない",
			query:          "?limit=abc",
			setupMock:      func(s *testServices) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "INVALID_QUERY_PARAM",
		},
		{
			name:  "異常系: 不明な種類",
			query: "?kind=dictation",
			setupMock: func(s *testServices) {
				s.history.On("List", mock.Anything, model.HistoryKind("dictation"), 0).
					Return(nil, model.NewAppError("VALIDATION_ERROR", "履歴の種類が正しくありません。", "kind", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t)
			tt.setupMock(s)

			rr := s.do(t, http.MethodGet, "/api/v1/history"+tt.query, nil)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		ping           func(ctx context.Context) error
		expectedStatus int
	}{
		{name: "正常系", ping: func(context.Context) error { return nil }, expectedStatus: http.StatusOK},
		{name: "異常系: DBに接続できない", ping: func(context.Context) error { return errors.New("refused") }, expectedStatus: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handlers.HealthHandler(tt.ping, nil)(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
