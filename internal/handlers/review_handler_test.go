package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go_vocab_srs/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewHandler_StartSession(t *testing.T) {
	sessionID := uuid.New()

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(s *testServices)
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name: "正常系: ボディなしは全カード",
			body: nil,
			setupMock: func(s *testServices) {
				s.review.On("StartSession", mock.Anything, model.CardFilter{}).
					Return(&model.SessionView{SessionID: sessionID, State: model.SessionActive, Remaining: 3}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, body []byte) {
				var view model.SessionView
				require.NoError(t, json.Unmarshal(body, &view))
				assert.Equal(t, sessionID, view.SessionID)
				assert.Contains(t, string(body), `"state":"active"`)
			},
		},
		{
			name: "正常系: 対象なしは空のビュー",
			body: model.StartSessionRequest{Category: "business"},
			setupMock: func(s *testServices) {
				s.review.On("StartSession", mock.Anything, model.CardFilter{Category: "business"}).
					Return(&model.SessionView{SessionID: sessionID, State: model.SessionCompleted, Empty: true}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), `"empty":true`)
				assert.Contains(t, string(body), `"current_card":null`)
			},
		},
		{
			name:           "異常系: 難易度が範囲外",
			body:           `{"difficulty":9}`,
			setupMock:      func(s *testServices) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t)
			tt.setupMock(s)

			rr := s.do(t, http.MethodPost, "/api/v1/reviews/sessions", tt.body)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.check != nil {
				tt.check(t, rr.Body.Bytes())
			}
		})
	}
}

func TestReviewHandler_RateCard(t *testing.T) {
	sessionID := uuid.New()
	path := "/api/v1/reviews/sessions/" + sessionID.String() + "/rate"

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(s *testServices)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "正常系: 範囲外の評価もサービスに渡す",
			body: `{"quality":9}`,
			setupMock: func(s *testServices) {
				s.review.On("RateCurrentCard", mock.Anything, sessionID, 9).
					Return(&model.RateOutcome{Quality: 5, Correct: true, Remaining: 2}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"quality":5`,
		},
		{
			name: "正常系: 保存失敗の警告",
			body: `{"quality":3}`,
			setupMock: func(s *testServices) {
				s.review.On("RateCurrentCard", mock.Anything, sessionID, 3).
					Return(&model.RateOutcome{Quality: 3, Warning: "学習状態の保存に失敗しました。"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"warning":"学習状態の保存に失敗しました。"`,
		},
		{
			name:           "異常系: 評価なし",
			body:           `{}`,
			setupMock:      func(s *testServices) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "評価は必須項目です。",
		},
		{
			name: "異常系: 完了済みセッション",
			body: `{"quality":4}`,
			setupMock: func(s *testServices) {
				s.review.On("RateCurrentCard", mock.Anything, sessionID, 4).
					Return(nil, model.NewAppError("SESSION_COMPLETED", "このセッションは既に終了しています。", "", model.ErrSessionCompleted)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "SESSION_COMPLETED",
		},
		{
			name: "異常系: 存在しないセッション",
			body: `{"quality":4}`,
			setupMock: func(s *testServices) {
				s.review.On("RateCurrentCard", mock.Anything, sessionID, 4).
					Return(nil, model.NewAppError("SESSION_NOT_FOUND", "セッションが見つかりません。", "session_id", model.ErrSessionNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "SESSION_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t)
			tt.setupMock(s)

			rr := s.do(t, http.MethodPost, path, tt.body)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}

func TestReviewHandler_SessionEndpoints(t *testing.T) {
	sessionID := uuid.New()
	base := "/api/v1/reviews/sessions/" + sessionID.String()

	t.Run("正常系: 現在のカード", func(t *testing.T) {
		s := newTestServices(t)
		s.review.On("CurrentCard", mock.Anything, sessionID).
			Return(&model.ReviewCardView{CardID: uuid.New(), Front: "however", Back: "cependant"}, nil).Once()

		rr := s.do(t, http.MethodGet, base+"/current", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"front":"however"`)
	})

	t.Run("正常系: 完了後の現在のカードはnull", func(t *testing.T) {
		s := newTestServices(t)
		s.review.On("CurrentCard", mock.Anything, sessionID).Return(nil, nil).Once()

		rr := s.do(t, http.MethodGet, base+"/current", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"current_card":null}`, rr.Body.String())
	})

	t.Run("正常系: セッション取得", func(t *testing.T) {
		s := newTestServices(t)
		s.review.On("GetSession", mock.Anything, sessionID).
			Return(&model.SessionView{SessionID: sessionID, State: model.SessionActive, Remaining: 1}, nil).Once()

		rr := s.do(t, http.MethodGet, base, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"remaining":1`)
	})

	t.Run("正常系: 中断", func(t *testing.T) {
		s := newTestServices(t)
		s.review.On("AbandonSession", mock.Anything, sessionID).
			Return(&model.SessionSummary{Reviewed: 2, Correct: 1, Accuracy: 0.5, Abandoned: true}, nil).Once()

		rr := s.do(t, http.MethodDelete, base, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"abandoned":true`)
	})

	t.Run("正常系: 復習対象数", func(t *testing.T) {
		s := newTestServices(t)
		s.review.On("CountDue", mock.Anything, model.CardFilter{Category: "general"}).Return(int64(7), nil).Once()

		rr := s.do(t, http.MethodGet, "/api/v1/reviews/due-count?category=general", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"count":7}`, rr.Body.String())
	})
}
