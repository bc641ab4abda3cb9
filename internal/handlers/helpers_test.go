// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"go_vocab_srs/internal/handlers"
	"go_vocab_srs/internal/model"
	svc_mocks "go_vocab_srs/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServices はルーター経由でハンドラを呼ぶためのモック一式
type testServices struct {
	card     *svc_mocks.CardService
	review   *svc_mocks.ReviewService
	quiz     *svc_mocks.QuizService
	progress *svc_mocks.ProgressService
	exam     *svc_mocks.ExamService
	history  *svc_mocks.HistoryService
	phrase   *svc_mocks.PhraseService
	router   *chi.Mux
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil)) // ログ出力を抑制
	s := &testServices{
		card:     svc_mocks.NewCardService(t),
		review:   svc_mocks.NewReviewService(t),
		quiz:     svc_mocks.NewQuizService(t),
		progress: svc_mocks.NewProgressService(t),
		exam:     svc_mocks.NewExamService(t),
		history:  svc_mocks.NewHistoryService(t),
		phrase:   svc_mocks.NewPhraseService(t),
		router:   chi.NewRouter(),
	}
	handlers.RegisterRoutes(s.router, handlers.Handlers{
		Card:     handlers.NewCardHandler(s.card, testLogger),
		Review:   handlers.NewReviewHandler(s.review, testLogger),
		Quiz:     handlers.NewQuizHandler(s.quiz, testLogger),
		Progress: handlers.NewProgressHandler(s.progress, testLogger),
		Exam:     handlers.NewExamHandler(s.exam, testLogger),
		History:  handlers.NewHistoryHandler(s.history, testLogger),
		Phrase:   handlers.NewPhraseHandler(s.phrase, testLogger),
	})
	return s
}

// do はリクエストを組み立ててルーターで処理する。body が string の場合はそのまま送る。
func (s *testServices) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody io.Reader
	if body != nil {
		if bodyStr, ok := body.(string); ok {
			reqBody = strings.NewReader(bodyStr)
		} else {
			jsonData, err := json.Marshal(body)
			require.NoError(t, err)
			reqBody = bytes.NewBuffer(jsonData)
		}
	}
	req := httptest.NewRequest(method, target, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

// assertErrorCode はエラーレスポンスのコードを検証する
func assertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, wantCode string) {
	t.Helper()
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	assert.Equal(t, wantCode, resp.Error.Code)
}
