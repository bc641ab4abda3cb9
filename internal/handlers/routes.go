// internal/handlers/routes.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"go_vocab_srs/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// Handlers はルーティングに登録するハンドラ一式
type Handlers struct {
	Card     *CardHandler
	Review   *ReviewHandler
	Quiz     *QuizHandler
	Progress *ProgressHandler
	Exam     *ExamHandler
	History  *HistoryHandler
	Phrase   *PhraseHandler
}

// RegisterRoutes は /api/v1 以下のルートを登録する
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cards", func(r chi.Router) {
			r.Post("/", h.Card.PostCard)
			r.Get("/", h.Card.GetCards)
			r.Post("/import", h.Card.ImportCards)
			r.Get("/{card_id}", h.Card.GetCard)
			r.Delete("/{card_id}", h.Card.DeleteCard)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/due-count", h.Review.GetDueCount)
			r.Post("/sessions", h.Review.StartSession)
			r.Get("/sessions/{session_id}", h.Review.GetSession)
			r.Get("/sessions/{session_id}/current", h.Review.GetCurrentCard)
			r.Post("/sessions/{session_id}/rate", h.Review.RateCard)
			r.Delete("/sessions/{session_id}", h.Review.AbandonSession)
		})

		r.Route("/quizzes", func(r chi.Router) {
			r.Post("/", h.Quiz.StartQuiz)
			r.Get("/{quiz_id}/question", h.Quiz.GetQuestion)
			r.Post("/{quiz_id}/answers", h.Quiz.SubmitAnswer)
			r.Get("/{quiz_id}/results", h.Quiz.GetResults)
			r.Post("/{quiz_id}/mistakes", h.Quiz.ReviewMistakes)
			r.Delete("/{quiz_id}", h.Quiz.DiscardQuiz)
		})

		r.Get("/progress", h.Progress.GetProgress)
		r.Put("/progress/filters", h.Progress.SaveFilter)

		r.Route("/exams", func(r chi.Router) {
			r.Get("/types", h.Exam.GetTypes)
			r.Post("/", h.Exam.StartExam)
			r.Get("/{exam_id}", h.Exam.GetExam)
			r.Post("/{exam_id}/timer", h.Exam.ToggleTimer)
			r.Put("/{exam_id}/draft", h.Exam.SaveDraft)
			r.Post("/{exam_id}/submit", h.Exam.Submit)
			r.Delete("/{exam_id}", h.Exam.Abandon)
		})

		r.Route("/phrases", func(r chi.Router) {
			r.Get("/", h.Phrase.GetLibrary)
			r.Get("/draft", h.Phrase.GetDraft)
			r.Put("/draft", h.Phrase.SaveDraft)
			r.Delete("/draft", h.Phrase.ClearDraft)
			r.Post("/insert", h.Phrase.InsertPhrase)
		})

		r.Get("/history", h.History.GetHistory)
	})
}

// HealthHandler はDBへの疎通を確認する。ping が nil なら常に OK。
func HealthHandler(ping func(ctx context.Context) error, logger *slog.Logger) http.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				logger.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
				webutil.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, logger)
				return
			}
		}
		webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}
