// internal/handlers/quiz_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/service"
	"go_vocab_srs/internal/webutil"
)

type QuizHandler struct {
	service service.QuizService
	logger  *slog.Logger
}

func NewQuizHandler(s service.QuizService, logger *slog.Logger) *QuizHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{
		service: s,
		logger:  logger,
	}
}

func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartQuiz"))

	var req model.StartQuizRequest
	if !decodeAndValidate(w, r, logger, &req, true) {
		return
	}

	view, err := h.service.StartQuiz(r.Context(), model.CardFilter{Category: req.Category, Difficulty: req.Difficulty}, req.Size)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientDistractors) {
			logger.Warn("Quiz could not be built", slog.Any("error", err))
		} else {
			logger.Error("Error starting quiz in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Quiz started", slog.String("quiz_id", view.QuizID.String()), slog.Int("total", view.Total), slog.Bool("empty", view.Empty))
	webutil.RespondWithJSON(w, http.StatusCreated, view, logger)
}

func (h *QuizHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuestion"))

	quizID, ok := parseIDParam(w, r, logger, "quiz_id")
	if !ok {
		return
	}

	view, err := h.service.CurrentQuestion(r.Context(), quizID)
	if err != nil {
		h.logServiceError(logger, "Error getting current question", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitAnswer"))

	quizID, ok := parseIDParam(w, r, logger, "quiz_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("quiz_id", quizID.String()))

	var req model.SubmitAnswerRequest
	if !decodeAndValidate(w, r, logger, &req, false) {
		return
	}

	outcome, err := h.service.Answer(r.Context(), quizID, req.Selected)
	if err != nil {
		h.logServiceError(logger, "Error submitting answer", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, outcome, logger)
}

func (h *QuizHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetResults"))

	quizID, ok := parseIDParam(w, r, logger, "quiz_id")
	if !ok {
		return
	}

	result, err := h.service.Results(r.Context(), quizID)
	if err != nil {
		h.logServiceError(logger, "Error getting quiz results", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// ReviewMistakes は間違えた問題だけでクイズを作り直す。ミスがなければ no_mistakes: true を返す。
func (h *QuizHandler) ReviewMistakes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ReviewMistakes"))

	quizID, ok := parseIDParam(w, r, logger, "quiz_id")
	if !ok {
		return
	}

	view, err := h.service.ReviewMistakes(r.Context(), quizID)
	if err != nil {
		if errors.Is(err, model.ErrNoMistakes) {
			logger.Info("No mistakes to review", slog.String("quiz_id", quizID.String()))
			webutil.RespondWithJSON(w, http.StatusOK, model.NoMistakesResponse{NoMistakes: true}, logger)
			return
		}
		h.logServiceError(logger, "Error starting mistakes review", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, view, logger)
}

func (h *QuizHandler) DiscardQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DiscardQuiz"))

	quizID, ok := parseIDParam(w, r, logger, "quiz_id")
	if !ok {
		return
	}

	if err := h.service.DiscardQuiz(r.Context(), quizID); err != nil {
		h.logServiceError(logger, "Error discarding quiz", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondNoContent(w)
}

func (h *QuizHandler) logServiceError(logger *slog.Logger, msg string, err error) {
	switch {
	case errors.Is(err, model.ErrQuizNotFound),
		errors.Is(err, model.ErrQuizCompleted),
		errors.Is(err, model.ErrQuizNotComplete),
		errors.Is(err, model.ErrInsufficientDistractors):
		logger.Info(msg, slog.Any("error", err))
	default:
		logger.Error(msg, slog.Any("error", err))
	}
}
