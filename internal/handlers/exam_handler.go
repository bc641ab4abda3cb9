// internal/handlers/exam_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/service"
	"go_vocab_srs/internal/webutil"
)

type ExamHandler struct {
	service service.ExamService
	logger  *slog.Logger
}

func NewExamHandler(s service.ExamService, logger *slog.Logger) *ExamHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExamHandler{service: s, logger: logger}
}

func (h *ExamHandler) GetTypes(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, h.service.ListTypes(r.Context()), h.logger)
}

func (h *ExamHandler) StartExam(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartExam"))

	var req model.StartExamRequest
	if !decodeAndValidate(w, r, logger, &req, false) {
		return
	}

	view, err := h.service.StartExam(r.Context(), req.Type)
	if err != nil {
		h.logServiceError(logger, "Error starting exam", err)
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Exam started", slog.String("exam_id", view.ExamID.String()), slog.String("type", string(view.Type)))
	webutil.RespondWithJSON(w, http.StatusCreated, view, logger)
}

func (h *ExamHandler) GetExam(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetExam"))

	examID, ok := parseIDParam(w, r, logger, "exam_id")
	if !ok {
		return
	}
	view, err := h.service.GetExam(r.Context(), examID)
	if err != nil {
		h.logServiceError(logger, "Error getting exam", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

// ToggleTimer はタイマーの一時停止・再開を切り替える
func (h *ExamHandler) ToggleTimer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ToggleTimer"))

	examID, ok := parseIDParam(w, r, logger, "exam_id")
	if !ok {
		return
	}
	view, err := h.service.ToggleTimer(r.Context(), examID)
	if err != nil {
		h.logServiceError(logger, "Error toggling exam timer", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

func (h *ExamHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SaveDraft"))

	examID, ok := parseIDParam(w, r, logger, "exam_id")
	if !ok {
		return
	}
	var req model.ExamAnswerRequest
	if !decodeAndValidate(w, r, logger, &req, false) {
		return
	}
	if err := h.service.SaveDraft(r.Context(), examID, req.Answer); err != nil {
		h.logServiceError(logger, "Error saving exam draft", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondNoContent(w)
}

func (h *ExamHandler) Submit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Submit"))

	examID, ok := parseIDParam(w, r, logger, "exam_id")
	if !ok {
		return
	}
	var req model.ExamAnswerRequest
	if !decodeAndValidate(w, r, logger, &req, false) {
		return
	}
	result, err := h.service.Submit(r.Context(), examID, req.Answer)
	if err != nil {
		h.logServiceError(logger, "Error submitting exam", err)
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Exam submitted", slog.String("exam_id", examID.String()), slog.Int("word_count", result.WordCount))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func (h *ExamHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AbandonExam"))

	examID, ok := parseIDParam(w, r, logger, "exam_id")
	if !ok {
		return
	}
	if err := h.service.Abandon(r.Context(), examID); err != nil {
		h.logServiceError(logger, "Error abandoning exam", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondNoContent(w)
}

func (h *ExamHandler) logServiceError(logger *slog.Logger, msg string, err error) {
	switch {
	case errors.Is(err, model.ErrExamNotFound),
		errors.Is(err, model.ErrExamFinished),
		errors.Is(err, model.ErrUnknownExamType):
		logger.Info(msg, slog.Any("error", err))
	default:
		logger.Error(msg, slog.Any("error", err))
	}
}
