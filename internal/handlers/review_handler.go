// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/service"
	"go_vocab_srs/internal/webutil"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		service: s,
		logger:  logger,
	}
}

// GetDueCount は復習対象のカード数を返す
func (h *ReviewHandler) GetDueCount(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDueCount"))

	filter, err := filterFromQuery(r)
	if err != nil {
		logger.Warn("Invalid query parameter", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	count, err := h.service.CountDue(r.Context(), filter)
	if err != nil {
		logger.Error("Error counting due cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.DueCountResponse{Count: int(count)}, logger)
}

// StartSession は復習セッションを開始する。対象がない場合も empty: true で 201 を返す。
func (h *ReviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartSession"))

	var req model.StartSessionRequest
	if !decodeAndValidate(w, r, logger, &req, true) {
		return
	}

	view, err := h.service.StartSession(r.Context(), model.CardFilter{Category: req.Category, Difficulty: req.Difficulty})
	if err != nil {
		logger.Error("Error starting review session in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review session started", slog.String("session_id", view.SessionID.String()), slog.Int("remaining", view.Remaining))
	webutil.RespondWithJSON(w, http.StatusCreated, view, logger)
}

func (h *ReviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSession"))

	sessionID, ok := parseIDParam(w, r, logger, "session_id")
	if !ok {
		return
	}

	view, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		h.logServiceError(logger, "Error getting review session", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

func (h *ReviewHandler) GetCurrentCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCurrentCard"))

	sessionID, ok := parseIDParam(w, r, logger, "session_id")
	if !ok {
		return
	}

	card, err := h.service.CurrentCard(r.Context(), sessionID)
	if err != nil {
		h.logServiceError(logger, "Error getting current card", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.CurrentCardResponse{CurrentCard: card}, logger)
}

// RateCard は現在のカードを評価する。範囲外の評価は 1..5 に丸められる。
func (h *ReviewHandler) RateCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "RateCard"))

	sessionID, ok := parseIDParam(w, r, logger, "session_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("session_id", sessionID.String()))

	var req model.RateCardRequest
	if !decodeAndValidate(w, r, logger, &req, false) {
		return
	}

	outcome, err := h.service.RateCurrentCard(r.Context(), sessionID, *req.Quality)
	if err != nil {
		h.logServiceError(logger, "Error rating card", err)
		webutil.HandleError(w, logger, err)
		return
	}
	if outcome.Warning != "" {
		logger.Warn("Card rated with persistence warning")
	}
	webutil.RespondWithJSON(w, http.StatusOK, outcome, logger)
}

// AbandonSession はセッションを途中で終了し、集計を返す
func (h *ReviewHandler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AbandonSession"))

	sessionID, ok := parseIDParam(w, r, logger, "session_id")
	if !ok {
		return
	}

	summary, err := h.service.AbandonSession(r.Context(), sessionID)
	if err != nil {
		h.logServiceError(logger, "Error abandoning review session", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

func (h *ReviewHandler) logServiceError(logger *slog.Logger, msg string, err error) {
	if errors.Is(err, model.ErrSessionNotFound) || errors.Is(err, model.ErrSessionCompleted) {
		logger.Info(msg, slog.Any("error", err))
		return
	}
	logger.Error(msg, slog.Any("error", err))
}
