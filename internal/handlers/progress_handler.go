package handlers

import (
	"log/slog"
	"net/http"

	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/service"
	"go_vocab_srs/internal/webutil"
)

type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{service: s, logger: logger}
}

func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProgress"))

	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		logger.Error("Error getting progress snapshot", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, snap, logger)
}

// SaveFilter は次回の学習で使う絞り込み条件を保存する
func (h *ProgressHandler) SaveFilter(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SaveFilter"))

	var req model.SaveFilterRequest
	if !decodeAndValidate(w, r, logger, &req, false) {
		return
	}
	saved := h.service.RememberFilter(r.Context(), model.CardFilter{Category: req.Category, Difficulty: req.Difficulty})
	webutil.RespondWithJSON(w, http.StatusOK, saved, logger)
}
