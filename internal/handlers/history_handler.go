package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/service"
	"go_vocab_srs/internal/webutil"
)

type HistoryHandler struct {
	service service.HistoryService
	logger  *slog.Logger
}

func NewHistoryHandler(s service.HistoryService, logger *slog.Logger) *HistoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryHandler{service: s, logger: logger}
}

// GetHistory は ?kind=review|quiz|exam&limit=N で履歴を新しい順に返す
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetHistory"))

	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 500 {
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "limitは0から500で指定してください。", "limit", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		limit = n
	}

	entries, err := h.service.List(r.Context(), model.HistoryKind(q.Get("kind")), limit)
	if err != nil {
		logger.Warn("Error listing history", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if entries == nil {
		entries = []*model.HistoryEntry{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, entries, logger)
}
