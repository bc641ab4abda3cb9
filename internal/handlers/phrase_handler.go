// internal/handlers/phrase_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/service"
	"go_vocab_srs/internal/webutil"
)

type PhraseHandler struct {
	service service.PhraseService
	logger  *slog.Logger
}

func NewPhraseHandler(s service.PhraseService, logger *slog.Logger) *PhraseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PhraseHandler{service: s, logger: logger}
}

func (h *PhraseHandler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, h.service.Library(r.Context()), h.logger)
}

func (h *PhraseHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetPhraseDraft"))

	draft, err := h.service.GetDraft(r.Context())
	if err != nil {
		logger.Error("Error getting phrase draft", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, draft, logger)
}

func (h *PhraseHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SavePhraseDraft"))

	var req model.SavePhraseDraftRequest
	if !decodeAndValidate(w, r, logger, &req, false) {
		return
	}
	draft, err := h.service.SaveDraft(r.Context(), req.Text)
	if err != nil {
		logger.Error("Error saving phrase draft", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, draft, logger)
}

func (h *PhraseHandler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ClearPhraseDraft"))

	if err := h.service.ClearDraft(r.Context()); err != nil {
		logger.Error("Error clearing phrase draft", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondNoContent(w)
}

// InsertPhrase は本文に表現を差し込んだ結果を返す。保存はしない。
func (h *PhraseHandler) InsertPhrase(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "InsertPhrase"))

	var req model.InsertPhraseRequest
	if !decodeAndValidate(w, r, logger, &req, false) {
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, h.service.InsertPhrase(r.Context(), req.Text, req.Position, req.Phrase), logger)
}
