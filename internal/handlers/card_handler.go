// internal/handlers/card_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/service"
	"go_vocab_srs/internal/webutil"
)

type CardHandler struct {
	service service.CardService
	logger  *slog.Logger
}

func NewCardHandler(s service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		service: s,
		logger:  logger,
	}
}

// PostCard は新しいカードを作成するためのハンドラ
func (h *CardHandler) PostCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCard"))

	var req model.CreateCardRequest
	if !decodeAndValidate(w, r, logger, &req, false) {
		return
	}

	card, err := h.service.CreateCard(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			logger.Info("Card already exists", slog.String("front", req.Front))
		} else {
			logger.Error("Error creating card in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card created successfully", slog.String("card_id", card.CardID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, card, logger)
}

// GetCards はカード一覧を取得するためのハンドラ
func (h *CardHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCards"))

	filter, err := filterFromQuery(r)
	if err != nil {
		logger.Warn("Invalid query parameter", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	cards, err := h.service.ListCards(r.Context(), filter)
	if err != nil {
		logger.Error("Error listing cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []*model.Card{}
	}
	logger.Info("Cards listed successfully", slog.Int("count", len(cards)))
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCard"))

	cardID, ok := parseIDParam(w, r, logger, "card_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("card_id", cardID.String()))

	card, err := h.service.GetCard(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Card not found in service")
		} else {
			logger.Error("Error getting card from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCard"))

	cardID, ok := parseIDParam(w, r, logger, "card_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("card_id", cardID.String()))

	if err := h.service.DeleteCard(r.Context(), cardID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Card to delete not found")
		} else {
			logger.Error("Error deleting card in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card deleted successfully")
	webutil.RespondNoContent(w)
}

// ImportCards はカードをまとめて登録する。既存の表面はスキップされる。
func (h *CardHandler) ImportCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ImportCards"))

	var req model.ImportCardsRequest
	if !decodeAndValidate(w, r, logger, &req, false) {
		return
	}

	result, err := h.service.ImportCards(r.Context(), req.Cards)
	if err != nil {
		logger.Error("Error importing cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Cards imported successfully", slog.Int("created", result.Created), slog.Int("skipped", len(result.Skipped)))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
