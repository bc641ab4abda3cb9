// internal/handlers/params.go
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go_vocab_srs/internal/model"
	"go_vocab_srs/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// parseIDParam はURLパラメータのUUIDを読み取る。失敗した場合はエラーレスポンスを書いて false を返す。
func parseIDParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid ID format in URL", slog.String(key, raw), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", key+"の形式が正しくありません。", key, model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate はボディをデコードして検証する。optional が true なら空ボディを許す。
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}, optional bool) bool {
	if err := webutil.DecodeJSONBody(r, dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return false
	}
	if err := webutil.ValidateStruct(dst); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return false
	}
	return true
}

// filterFromQuery は ?category=&difficulty= から絞り込み条件を作る
func filterFromQuery(r *http.Request) (model.CardFilter, error) {
	q := r.URL.Query()
	filter := model.CardFilter{Category: strings.TrimSpace(q.Get("category"))}
	if raw := strings.TrimSpace(q.Get("difficulty")); raw != "" && !strings.EqualFold(raw, model.FilterAll) {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 1 || d > 5 {
			return filter, model.NewAppError("INVALID_QUERY_PARAM", "難易度は1から5で指定してください。", "difficulty", model.ErrInvalidInput)
		}
		filter.Difficulty = &d
	}
	return filter, nil
}
