package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go_vocab_srs/internal/model"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes はリクエストボディの上限 (一括登録を考慮して大きめ)
const maxBodyBytes = 4 << 20

// DecodeJSONBody はリクエストボディをデコードします。
// ボディが空の場合は io.EOF をそのまま返すので、任意ボディのエンドポイントでは呼び出し側で判定してください。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return errors.Join(model.ErrInvalidInput, err)
	}
	return nil
}

// ValidateStruct はタグに基づいて検証し、最初のエラーを日本語メッセージの AppError にして返します。
func ValidateStruct(v interface{}) error {
	err := Validator.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	// 最初のエラーを代表としてクライアントに返す
	firstErr := validationErrors[0]
	return model.NewAppError(
		"VALIDATION_ERROR",
		firstErr.Translate(Trans),
		firstErr.Field(), // jsonタグ名
		model.ErrInvalidInput,
	)
}
