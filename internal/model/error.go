// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用

	ErrSessionNotFound         = errors.New("review session not found")
	ErrSessionCompleted        = errors.New("review session already completed")
	ErrQuizNotFound            = errors.New("quiz not found")
	ErrQuizNotComplete         = errors.New("quiz is not complete yet")
	ErrQuizCompleted           = errors.New("quiz already completed")
	ErrNoMistakes              = errors.New("no mistakes to review")
	ErrInsufficientDistractors = errors.New("not enough distinct answers to build choices")
	ErrExamNotFound            = errors.New("exam not found")
	ErrExamFinished            = errors.New("exam already finished")
	ErrUnknownExamType         = errors.New("unknown exam type")
)

// ErrorDetail はクライアントへ返すエラー情報
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はセンチネルエラーをラップし、レスポンス用の詳細を持つ
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
