// Package apperror はストア由来の失敗をクライアント向けの結果に分類します。
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType はエラーの種別です。
type ErrorType int

const (
	// DBError はストアまたはコネクション取得に起因する失敗です。
	DBError ErrorType = iota
	// NotFoundError は存在しないエンティティを参照したリクエストです。
	NotFoundError
)

func (t ErrorType) String() string {
	switch t {
	case DBError:
		return "DBError"
	case NotFoundError:
		return "NotFoundError"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(t))
	}
}

const (
	defaultNotFoundMessage = "The request item was not found"
	defaultMessage         = "An unexpected error has occurred"
)

// AppError は分類済みのエラーです。
// Message はクライアントに返す文言、Cause は診断用でクライアントには出しません。
// 空文字列は「未設定」を意味します。
type AppError struct {
	Message string
	Cause   string
	Type    ErrorType

	err error
}

// Error はログ用の文字列を返します。Cause を含むのでレスポンスには使いません。
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: message=%q cause=%q", e.Type, e.Message, e.Cause)
}

// Unwrap は元になった下位エラーを返します。
func (e *AppError) Unwrap() error {
	return e.err
}

// UserMessage はクライアント向けのメッセージを解決します。
func (e *AppError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Type == NotFoundError {
		return defaultNotFoundMessage
	}
	return defaultMessage
}

// StatusCode はHTTPステータスコードを返します。
func (e *AppError) StatusCode() int {
	switch e.Type {
	case NotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromDB はプールやストアの失敗を DBError に変換します。
// メッセージは設定しないので汎用の文言になります。
func FromDB(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Cause: err.Error(),
		Type:  DBError,
		err:   err,
	}
}

// NotFound は NotFoundError を作成します。message が空ならデフォルト文言になります。
func NotFound(message string) *AppError {
	return &AppError{Message: message, Type: NotFoundError}
}

// As は err から *AppError を取り出します。
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
