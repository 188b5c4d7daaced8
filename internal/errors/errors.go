// Package errors provides the application error taxonomy.
// Services return *AppError values so handlers can render a consistent
// {sucesso:false, erro, codigo} envelope without leaking internal details.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"codigo"`
	Message    string `json:"erro"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code, so wrapped or re-messaged copies of a
// sentinel still satisfy errors.Is(err, ErrNotFound)-style checks.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Dados inválidos", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Registro não encontrado", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Erro interno no servidor", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "Usuário não encontrado", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "Já existe um usuário com este e-mail", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Categoria não encontrada", StatusCode: http.StatusNotFound}
	ErrCategoryInUse     = &AppError{Code: "CATEGORY_IN_USE", Message: "Categoria utilizada por lançamentos existentes", StatusCode: http.StatusConflict}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "Já existe uma categoria com este nome", StatusCode: http.StatusConflict}
)

// Family member errors.
var (
	ErrFamilyMemberNotFound = &AppError{Code: "FAMILY_MEMBER_NOT_FOUND", Message: "Familiar não encontrado", StatusCode: http.StatusNotFound}
	ErrFamilyMemberInUse    = &AppError{Code: "FAMILY_MEMBER_IN_USE", Message: "Familiar vinculado a lançamentos existentes", StatusCode: http.StatusConflict}
)

// Destination errors.
var (
	ErrDestinationNotFound = &AppError{Code: "DESTINATION_NOT_FOUND", Message: "Destino não encontrado", StatusCode: http.StatusNotFound}
	ErrDestinationInUse    = &AppError{Code: "DESTINATION_IN_USE", Message: "Destino vinculado a lançamentos existentes", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Lançamento não encontrado", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Tipo de lançamento não suportado", StatusCode: http.StatusBadRequest}
	ErrInvalidDeleteScope     = &AppError{Code: "INVALID_DELETE_SCOPE", Message: "Escopo de exclusão inválido", StatusCode: http.StatusBadRequest}
	ErrInvalidInstallments    = &AppError{Code: "INVALID_INSTALLMENTS", Message: "Quantidade de parcelas inválida", StatusCode: http.StatusBadRequest}
)
