package apperrors

import (
	"errors"
	"fmt"
)

// Базовые категории ошибок ядра. Проверяются через errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("not found")
	ErrTransaction = errors.New("transaction failed")
)

// Error описывает ошибку с категорией, сообщением для клиента и исходной причиной
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Is позволяет сравнивать ошибку с категорией: errors.Is(err, ErrConflict)
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation создает ошибку валидации входных данных
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict создает ошибку конфликта (дубликат payment_id, повторное решение по согласованию)
func Conflict(message string, cause error) error {
	return &Error{Kind: ErrConflict, Message: message, Cause: cause}
}

// NotFound создает ошибку отсутствующего ресурса
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Transaction оборачивает сбой хранилища внутри транзакции; вызывающий может повторить запрос
func Transaction(message string, cause error) error {
	return &Error{Kind: ErrTransaction, Message: message, Cause: cause}
}

// IsRetryable сообщает, можно ли клиенту повторить операцию
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransaction)
}

// Message возвращает сообщение для клиента без внутренней причины
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
