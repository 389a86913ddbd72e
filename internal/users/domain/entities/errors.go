package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUserNotFound возвращают репозитории, когда запись не найдена.
// Слой доступа к данным превращает ее в отсутствие результата, а не в ошибку.
var ErrUserNotFound = errors.New("user not found")

// ErrStore - общий признак отказа хранилища, см. StoreError.
var ErrStore = errors.New("store operation failed")

// FieldViolation - одно нарушенное правило поля.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError содержит все нарушения правил, найденные при создании.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Extensions отдается клиентам GraphQL в поле extensions ошибки.
func (e *ValidationError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":       "VALIDATION_FAILED",
		"violations": e.Violations,
	}
}

// StoreError оборачивает ошибку драйвера хранилища с именем операции.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError создает StoreError для операции op.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is позволяет сравнивать любую StoreError с ErrStore.
func (e *StoreError) Is(target error) bool { return target == ErrStore }
