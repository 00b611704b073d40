package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrRecordNotFound возвращается хранилищем, если запись отсутствует
var ErrRecordNotFound = errors.New("record not found")

// DuplicateError - нарушение ограничения уникальности в хранилище
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate record: %s", e.Constraint)
}

// ValidationError - некорректный ввод, сообщения сгруппированы по полям (HTTP 400)
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Merge добавляет сообщения из m под тем же ключом
func (e *ValidationError) Merge(m map[string][]string) {
	for field, msgs := range m {
		for _, msg := range msgs {
			e.Add(field, msg)
		}
	}
}

// Err возвращает nil, если ошибок нет
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation error: " + strings.Join(parts, ", ")
}

const blankMessage = "this field may not be blank"

// isBlank: значение передано, непустое, но состоит из пробелов.
// Пустую строку отклоняют правила required/min.
func isBlank(s *string) bool {
	return s != nil && *s != "" && strings.TrimSpace(*s) == ""
}

func checkNotBlank(verr *ValidationError, field string, s *string) {
	if isBlank(s) {
		verr.Add(field, blankMessage)
	}
}

// NotFoundError - запрошенная сущность не существует (HTTP 404)
type NotFoundError struct {
	Resource string
	ID       int64
	Detail   string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// PermissionError - не пройдена проверка роли или владения (HTTP 403)
type PermissionError struct {
	Action string
}

func (e *PermissionError) Error() string {
	if e.Action == "" {
		return "you do not have permission to perform this action"
	}
	return "you do not have permission to " + e.Action
}

// AuthenticationError - нет или неверные учетные данные (HTTP 401)
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication credentials were not provided"
}
