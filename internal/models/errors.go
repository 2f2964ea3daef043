package models

import (
	"errors"
	"fmt"
)

// ErrNotFound - инцидент с указанным id не существует
var ErrNotFound = errors.New("incident not found")

// ValidationError - первое нарушенное ограничение входных данных
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError - попытка вернуть статус назад по автомату состояний
type InvalidTransitionError struct {
	Field string
	From  string
	To    string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition from %s to %s", e.Field, e.From, e.To)
}

// AuthorizationError - у вызывающего нет нужной возможности
type AuthorizationError struct {
	CallerID string
	Action   Action
}

func (e *AuthorizationError) Error() string {
	if e.CallerID == "" {
		return fmt.Sprintf("anonymous caller is not allowed to %s", e.Action)
	}
	return fmt.Sprintf("caller %s is not allowed to %s", e.CallerID, e.Action)
}

// PersistenceError - хранилище недоступно или нарушено ограничение БД
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure on %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
