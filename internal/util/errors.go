package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

type ErrorType string

const (
	ErrTypeConfig ErrorType = "config"
	ErrTypeArgs   ErrorType = "args"
	ErrTypeIO     ErrorType = "io"
)

// AppError tags an error with the subsystem that produced it.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func NewError(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError of the same type.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type
}

func IsExpectedError(err error) bool {
	return err == nil ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, os.ErrClosed)
}
