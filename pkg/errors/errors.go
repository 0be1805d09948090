package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfigLoad = errors.New("config load failed")
	ErrPidFile    = errors.New("pid file failed")
	ErrNotSet     = errors.New("argument not set")
)

func Wrap(err error, msg string) error {
	return fmt.Errorf("%s: %w", msg, err)
}

func WrapWithBase(base error, msg string, err error) error {
	return fmt.Errorf("%w: %s: %v", base, msg, err)
}
