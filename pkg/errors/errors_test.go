package errors

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrappedErr := Wrap(originalErr, "wrapped message")

	if wrappedErr == nil {
		t.Fatal("Expected non-nil error, got nil")
	}

	if wrappedErr.Error() != "wrapped message: original error" {
		t.Errorf("Expected 'wrapped message: original error', got '%s'", wrappedErr.Error())
	}

	if errors.Unwrap(wrappedErr) != originalErr {
		t.Errorf("Expected unwrapped error to be original error")
	}
}

func TestWrapWithBase(t *testing.T) {
	causeErr := errors.New("no such file")
	result := WrapWithBase(ErrConfigLoad, "argstore.toml", causeErr)

	expectedMsg := "config load failed: argstore.toml: no such file"
	if result.Error() != expectedMsg {
		t.Errorf("Expected '%s', got '%s'", expectedMsg, result.Error())
	}

	if !errors.Is(result, ErrConfigLoad) {
		t.Error("Expected result to contain ErrConfigLoad")
	}
}

func TestPredefinedErrors(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{ErrConfigLoad, "config load failed"},
		{ErrPidFile, "pid file failed"},
		{ErrNotSet, "argument not set"},
	}

	for _, tc := range testCases {
		if tc.err.Error() != tc.want {
			t.Errorf("Error message for %v: got %q, want %q", tc.err, tc.err.Error(), tc.want)
		}
	}
}
