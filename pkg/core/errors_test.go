package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodes(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		code int
	}{
		{ErrBackendCommand, 1},
		{ErrInterrupted, 2},
		{ErrConfigFileNotFound, 3},
		{ErrBackendNotSupported, 4},
		{ErrInvalidParameter, 6},
		{ErrMissingParameter, 7},
		{ErrInvalidConfig, 8},
		{ErrNotImplemented, 9},
		{ErrorKind("bogus"), 1},
	}
	for _, c := range cases {
		e := NewError(c.kind, "boom")
		if e.ExitCode() != c.code {
			t.Errorf("%s: exit code got %d, want %d", c.kind, e.ExitCode(), c.code)
		}
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	inner := NewError(ErrInvalidConfig, "bad config-path")
	wrapped := fmt.Errorf("load: %w", inner)

	var se *Error
	if !errors.As(wrapped, &se) {
		t.Fatal("errors.As did not find *core.Error")
	}
	if se.Kind != ErrInvalidConfig {
		t.Errorf("kind: got %s", se.Kind)
	}
}
