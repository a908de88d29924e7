package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidInput, "node name cannot be empty"), "INVALID_INPUT: node name cannot be empty"},
		{"formatted", New(ErrCodeNotFound, "node %s", "4:abc:1"), "NOT_FOUND: node 4:abc:1"},
		{"wrapped", Wrap(ErrCodeNetwork, errors.New("connection refused"), "GET /labels"), "NETWORK_ERROR: GET /labels: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	err := Wrap(ErrCodeTimeout, context.DeadlineExceeded, "fetch graph")

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is(err, DeadlineExceeded) = false")
	}
	if errors.Unwrap(err) != context.DeadlineExceeded {
		t.Error("Unwrap() did not return the cause")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching", New(ErrCodeInvalidInput, "x"), ErrCodeInvalidInput, true},
		{"other code", New(ErrCodeInvalidInput, "x"), ErrCodeNetwork, false},
		{"outer code wins", Wrap(ErrCodeNetwork, New(ErrCodeNotFound, "inner"), "outer"), ErrCodeNetwork, true},
		{"behind fmt wrap", fmt.Errorf("create link: %w", New(ErrCodeNotFound, "node")), ErrCodeNotFound, true},
		{"plain", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnsupported, "x")); got != ErrCodeUnsupported {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidInput, "select a target node"), "select a target node"},
		{"plain", errors.New("boom"), "boom"},
		{"cause kept", Wrap(ErrCodeNetwork, errors.New("connection refused"), "fetch graph"), "fetch graph: connection refused"},
		{"nested codes stripped", Wrap(ErrCodeInternal, New(ErrCodeNotFound, "Node not found"), "update node position"), "update node position: Node not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
