package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingColumn, "github.csv: missing column %q", "Processed Amount")

	if err.Code != ErrCodeMissingColumn {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingColumn)
	}

	want := `MISSING_COLUMN: github.csv: missing column "Processed Amount"`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeAvatarFetch, cause, "avatar for %q", "Alice")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeMissingBadge, "x"), ErrCodeMissingBadge, true},
		{"different code", New(ErrCodeMissingBadge, "x"), ErrCodeAvatarFetch, false},
		{"wrapped by fmt", fmt.Errorf("render: %w", New(ErrCodeAvatarDecode, "x")), ErrCodeAvatarDecode, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
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
	if got := GetCode(fmt.Errorf("ctx: %w", New(ErrCodeInvalidValue, "x"))); got != ErrCodeInvalidValue {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidValue)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"structured", New(ErrCodeMissingColumn, "ko-fi.csv: missing column %q", "From"), `ko-fi.csv: missing column "From"`},
		{"with cause", Wrap(ErrCodeAvatarFetch, errors.New("timeout"), "avatar for Bob"), "avatar for Bob: timeout"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
