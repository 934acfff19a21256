package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(errors.New("boom"), ExitUser),
			want: "boom",
		},
		{
			name: "nil underlying error",
			err:  &ExitError{Code: ExitSystem},
			want: "exit code 2",
		},
		{
			name: "wrapped sentinel",
			err:  NewUserError(fmt.Errorf("lint: %w", ErrLintFailed), ""),
			want: "lint: validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	underlying := errors.New("boom")
	err := NewExitError(underlying, ExitUser)

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find the underlying error")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("errors.As should find *ExitError")
	}
	if exitErr.Code != ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitUser)
	}
}

func TestExitError_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want int
	}{
		{"user error", NewUserError(errors.New("bad input"), "Check the file path"), ExitUser},
		{"system error", NewSystemError(errors.New("disk failure"), ""), ExitSystem},
		{"config error", NewConfigError(errors.New("bad yaml")), ExitUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.want {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.want)
			}
		})
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError(errors.New("mapping values are not allowed here"))

	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("config errors should wrap ErrInvalidConfig")
	}
	if err.Suggestion == "" {
		t.Error("config errors should carry a suggestion")
	}
	if err.Code != ExitUser {
		t.Errorf("Code = %d, want %d", err.Code, ExitUser)
	}
}

func TestNewExitErrorWithSuggestion(t *testing.T) {
	err := NewExitErrorWithSuggestion(ErrNoInput, ExitUser, "Pass at least one file or directory")

	if err.Suggestion != "Pass at least one file or directory" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
	if !errors.Is(err, ErrNoInput) {
		t.Error("errors.Is should find ErrNoInput")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	err := Wrap(ErrNotFound, "loading schema")
	if !Is(err, ErrNotFound) {
		t.Error("wrapped error should match its sentinel")
	}
	if got, want := err.Error(), "loading schema: not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewf(t *testing.T) {
	err := Newf("unknown format %q", "xml")
	if got, want := err.Error(), `unknown format "xml"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
