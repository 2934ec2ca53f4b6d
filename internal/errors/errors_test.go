package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cause := errors.New("underlying error")
	fixes := []FixAction{{Type: RunCommand, Command: "nl2pl parse spec.txt", Safe: true}}

	err := New(FileNotFound, "spec file not found", cause, fixes...)

	if err.Code != FileNotFound {
		t.Errorf("Code = %v, want %v", err.Code, FileNotFound)
	}
	if err.Message != "spec file not found" {
		t.Errorf("Message = %q, want %q", err.Message, "spec file not found")
	}
	if len(err.SuggestedFixes) != 1 {
		t.Errorf("len(SuggestedFixes) = %d, want 1", len(err.SuggestedFixes))
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      WriteFailed,
			message:   "cannot write bundle",
			cause:     errors.New("permission denied"),
			wantParts: []string{"WRITE_FAILED", "cannot write bundle", "permission denied"},
		},
		{
			name:      "without cause",
			code:      InvalidBundle,
			message:   "bundle format version 7 is not supported",
			cause:     nil,
			wantParts: []string{"INVALID_BUNDLE", "bundle format version 7 is not supported"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.cause)
			got := err.Error()
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := New(InternalError, "something went wrong", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var coded *Error
	if !errors.As(err, &coded) {
		t.Fatal("errors.As should recover *Error")
	}
	if coded.Code != InternalError {
		t.Errorf("Code = %v, want %v", coded.Code, InternalError)
	}

	errNoCause := New(InvalidArgument, "bad flag", nil)
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap() on error without cause should return nil")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil error", nil, ""},
		{"plain error", errors.New("no code here"), ""},
		{"coded error", New(FileNotFound, "missing", nil), FileNotFound},
		{"wrapped coded error", fmt.Errorf("loading: %w", New(InvalidBundle, "bad magic", nil)), InvalidBundle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	// Ensure all error codes are unique
	codes := []ErrorCode{
		FileNotFound,
		InvalidArgument,
		WriteFailed,
		InvalidBundle,
		InternalError,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("duplicate error code: %v", code)
		}
		seen[code] = true
	}
}
