// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/Keats/kickstart/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "schema_invalid_error",
			code:    errors.ErrSchemaInvalid,
			message: "variable has no default",
			wantStr: "[SCHEMA_INVALID] variable has no default",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "not a valid choice",
			wantStr: "[INVALID_INPUT] not a valid choice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	inner := stderrors.New("permission denied")
	err := errors.Wrapf(inner, errors.ErrFileWrite, "writing %s", "README.md")

	if !stderrors.Is(err, inner) {
		t.Error("wrapped error should match errors.Is against the cause")
	}

	want := "[FILE_WRITE] writing README.md: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if errors.Wrap(nil, errors.ErrFileWrite, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestIsErrorCode(t *testing.T) {
	err := errors.New(errors.ErrRenderFailed, "bad template").WithDetail("path", "src/main.go")

	if !errors.IsErrorCode(err, errors.ErrRenderFailed) {
		t.Error("IsErrorCode should match the code")
	}
	if errors.IsErrorCode(err, errors.ErrFileRead) {
		t.Error("IsErrorCode should not match a different code")
	}
	if errors.GetErrorCode(stderrors.New("plain")) != errors.ErrUnknown {
		t.Error("GetErrorCode on a plain error should be UNKNOWN")
	}
	if errors.GetErrorDetails(err)["path"] != "src/main.go" {
		t.Error("GetErrorDetails should return the detail map")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	a := errors.New(errors.ErrBadReference, "one")
	b := errors.New(errors.ErrBadReference, "two")

	if !stderrors.Is(a, b) {
		t.Error("two errors with the same code should satisfy errors.Is")
	}
}
