package errors

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
)

type fakeHTTPError struct{ status int }

func (e *fakeHTTPError) Error() string   { return fmt.Sprintf("[%d] failed", e.status) }
func (e *fakeHTTPError) HTTPStatus() int { return e.status }

// TestNewCLIError creates and validates a CLI error
func TestNewCLIError(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewCLIError(ErrorTypeValidation, "Test error", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("Expected type %s, got %s", ErrorTypeValidation, err.Type)
	}
	if err.Message != "Test error" {
		t.Errorf("Expected message 'Test error', got '%s'", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("Cause should be reachable through Unwrap")
	}
}

// TestWithSuggestion adds suggestion to error
func TestWithSuggestion(t *testing.T) {
	err := NewCLIError(ErrorTypeValidation, "Test", nil).WithSuggestion("Try something else")

	if !err.HasSuggestion() {
		t.Error("HasSuggestion returned false")
	}
}

// TestValidationError formats field and reason
func TestValidationError(t *testing.T) {
	err := ValidationError("comment", "text cannot be empty")

	if err.Type != ErrorTypeValidation {
		t.Errorf("Expected type %s, got %s", ErrorTypeValidation, err.Type)
	}
	if !strings.Contains(err.Message, "comment") || !strings.Contains(err.Message, "text cannot be empty") {
		t.Errorf("Unexpected message: %s", err.Message)
	}
}

// TestCategorizeHTTPStatus maps response statuses into the taxonomy
func TestCategorizeHTTPStatus(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorType
	}{
		{401, ErrorTypeAuth},
		{403, ErrorTypeForbidden},
		{404, ErrorTypeNotFound},
		{409, ErrorTypeConflict},
		{500, ErrorTypeServer},
		{503, ErrorTypeServer},
		{418, ErrorTypeUnknown},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("status_%d", tc.status), func(t *testing.T) {
			got := CategorizeError(fmt.Errorf("wrapped: %w", &fakeHTTPError{status: tc.status}))
			if got.Type != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got.Type)
			}
			if got.StatusCode != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, got.StatusCode)
			}
		})
	}
}

// TestCategorizeTransportErrors maps transport failures to network and timeout
func TestCategorizeTransportErrors(t *testing.T) {
	urlErr := &url.Error{Op: "Get", URL: "http://localhost:1/posts", Err: errors.New("dial tcp: connection refused")}
	if got := CategorizeError(urlErr); got.Type != ErrorTypeNetwork {
		t.Errorf("Expected network, got %s", got.Type)
	}

	if got := CategorizeError(context.DeadlineExceeded); got.Type != ErrorTypeTimeout {
		t.Errorf("Expected timeout, got %s", got.Type)
	}

	if got := CategorizeError(errors.New("something odd")); got.Type != ErrorTypeUnknown {
		t.Errorf("Expected unknown, got %s", got.Type)
	}
}

// TestCategorizeKeepsCLIError returns an existing CLIError unchanged
func TestCategorizeKeepsCLIError(t *testing.T) {
	orig := AuthError("Please login to like posts")
	if got := CategorizeError(fmt.Errorf("ctx: %w", orig)); got != orig {
		t.Error("Expected the original CLIError")
	}
	if !IsType(orig, ErrorTypeAuth) {
		t.Error("IsType should report auth")
	}
	if CategorizeError(nil) != nil {
		t.Error("nil should categorize to nil")
	}
}

// TestFormatError includes type and suggestion
func TestFormatError(t *testing.T) {
	msg := FormatError(NetworkError("Could not reach the server"))

	if !strings.Contains(msg, "(network)") {
		t.Errorf("Expected type in message: %s", msg)
	}
	if !strings.Contains(msg, "Suggestion:") {
		t.Errorf("Expected suggestion in message: %s", msg)
	}
	if FormatError(nil) != "" {
		t.Error("nil error should format as empty string")
	}
}

func TestReported(t *testing.T) {
	base := AuthError("Please login to like posts")
	err := Reported(base)

	if !WasReported(err) {
		t.Error("expected error to be marked reported")
	}
	if WasReported(base) {
		t.Error("unmarked error should not be reported")
	}
	if CategorizeError(err).Type != ErrorTypeAuth {
		t.Error("reported errors should keep their category")
	}
	if Reported(nil) != nil {
		t.Error("Reported(nil) should be nil")
	}
}
