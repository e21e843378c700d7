package errors

import (
	stderrors "errors"
	"testing"
)

func TestWrap(t *testing.T) {
	internal := stderrors.New("dial tcp: connection refused")
	err := Wrap(ErrQuoteUnavailable, internal)

	if err.Code != ErrQuoteUnavailable.Code {
		t.Errorf("expected code %s, got %s", ErrQuoteUnavailable.Code, err.Code)
	}
	if err.StatusCode != ErrQuoteUnavailable.StatusCode {
		t.Errorf("expected status %d, got %d", ErrQuoteUnavailable.StatusCode, err.StatusCode)
	}
	if !stderrors.Is(err, internal) {
		t.Error("expected wrapped error to match with errors.Is")
	}

	// The sentinel itself is untouched.
	if ErrQuoteUnavailable.Internal != nil {
		t.Error("wrapping must not mutate the sentinel")
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "shares must be a whole number")

	if err.Message != "shares must be a whole number" {
		t.Errorf("unexpected message: %s", err.Message)
	}
	if err.Code != ErrInvalidInput.Code || err.StatusCode != ErrInvalidInput.StatusCode {
		t.Error("expected code and status to carry over from the sentinel")
	}
	if ErrInvalidInput.Message != "Invalid input" {
		t.Error("overriding the message must not mutate the sentinel")
	}
}

func TestErrorsAs(t *testing.T) {
	var appErr *AppError
	if !stderrors.As(Wrap(ErrInternalServer, stderrors.New("boom")), &appErr) {
		t.Fatal("expected errors.As to find *AppError")
	}
	if appErr.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", appErr.Code)
	}
}
