package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestInvalidCredentials_SameShapeForBothFailureModes(t *testing.T) {
	// Lookup miss and wrong password must be indistinguishable to clients.
	missing := InvalidCredentials().WithCause(fmt.Errorf("no such account"))
	wrongPw := InvalidCredentials().WithCause(fmt.Errorf("password mismatch"))

	if missing.Code != wrongPw.Code {
		t.Errorf("codes differ: %s vs %s", missing.Code, wrongPw.Code)
	}
	if missing.Message != wrongPw.Message {
		t.Errorf("messages differ: %q vs %q", missing.Message, wrongPw.Message)
	}
	if missing.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", missing.HTTPStatus)
	}
}

func TestToResponse_DropsCause(t *testing.T) {
	err := StoreUnavailable(fmt.Errorf("dial tcp: connection refused"))
	resp := err.ToResponse()

	if resp.Error.Code != ErrCodeUserStoreUnavailable {
		t.Errorf("expected USER_STORE_UNAVAILABLE, got %s", resp.Error.Code)
	}
	if !resp.Error.Retryable {
		t.Error("store unavailability should be retryable")
	}
	// The response body must not leak the underlying failure.
	if resp.Error.Message == err.Cause.Error() {
		t.Error("cause leaked into client message")
	}
}

func TestError_IncludesCause(t *testing.T) {
	cause := fmt.Errorf("signature mismatch")
	err := InvalidToken().WithCause(cause)
	if err.Unwrap() != cause {
		t.Error("expected Unwrap to return the cause")
	}
	want := "INVALID_TOKEN: Invalid authentication token. (cause: signature mismatch)"
	if err.Error() != want {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", RefreshRejected())
	if !HasCode(err, ErrCodeRefreshRejected) {
		t.Error("expected HasCode to match through wrapping")
	}
	if HasCode(err, ErrCodeTokenExpired) {
		t.Error("HasCode matched the wrong code")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("HasCode matched a non-AppError")
	}
}

func TestForbidden_DefaultMessage(t *testing.T) {
	err := Forbidden("")
	if err.Message == "" {
		t.Error("expected a default message")
	}
	if err.HTTPStatus != http.StatusForbidden {
		t.Errorf("expected 403, got %d", err.HTTPStatus)
	}
}
