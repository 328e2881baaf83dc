package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestConstructors(t *testing.T) {
	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{name: "missing fields", err: MissingFields("resource"), wantCode: CodeMissingField, wantStatus: http.StatusBadRequest},
		{name: "missing parameter", err: MissingParameter("resource", "date"), wantCode: CodeMissingParameter, wantStatus: http.StatusBadRequest},
		{name: "invalid range", err: InvalidRange(), wantCode: CodeInvalidRange, wantStatus: http.StatusBadRequest},
		{name: "too short", err: TooShort(15), wantCode: CodeTooShort, wantStatus: http.StatusBadRequest},
		{name: "too long", err: TooLong(120), wantCode: CodeTooLong, wantStatus: http.StatusBadRequest},
		{name: "conflict", err: Conflict(start, end), wantCode: CodeConflict, wantStatus: http.StatusBadRequest},
		{name: "conflict message", err: ConflictMessage("busy"), wantCode: CodeConflict, wantStatus: http.StatusBadRequest},
		{name: "not found", err: NotFoundWithID("Booking", "abc"), wantCode: CodeNotFound, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: InvalidInput("bad date"), wantCode: CodeInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: Internal("boom", nil), wantCode: CodeInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.StatusCode())
			}
		})
	}
}

func TestConflictMessageFormat(t *testing.T) {
	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	err := Conflict(start, end)
	want := "Booking conflict with an existing booking (2025-06-15T10:00:00Z - 2025-06-15T10:30:00Z)"
	if err.Message != want {
		t.Errorf("unexpected conflict message:\n got %q\nwant %q", err.Message, want)
	}
}

func TestErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Failed to create booking", cause)

	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected cause in error string, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause through Unwrap")
	}
}

func TestAsAppError(t *testing.T) {
	t.Run("passes an AppError through", func(t *testing.T) {
		original := InvalidRange()
		if got := AsAppError(original); got != original {
			t.Error("expected the same AppError back")
		}
	})

	t.Run("wraps an unknown error as internal", func(t *testing.T) {
		got := AsAppError(errors.New("boom"))
		if got.Code != CodeInternal {
			t.Errorf("expected %s, got %s", CodeInternal, got.Code)
		}
		if got.StatusCode() != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", got.StatusCode())
		}
	})
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(InvalidRange()) {
		t.Error("expected true for an AppError")
	}
	if IsAppError(errors.New("boom")) {
		t.Error("expected false for a plain error")
	}
}
