package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsMapCodeAndStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{name: "not found", err: NotFound("Booking"), wantCode: CodeNotFound, wantStatus: http.StatusNotFound},
		{name: "not found with id", err: NotFoundWithID("Room", "abc"), wantCode: CodeNotFound, wantStatus: http.StatusNotFound},
		{name: "validation", err: Validation("bad input", nil), wantCode: CodeValidation, wantStatus: http.StatusBadRequest},
		{name: "validation kind", err: ValidationKind("too_long", "too long"), wantCode: CodeValidation, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: InvalidInput("bad id"), wantCode: CodeInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "conflict", err: Conflict("taken"), wantCode: CodeConflict, wantStatus: http.StatusConflict},
		{name: "room unavailable", err: RoomUnavailable("r1", nil), wantCode: CodeRoomUnavailable, wantStatus: http.StatusConflict},
		{name: "not modifiable", err: NotModifiable("started"), wantCode: CodeNotModifiable, wantStatus: http.StatusConflict},
		{name: "not cancellable", err: NotCancellable("ended"), wantCode: CodeNotCancellable, wantStatus: http.StatusConflict},
		{name: "internal", err: Internal("boom", nil), wantCode: CodeInternal, wantStatus: http.StatusInternalServerError},
		{name: "timeout", err: Timeout("slow"), wantCode: CodeTimeout, wantStatus: http.StatusGatewayTimeout},
		{name: "storage unavailable", err: StorageUnavailable(nil), wantCode: CodeStorageUnavailable, wantStatus: http.StatusServiceUnavailable},
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

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("storage failed", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("expected errors.As to find the AppError")
	}
	if appErr.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, appErr.Code)
	}
}

func TestValidationKindCarriesKind(t *testing.T) {
	err := ValidationKind("past_booking", "booking cannot start in the past")
	if err.Details["kind"] != "past_booking" {
		t.Errorf("expected kind detail, got %v", err.Details)
	}
}

func TestRoomUnavailableDetails(t *testing.T) {
	err := RoomUnavailable("r1", []string{"b1"})
	if err.Details["room_id"] != "r1" {
		t.Errorf("expected room_id detail, got %v", err.Details)
	}
	if _, ok := err.Details["conflicts"]; !ok {
		t.Error("expected conflicts detail")
	}
}

func TestToJSONOmitsInternals(t *testing.T) {
	err := Internal("boom", errors.New("secret dsn"))

	var decoded map[string]any
	if jsonErr := json.Unmarshal(err.ToJSON(), &decoded); jsonErr != nil {
		t.Fatalf("failed to decode: %v", jsonErr)
	}
	if decoded["code"] != CodeInternal {
		t.Errorf("expected code in JSON, got %v", decoded)
	}
	for _, v := range decoded {
		if s, ok := v.(string); ok && s == "secret dsn" {
			t.Error("wrapped cause must not leak into the JSON body")
		}
	}
}

func TestAsAppErrorWrapsUnknown(t *testing.T) {
	plain := errors.New("plain failure")
	appErr := AsAppError(plain)
	if appErr.Code != CodeInternal {
		t.Errorf("expected unknown errors to map to %s, got %s", CodeInternal, appErr.Code)
	}

	original := Conflict("taken")
	if AsAppError(original) != original {
		t.Error("expected existing AppError to pass through unchanged")
	}
}
