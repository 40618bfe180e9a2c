package errors

import (
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPErrorAdapter_StatusCodeFor(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, http.StatusOK},
		{"validation", ValidationError("invalid input").Build(), http.StatusBadRequest},
		{"not found", NotFoundError("no route").Build(), http.StatusNotFound},
		{"network", NetworkError("nats down").Build(), http.StatusBadGateway},
		{"storage", StorageError("db locked").Build(), http.StatusServiceUnavailable},
		{"render", RenderError("template").Build(), http.StatusUnprocessableEntity},
		{"unclassified", stdErrors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.StatusCodeFor(tt.err); got != tt.expected {
				t.Errorf("StatusCodeFor() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())
	err := ValidationError("form validation failed").
		WithContext("fields", map[string]string{"email": "Invalid email address"}).
		Build()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries/pricing", nil)
	adapter.WriteErrorResponse(rec, req, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body HTTPErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "form validation failed" || body.Code != "validation" {
		t.Errorf("unexpected body: %+v", body)
	}
	fields, ok := body.Details["fields"].(map[string]any)
	if !ok || fields["email"] != "Invalid email address" {
		t.Errorf("expected field details, got %#v", body.Details)
	}
}

func TestHTTPErrorAdapter_HidesUnclassifiedMessages(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())
	resp := adapter.FormatErrorResponse(stdErrors.New("sql: connection string leaked"))
	if resp.Error != "internal error" {
		t.Errorf("expected generic message, got %q", resp.Error)
	}
}
