package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"fest-2024", true},
		{"Club_e.V", true},
		{"a", true},
		{"", false},
		{"-leading", false},
		{"with/slash", false},
		{"drop table", false},
		{"x'--", false},
	}
	for _, tt := range tests {
		if got := ValidateSlug(tt.slug); got != tt.want {
			t.Errorf("ValidateSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "invalid dataset")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %s", ct)
	}
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if resp.Error != "invalid dataset" || resp.Data != nil {
		t.Errorf("Unexpected response: %+v", resp)
	}
}
