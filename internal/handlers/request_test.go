package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"playtracker/internal/models"
	"playtracker/internal/validation"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     bool
		wantField   string
		wantMessage string
	}{
		{name: "valid", body: `{"childId":1,"gameId":2,"duration":10}`},
		{name: "empty body", body: ""},
		{name: "trailing whitespace", body: "{\"duration\":10}\n  "},
		{name: "string for number", body: `{"duration":"ten"}`, wantErr: true, wantField: "duration", wantMessage: "duration must be a number"},
		{name: "number for id", body: `{"childId":"one"}`, wantErr: true, wantField: "childId", wantMessage: "childId must be a number"},
		{name: "array body", body: `[]`, wantErr: true, wantField: "body", wantMessage: "body must be an object"},
		{name: "second object", body: `{"duration":10}{"x":1}`, wantErr: true, wantField: "body", wantMessage: ErrTrailingJSON},
		{name: "trailing garbage", body: `{"duration":10}}`, wantErr: true, wantField: "body", wantMessage: ErrTrailingJSON},
		{name: "malformed", body: `{"duration":`, wantErr: true, wantField: "body", wantMessage: ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/sessions/start", strings.NewReader(tt.body))
			var in models.StartSessionInput

			err := decodeJSON(httptest.NewRecorder(), req, &in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeJSON(%q) error = %v, wantErr %v", tt.body, err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var ve validation.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if ve.Field != tt.wantField || ve.Message != tt.wantMessage {
				t.Errorf("error = %q/%q, want %q/%q", ve.Field, ve.Message, tt.wantField, tt.wantMessage)
			}
		})
	}
}

func TestCreateChildRejectsTrailingData(t *testing.T) {
	srv := newTestServer(t)

	var body errorResponse
	if status := srv.do(t, http.MethodPost, "/api/children", `{"name":"Ana"}{"x":1}`, &body); status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}

	var children []models.Child
	srv.do(t, http.MethodGet, "/api/children", "", &children)
	if len(children) != 0 {
		t.Errorf("children = %+v, want none created", children)
	}
}
