package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONResponseBuilder(t *testing.T) {
	rr := httptest.NewRecorder()
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("X-Test", "1").
		Body(map[string]int{"id": 7}).
		Write(rr)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type=%q", got)
	}
	if got := rr.Header().Get("X-Test"); got != "1" {
		t.Fatalf("custom header=%q", got)
	}
	if got := rr.Body.String(); got != `{"id":7}` {
		t.Fatalf("body=%s", got)
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name   string
		b      *JSONResponseBuilder
		status int
		body   string
	}{
		{"bad request", BadRequestError("All fields are required."), 400, `{"error":"All fields are required."}`},
		{"not found", NotFoundError("Transaction not found."), 404, `{"error":"Transaction not found."}`},
		{"internal", InternalServerError(), 500, `{"error":"Internal server error."}`},
		{"message", NewJSONResponse().Message("done"), 200, `{"message":"done"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.b.Write(rr)
			if rr.Code != tt.status {
				t.Fatalf("status=%d want %d", rr.Code, tt.status)
			}
			if rr.Body.String() != tt.body {
				t.Fatalf("body=%s want %s", rr.Body.String(), tt.body)
			}
		})
	}
}

func TestUnencodableBodyFallsBackTo500(t *testing.T) {
	rr := httptest.NewRecorder()
	NewJSONResponse().Body(func() {}).Write(rr)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rr.Code)
	}
}
