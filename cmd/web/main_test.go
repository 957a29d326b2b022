package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPageHandler(t *testing.T) {
	h := pageHandler("play.example.org", "2022")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "ssh -t -p 2022 play.example.org") {
		t.Errorf("Expected connection command in page, got %q", body)
	}
	if strings.Contains(body, "{{.") {
		t.Error("Expected all placeholders to be replaced")
	}
}

func TestPageHandlerUnknownPath(t *testing.T) {
	rr := httptest.NewRecorder()
	pageHandler("h", "1").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}
