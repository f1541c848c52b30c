package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/middleware"
)

func TestResponseWriter_CapturesStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	wr := &middleware.ResponseWriter{ResponseWriter: rec}

	wr.WriteHeader(http.StatusNotFound)
	if _, err := wr.Write([]byte("not found")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if wr.Status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", wr.Status)
	}
	if wr.Size != len("not found") {
		t.Fatalf("expected size %d, got %d", len("not found"), wr.Size)
	}
}

func TestResponseWriter_DefaultStatusOnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	wr := &middleware.ResponseWriter{ResponseWriter: rec}

	// WriteHeader не вызывался — Write должен проставить 200
	if _, err := wr.Write([]byte("ok")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if wr.Status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", wr.Status)
	}
}
