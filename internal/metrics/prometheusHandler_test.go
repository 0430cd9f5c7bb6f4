package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHttpStatusRecorder_RecordsWrittenStatus(t *testing.T) {
	underlying := httptest.NewRecorder()
	rec := &HttpStatusRecorder{ResponseWriter: underlying, Status: http.StatusOK}

	// Handlers only see the wrapper as an http.ResponseWriter
	var w http.ResponseWriter = rec
	w.WriteHeader(http.StatusNotFound)

	if rec.Status != http.StatusNotFound {
		t.Errorf("recorded status = %d, want %d", rec.Status, http.StatusNotFound)
	}
	if underlying.Code != http.StatusNotFound {
		t.Errorf("underlying writer got %d, want %d", underlying.Code, http.StatusNotFound)
	}
}

func TestHttpStatusRecorder_DefaultsTo200(t *testing.T) {
	underlying := httptest.NewRecorder()
	rec := &HttpStatusRecorder{ResponseWriter: underlying, Status: http.StatusOK}

	// Implicit 200: handler writes a body without calling WriteHeader
	if _, err := rec.Write([]byte("ok")); err != nil {
		t.Fatal(err)
	}
	if rec.Status != http.StatusOK {
		t.Errorf("recorded status = %d, want %d", rec.Status, http.StatusOK)
	}
}
