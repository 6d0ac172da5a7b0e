package visitors

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestCounter_HitOncePerSession(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte(`{"count": 42}`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	if got := c.Hit(); got != 42 {
		t.Errorf("expected count 42, got %d", got)
	}

	// The session flag suppresses further fetches.
	c.Hit()
	c.Hit()

	if atomic.LoadInt64(&hits) != 1 {
		t.Errorf("expected exactly 1 endpoint hit, got %d", hits)
	}
	if c.Count() != 42 {
		t.Errorf("expected cached count 42, got %d", c.Count())
	}
}

func TestCounter_BareIntegerBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  1337\n"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if got := c.Hit(); got != 1337 {
		t.Errorf("expected 1337, got %d", got)
	}
}

func TestCounter_ValueField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": 7}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if got := c.Hit(); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestCounter_DisabledWithoutURL(t *testing.T) {
	c := New("")
	if got := c.Hit(); got != 0 {
		t.Errorf("expected 0 for disabled counter, got %d", got)
	}
}

func TestCounter_EndpointFailureIsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if got := c.Hit(); got != 0 {
		t.Errorf("expected 0 after endpoint failure, got %d", got)
	}
	// Count stays usable.
	if c.Count() != 0 {
		t.Errorf("expected 0, got %d", c.Count())
	}
}
