package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Site is a fake AIP web site serving fixed pages by exact path.
type Site struct {
	*httptest.Server

	mu       sync.Mutex
	pages    map[string][]byte
	requests []string
}

// NewSite starts a fake site serving pages (path -> body). Unknown paths
// return 404. The server is closed when the test ends.
func NewSite(t *testing.T, pages map[string][]byte) *Site {
	t.Helper()

	s := &Site{pages: pages}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.Path)
		body, ok := s.pages[r.URL.Path]
		s.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)

	return s
}

// Requests returns the paths requested so far, in order.
func (s *Site) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}
