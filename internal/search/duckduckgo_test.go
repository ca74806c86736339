package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const resultsPage = `
<html><body>
<div class="result">
	<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Faliens&amp;rut=abc">Are aliens real?</a>
	<div class="result__snippet">Scientists weigh in on the evidence.</div>
</div>
<div class="result">
	<a class="result__a" href="https://example.org/ufo">UFO sightings explained</a>
	<div class="result__snippet">A review of recent sightings.</div>
</div>
<div class="result">
	<a class="result__a" href="https://example.net/third">Third result</a>
</div>
</body></html>`

func newTestSearcher(handler http.HandlerFunc) (*DuckDuckGo, *httptest.Server) {
	srv := httptest.NewServer(handler)
	d := NewDuckDuckGo(5*time.Second, "test-agent")
	d.endpoint = srv.URL + "/html/"
	return d, srv
}

func TestSearch_ParsesResults(t *testing.T) {
	d, srv := newTestSearcher(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "are aliens real" {
			t.Errorf("expected query passthrough, got %q", got)
		}
		w.Write([]byte(resultsPage))
	})
	defer srv.Close()

	results, err := d.Search(context.Background(), "are aliens real", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].URL != "https://example.com/aliens" {
		t.Errorf("expected unwrapped redirect URL, got %q", results[0].URL)
	}
	if results[0].Title != "Are aliens real?" {
		t.Errorf("unexpected title %q", results[0].Title)
	}
	if results[0].Snippet != "Scientists weigh in on the evidence." {
		t.Errorf("unexpected snippet %q", results[0].Snippet)
	}
	if results[2].Snippet != "" {
		t.Errorf("expected empty snippet for third result, got %q", results[2].Snippet)
	}
}

func TestSearch_CapsResults(t *testing.T) {
	d, srv := newTestSearcher(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(resultsPage))
	})
	defer srv.Close()

	results, err := d.Search(context.Background(), "anything", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected results capped at 2, got %d", len(results))
	}
}

func TestSearch_Non2xxIsError(t *testing.T) {
	d, srv := newTestSearcher(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	defer srv.Close()

	if _, err := d.Search(context.Background(), "anything", 5); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fpage&rut=x", "https://example.com/page"},
		{"https://example.org/direct", "https://example.org/direct"},
		{"javascript:void(0)", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := resolveRedirect(tt.href); got != tt.want {
			t.Errorf("resolveRedirect(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
