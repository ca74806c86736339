package document

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/nmalahov/clarus/internal/model"
)

func newTestRetriever(t *testing.T) *Retriever {
	t.Helper()
	r := NewRetriever(5*time.Second, "test-agent", 1_000_000)
	r.tmpDir = t.TempDir()
	return r
}

func TestFetchText_Non2xxIsRetrievalError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	r := newTestRetriever(t)
	_, err := r.FetchText(context.Background(), srv.URL+"/missing.pdf")
	if !errors.Is(err, model.ErrRetrieval) {
		t.Fatalf("expected ErrRetrieval, got %v", err)
	}
}

func TestFetchText_NetworkFailureIsRetrievalError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	r := newTestRetriever(t)
	_, err := r.FetchText(context.Background(), srv.URL+"/doc.pdf")
	if !errors.Is(err, model.ErrRetrieval) {
		t.Fatalf("expected ErrRetrieval, got %v", err)
	}
}

func TestFetchText_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("not a pdf"))
	}))
	defer srv.Close()

	r := newTestRetriever(t)
	r.FetchText(context.Background(), srv.URL+"/doc.pdf")

	if gotUA != "test-agent" {
		t.Errorf("expected configured user agent, got %q", gotUA)
	}
}

func TestFetchText_TempFileRemovedOnExtractionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a PDF document"))
	}))
	defer srv.Close()

	r := newTestRetriever(t)
	_, err := r.FetchText(context.Background(), srv.URL+"/doc.pdf")
	if !errors.Is(err, model.ErrExtraction) {
		t.Fatalf("expected ErrExtraction for non-PDF body, got %v", err)
	}

	entries, readErr := os.ReadDir(r.tmpDir)
	if readErr != nil {
		t.Fatalf("reading temp dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected temp dir to be empty after failure, found %d entries", len(entries))
	}
}

func TestDownload_UniqueNamesPerRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	r := newTestRetriever(t)

	p1, err := r.download(context.Background(), srv.URL+"/doc.pdf")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	p2, err := r.download(context.Background(), srv.URL+"/doc.pdf")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer os.Remove(p1)
	defer os.Remove(p2)

	if p1 == p2 {
		t.Errorf("expected unique temp paths, both were %s", p1)
	}
}
