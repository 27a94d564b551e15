package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/1706.03762v5</id>
    <title>Attention Is All
 You Need</title>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2004.05150v2</id>
    <title>Longformer: The Long-Document Transformer</title>
  </entry>
</feed>`

func TestSearchParsesFeed(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := NewClient()
	client.BaseURL = srv.URL
	entries, err := client.Search(context.Background(), "transformer attention")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if gotQuery != "all:transformer attention" {
		t.Fatalf("unexpected search_query %q", gotQuery)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "Attention Is All You Need" {
		t.Fatalf("expected folded title, got %q", entries[0].Title)
	}
	if entries[0].Identifier != "arXiv:1706.03762v5" {
		t.Fatalf("unexpected identifier %q", entries[0].Identifier)
	}
}

func TestSearchEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	}))
	defer srv.Close()

	client := NewClient()
	client.BaseURL = srv.URL
	entries, err := client.Search(context.Background(), "no such topic")
	if err != nil {
		t.Fatalf("expected empty feed to succeed, got %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestSearchServerError(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "too many requests", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient()
	client.BaseURL = srv.URL
	client.Retry.Backoff = time.Millisecond
	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Fatalf("expected error for 503 response")
	}
	if hits != client.Retry.MaxRetries+1 {
		t.Fatalf("expected %d attempts for server error, got %d", client.Retry.MaxRetries+1, hits)
	}
}

func TestSearchRecoversFromTransientError(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			http.Error(w, "warming up", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := NewClient()
	client.BaseURL = srv.URL
	client.Retry.Backoff = time.Millisecond
	entries, err := client.Search(context.Background(), "transformer attention")
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after retry, got %d", len(entries))
	}
	if hits != 2 {
		t.Fatalf("expected 2 attempts, got %d", hits)
	}
}

func TestSearchDoesNotRetryClientError(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "bad query", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient()
	client.BaseURL = srv.URL
	client.Retry.Backoff = time.Millisecond
	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if hits != 1 {
		t.Fatalf("expected a single attempt for client error, got %d", hits)
	}
}
