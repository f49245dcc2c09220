package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amishk599/jobwatch/internal/config"
	"github.com/amishk599/jobwatch/internal/model"
)

func newTestAdapter(srv *httptest.Server, resultLimit, maxPages int) *AmazonAdapter {
	return NewAmazonAdapter(config.SourceConfig{
		Endpoint:    srv.URL,
		Query:       "software engineer",
		ResultLimit: resultLimit,
		MaxPages:    maxPages,
	}, srv.Client())
}

func TestFetchListings_Success(t *testing.T) {
	payload := `{
		"error": null,
		"hits": 2,
		"jobs": [
			{
				"id_icims": "2839145",
				"title": "Software Development Engineer",
				"location": "USA, WA, Seattle",
				"posted_date": "November 15, 2025",
				"level": "4",
				"basic_qualifications": "&lt;p&gt;2+ years of &lt;b&gt;Go&lt;/b&gt; experience&lt;/p&gt;",
				"job_path": "/en/jobs/2839145/software-development-engineer"
			},
			{
				"id_icims": "2839146",
				"title": "Software Development Engineer II",
				"location": "USA, NY, New York",
				"posted_date": "not a date",
				"level": "5",
				"basic_qualifications": "",
				"job_path": "/en/jobs/2839146/software-development-engineer-ii"
			}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("base_query"); got != "software engineer" {
			t.Errorf("base_query = %q, want %q", got, "software engineer")
		}
		if got := r.URL.Query().Get("sort"); got != "recent" {
			t.Errorf("sort = %q, want recent", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	listings, err := newTestAdapter(srv, 100, 5).FetchListings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	l := listings[0]
	if l.ID != "2839145" {
		t.Errorf("ID = %s, want 2839145", l.ID)
	}
	if l.URL != "https://www.amazon.jobs/en/jobs/2839145" {
		t.Errorf("URL = %s", l.URL)
	}
	if l.PostedAt == nil {
		t.Fatal("expected PostedAt to be parsed")
	}
	if got := l.PostedAt.Format("2006-01-02"); got != "2025-11-15" {
		t.Errorf("PostedAt = %s, want 2025-11-15", got)
	}
	if l.Qualifications != "2+ years of Go experience" {
		t.Errorf("Qualifications = %q, want plain text", l.Qualifications)
	}

	// Unparseable posted_date becomes a nil PostedAt, not an error.
	if listings[1].PostedAt != nil {
		t.Error("expected nil PostedAt for unparseable date")
	}
}

func TestFetchListings_Paging(t *testing.T) {
	pages := map[string]string{
		"0": `{"error": null, "hits": 3, "jobs": [
			{"id_icims": "1", "title": "SDE", "location": "A"},
			{"id_icims": "2", "title": "SDE", "location": "B"}
		]}`,
		"2": `{"error": null, "hits": 3, "jobs": [
			{"id_icims": "3", "title": "SDE", "location": "C"}
		]}`,
	}
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		body, ok := pages[r.URL.Query().Get("offset")]
		if !ok {
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
			http.Error(w, "bad offset", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	listings, err := newTestAdapter(srv, 2, 5).FetchListings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listings) != 3 {
		t.Fatalf("expected 3 listings across pages, got %d", len(listings))
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
	if listings[0].ID != "1" || listings[2].ID != "3" {
		t.Errorf("listings out of order: %s..%s", listings[0].ID, listings[2].ID)
	}
}

func TestFetchListings_HTTPErrorWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestAdapter(srv, 100, 5).FetchListings(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var fetchErr *model.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError in chain, got %v", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", httpErr.StatusCode)
	}
	if httpErr.RetryAfter.Seconds() != 30 {
		t.Errorf("RetryAfter = %v, want 30s", httpErr.RetryAfter)
	}
}

func TestFetchListings_APIErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "invalid facet", "hits": 0, "jobs": []}`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(srv, 100, 5).FetchListings(context.Background())
	if err == nil {
		t.Fatal("expected error for api error field, got nil")
	}
	var fetchErr *model.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
}

func TestFetchListings_UnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance page</html>"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(srv, 100, 5).FetchListings(context.Background())
	if err == nil {
		t.Fatal("expected error for unparseable body, got nil")
	}
	var fetchErr *model.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
}
