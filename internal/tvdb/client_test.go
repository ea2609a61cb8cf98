package tvdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"seasonfix/internal/tvdb"
)

func TestNewRequiresToken(t *testing.T) {
	if _, err := tvdb.New("", "https://example.com", "eng"); err == nil {
		t.Fatal("expected error when api token missing")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := tvdb.New("token", "", "eng"); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestSeriesSeasonsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/series/42/seasons" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Fatalf("expected bearer auth, got %q", got)
		}
		if got := r.URL.Query().Get("language"); got != "eng" {
			t.Fatalf("expected language parameter, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"number":1,"episode_count":12},{"number":2,"episode_count":10}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tvdb.New("token", server.URL, "eng")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	seasons, err := client.SeriesSeasons(context.Background(), 42)
	if err != nil {
		t.Fatalf("SeriesSeasons returned error: %v", err)
	}
	if len(seasons) != 2 || seasons[0].EpisodeCount != 12 || seasons[1].Number != 2 {
		t.Fatalf("unexpected seasons: %+v", seasons)
	}
}

func TestSeriesSeasonsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := tvdb.New("token", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SeriesSeasons(context.Background(), 42); err == nil {
		t.Fatal("expected error when service returns non-200")
	}
}

func TestSeriesSeasonsRejectsBadID(t *testing.T) {
	client, err := tvdb.New("token", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SeriesSeasons(context.Background(), 0); err == nil {
		t.Fatal("expected error for non-positive series id")
	}
}
