package itunes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/music"
)

func TestFetchTracks(t *testing.T) {
	t.Run("DedupAndDropEmpty", func(t *testing.T) {
		var gotQuery map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/search" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			q := r.URL.Query()
			gotQuery = map[string]string{
				"term":   q.Get("term"),
				"entity": q.Get("entity"),
				"limit":  q.Get("limit"),
			}
			w.Write([]byte(`{"resultCount":5,"results":[
				{"trackName":"Hello"},
				{"trackName":""},
				{"trackName":"Skyfall"},
				{"trackName":"Hello"},
				{"artistName":"Adele"}
			]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		tracks, err := client.FetchTracks(context.Background(), "Adele", 60)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotQuery["term"] != "Adele" || gotQuery["entity"] != "song" || gotQuery["limit"] != "60" {
			t.Errorf("unexpected query %v", gotQuery)
		}

		seen := map[string]bool{}
		for _, title := range tracks {
			if title == "" {
				t.Errorf("empty title in result")
			}
			if seen[title] {
				t.Errorf("duplicate title %q", title)
			}
			seen[title] = true
		}
		if len(tracks) != 2 || !seen["Hello"] || !seen["Skyfall"] {
			t.Errorf("expected {Hello, Skyfall}, got %v", tracks)
		}
	})

	t.Run("EmptyResults", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"resultCount":0,"results":[]}`))
		}))
		defer server.Close()

		tracks, err := NewClient(server.URL, time.Second).FetchTracks(context.Background(), "Nobody", 60)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tracks) != 0 {
			t.Errorf("expected no tracks, got %v", tracks)
		}
	})

	t.Run("BadStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := NewClient(server.URL, time.Second).FetchTracks(context.Background(), "Adele", 60)
		if !errors.Is(err, music.ErrCatalogUnavailable) {
			t.Errorf("expected ErrCatalogUnavailable, got %v", err)
		}
	})

	t.Run("Unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := NewClient(url, time.Second).FetchTracks(context.Background(), "Adele", 60)
		if !errors.Is(err, music.ErrCatalogUnavailable) {
			t.Errorf("expected ErrCatalogUnavailable, got %v", err)
		}
	})
}
