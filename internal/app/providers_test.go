package app

import (
	"testing"
	"time"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/config"
)

func TestNewCatalog(t *testing.T) {
	tests := []struct {
		provider string
		want     string
		wantErr  bool
	}{
		{provider: "itunes", want: "iTunes"},
		{provider: "netease", want: "NetEase Cloud Music"},
		{provider: "spotify", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			catalog, err := NewCatalog(config.CatalogConfig{Provider: tt.provider, Timeout: time.Second})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := catalog.GetProviderName(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewLyrics(t *testing.T) {
	manager, err := NewLyrics(config.LyricsConfig{
		Providers: []string{"lyricsovh", "lrclib"},
		Timeout:   time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manager.GetProviderCount() != 2 {
		t.Errorf("expected 2 providers, got %d", manager.GetProviderCount())
	}
	if got := manager.GetProviderName(); got != "Manager[lyrics.ovh,LRCLib]" {
		t.Errorf("unexpected provider name %s", got)
	}

	if _, err := NewLyrics(config.LyricsConfig{Providers: []string{"genius"}}); err == nil {
		t.Error("expected an error for an unknown provider")
	}
	if _, err := NewLyrics(config.LyricsConfig{}); err == nil {
		t.Error("expected an error without providers")
	}
}
