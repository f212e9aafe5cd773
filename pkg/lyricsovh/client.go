package lyricsovh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/music"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://api.lyrics.ovh"

var logger = log.With().Str("component", "lyricsovh").Logger()

// Response lyrics.ovh 响应
type Response struct {
	Lyrics string `json:"lyrics"`
	Error  string `json:"error"`
}

// Client lyrics.ovh 客户端
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ music.LyricsAPI = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

func (c *Client) GetProviderName() string {
	return "lyrics.ovh"
}

// FetchLyrics returns the lyric body, or ok=false on any failure.
func (c *Client) FetchLyrics(ctx context.Context, artist, title string) (string, bool) {
	lyrics, err := c.fetch(ctx, artist, title)
	if err != nil {
		logger.Debug().Err(err).Str("artist", artist).Str("title", title).Msg("No lyrics")
		return "", false
	}
	return lyrics, true
}

func (c *Client) fetch(ctx context.Context, artist, title string) (string, error) {
	lyricURL := fmt.Sprintf("%s/v1/%s/%s", c.baseURL, url.PathEscape(artist), url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lyricURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create lyric request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send lyric request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lyric request failed with status %d", resp.StatusCode)
	}

	var lyricResp Response
	if err := json.NewDecoder(resp.Body).Decode(&lyricResp); err != nil {
		return "", fmt.Errorf("failed to decode lyric response: %w", err)
	}

	if lyricResp.Error != "" {
		return "", fmt.Errorf("lyrics.ovh error: %s", lyricResp.Error)
	}
	if strings.TrimSpace(lyricResp.Lyrics) == "" {
		return "", fmt.Errorf("empty lyrics for '%s - %s'", artist, title)
	}

	return lyricResp.Lyrics, nil
}
