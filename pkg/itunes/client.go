package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/music"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://itunes.apple.com"

var logger = log.With().Str("component", "itunes").Logger()

// SearchResponse iTunes Search API响应
type SearchResponse struct {
	ResultCount int `json:"resultCount"`
	Results     []struct {
		TrackName  string `json:"trackName"`
		ArtistName string `json:"artistName"`
	} `json:"results"`
}

// Client iTunes Search 客户端
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ music.CatalogAPI = (*Client)(nil)

// NewClient 创建新的iTunes客户端，baseURL为空时使用官方地址
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// GetProviderName 获取提供商名称
func (c *Client) GetProviderName() string {
	return "iTunes"
}

// FetchTracks 搜索歌手的歌曲标题
func (c *Client) FetchTracks(ctx context.Context, artist string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("term", artist)
	params.Set("entity", "song")
	params.Set("limit", strconv.Itoa(limit))
	searchURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	logger.Debug().Str("url", searchURL).Msg("Searching catalog")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create search request: %v", music.ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send search request: %v", music.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: search request failed with status %d", music.ErrCatalogUnavailable, resp.StatusCode)
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode search response: %v", music.ErrCatalogUnavailable, err)
	}

	titles := make([]string, 0, len(searchResp.Results))
	for _, r := range searchResp.Results {
		titles = append(titles, r.TrackName)
	}
	tracks := music.UniqueTitles(titles)

	logger.Info().
		Str("artist", artist).
		Int("results", len(searchResp.Results)).
		Int("tracks", len(tracks)).
		Msg("Catalog search finished")
	return tracks, nil
}
