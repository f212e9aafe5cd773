package lrclib

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/music"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://lrclib.net/api"

var (
	logger      = log.With().Str("component", "lrclib").Logger()
	timestampRe = regexp.MustCompile(`\[\d{2}:\d{2}(?:\.\d{1,3})?\]`)
)

// Client LRCLib客户端
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ music.LyricsAPI = (*Client)(nil)

// LRCLibResponse LRCLib API响应结构
type LRCLibResponse struct {
	ID           int    `json:"id"`
	TrackName    string `json:"trackName"`
	ArtistName   string `json:"artistName"`
	AlbumName    string `json:"albumName"`
	Duration     int    `json:"duration"`
	Instrumental bool   `json:"instrumental"`
	PlainLyrics  string `json:"plainLyrics"`
	SyncedLyrics string `json:"syncedLyrics"`
}

// LRCLibSearchResponse LRCLib API搜索响应（列表）
type LRCLibSearchResponse []LRCLibResponse

// NewClient 创建新的LRCLib客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// GetProviderName 返回提供商名称
func (c *Client) GetProviderName() string {
	return "LRCLib"
}

// FetchLyrics 获取纯文本歌词，失败时返回 ok=false
func (c *Client) FetchLyrics(ctx context.Context, artist, title string) (string, bool) {
	lyrics, err := c.search(ctx, title, artist)
	if err != nil {
		logger.Debug().Err(err).Str("artist", artist).Str("title", title).Msg("No lyrics")
		return "", false
	}
	return lyrics, true
}

func (c *Client) search(ctx context.Context, title, artist string) (string, error) {
	params := url.Values{}
	params.Set("track_name", title)
	params.Set("artist_name", artist)
	searchURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "lyricline/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request returned status %d", resp.StatusCode)
	}

	var lrcResponses LRCLibSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&lrcResponses); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(lrcResponses) == 0 {
		return "", fmt.Errorf("no lyrics found for '%s - %s'", title, artist)
	}

	bestMatch := findBestMatch(lrcResponses, title, artist)

	if strings.TrimSpace(bestMatch.PlainLyrics) != "" {
		return bestMatch.PlainLyrics, nil
	}
	if plain := StripTimestamps(bestMatch.SyncedLyrics); plain != "" {
		return plain, nil
	}

	return "", fmt.Errorf("selected result has no lyrics for '%s - %s'", title, artist)
}

// findBestMatch 优先标题+歌手都匹配，其次只匹配标题，最后取第一个结果
func findBestMatch(responses LRCLibSearchResponse, targetTitle, targetArtist string) *LRCLibResponse {
	var titleMatch *LRCLibResponse

	for i := range responses {
		response := &responses[i]
		if response.Instrumental {
			continue
		}
		if !containsIgnoreCase(response.TrackName, targetTitle) {
			continue
		}
		if containsIgnoreCase(response.ArtistName, targetArtist) {
			return response
		}
		if titleMatch == nil {
			titleMatch = response
		}
	}

	if titleMatch != nil {
		return titleMatch
	}
	return &responses[0]
}

// StripTimestamps removes LRC time tags and returns the remaining text.
func StripTimestamps(synced string) string {
	return strings.TrimSpace(timestampRe.ReplaceAllString(synced, ""))
}

// containsIgnoreCase 忽略大小写检查包含关系
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
