package netease

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/music"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://music.163.com"

var logger = log.With().Str("component", "netease").Logger()

// NeteaseSearchResponse 网易云搜索API响应
type NeteaseSearchResponse struct {
	Code   int `json:"code"`
	Result struct {
		Songs []struct {
			ID      int    `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"songs"`
	} `json:"result"`
}

// Client 网易云音乐客户端
type Client struct {
	httpClient *http.Client
	baseURL    string
	cookie     string
}

var _ music.CatalogAPI = (*Client)(nil)

// NewClient 创建新的网易云音乐客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		cookie:     os.Getenv("NETEASE_COOKIE"),
	}
}

// GetProviderName 获取提供商名称
func (c *Client) GetProviderName() string {
	return "NetEase Cloud Music"
}

// FetchTracks 搜索歌手的歌曲。只保留歌手名匹配的结果
func (c *Client) FetchTracks(ctx context.Context, artist string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("s", artist)
	params.Set("type", "1")
	params.Set("limit", strconv.Itoa(limit))
	searchURL := fmt.Sprintf("%s/api/search/get/web?%s", c.baseURL, params.Encode())
	logger.Debug().Str("url", searchURL).Msg("Searching catalog")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create search request: %v", music.ErrCatalogUnavailable, err)
	}

	// 设置Cookie
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send search request: %v", music.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search API request failed with status %d", music.ErrCatalogUnavailable, resp.StatusCode)
	}

	var searchResp NeteaseSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode search response: %v", music.ErrCatalogUnavailable, err)
	}

	var titles []string
	for _, song := range searchResp.Result.Songs {
		// artists 可能有多个，只要一个满足就算
		for _, a := range song.Artists {
			if containsIgnoreCase(a.Name, artist) {
				titles = append(titles, song.Name)
				break
			}
		}
	}

	tracks := music.UniqueTitles(titles)
	logger.Info().
		Str("artist", artist).
		Int("results", len(searchResp.Result.Songs)).
		Int("tracks", len(tracks)).
		Msg("Catalog search finished")
	return tracks, nil
}

// normalizeString 标准化字符串（转小写，去空格）
func normalizeString(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// containsIgnoreCase 忽略大小写和空格的包含关系检查
func containsIgnoreCase(s1, s2 string) bool {
	norm1, norm2 := normalizeString(s1), normalizeString(s2)
	return strings.Contains(norm1, norm2) || strings.Contains(norm2, norm1)
}
