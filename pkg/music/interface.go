package music

import (
	"context"
	"errors"
	"strings"
)

// ErrCatalogUnavailable 曲库搜索失败（网络不可达或非成功状态码）
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// CatalogAPI 曲库搜索接口
type CatalogAPI interface {
	// FetchTracks 按歌手搜索歌曲标题，结果去重且不含空标题，顺序无意义
	FetchTracks(ctx context.Context, artist string, limit int) ([]string, error)

	// GetProviderName 获取提供商名称
	GetProviderName() string
}

// LyricsAPI 歌词接口。任何失败都返回 ok=false，不返回错误
type LyricsAPI interface {
	FetchLyrics(ctx context.Context, artist, title string) (lyrics string, ok bool)

	GetProviderName() string
}

// UniqueTitles drops blank titles and collapses exact duplicates.
func UniqueTitles(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	result := make([]string, 0, len(titles))
	for _, t := range titles {
		if strings.TrimSpace(t) == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}
	return result
}
