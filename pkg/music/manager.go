package music

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Provider 音乐提供商类型
type Provider string

const (
	// ProviderITunes iTunes Search 曲库
	ProviderITunes Provider = "itunes"
	// ProviderNetEase 网易云音乐曲库
	ProviderNetEase Provider = "netease"
	// ProviderLyricsOvh lyrics.ovh 歌词库
	ProviderLyricsOvh Provider = "lyricsovh"
	// ProviderLRCLib LRCLib歌词库
	ProviderLRCLib Provider = "lrclib"
)

var logger = log.With().Str("component", "lyrics-manager").Logger()

// LyricsManager 歌词提供商管理器，按顺序回退
type LyricsManager struct {
	providers []LyricsAPI
	primary   LyricsAPI
}

var _ LyricsAPI = (*LyricsManager)(nil)

// NewLyricsManager 创建新的歌词管理器
func NewLyricsManager(providers []LyricsAPI) *LyricsManager {
	if len(providers) == 0 {
		logger.Warn().Msg("No lyrics providers configured")
		return &LyricsManager{}
	}

	primary := providers[0]
	logger.Info().
		Int("provider_count", len(providers)).
		Str("primary_provider", primary.GetProviderName()).
		Msg("Lyrics manager initialized")

	return &LyricsManager{
		providers: providers,
		primary:   primary,
	}
}

// FetchLyrics 依次尝试每个提供商，返回第一个非空歌词
func (m *LyricsManager) FetchLyrics(ctx context.Context, artist, title string) (string, bool) {
	for i, provider := range m.providers {
		lyrics, ok := provider.FetchLyrics(ctx, artist, title)
		if ok {
			logger.Debug().
				Str("provider", provider.GetProviderName()).
				Str("artist", artist).
				Str("title", title).
				Msg("Got lyrics")
			return lyrics, true
		}

		logger.Debug().
			Str("provider", provider.GetProviderName()).
			Int("attempt", i+1).
			Int("total_providers", len(m.providers)).
			Str("title", title).
			Msg("Provider had no lyrics")
	}
	return "", false
}

// GetProviderName 获取管理器名称
func (m *LyricsManager) GetProviderName() string {
	if m.primary != nil {
		return fmt.Sprintf("Manager[%s]", strings.Join(m.GetProviderNames(), ","))
	}
	return "Manager[No Providers]"
}

// GetProviderCount 获取提供商数量
func (m *LyricsManager) GetProviderCount() int {
	return len(m.providers)
}

// GetProviderNames 获取所有提供商名称
func (m *LyricsManager) GetProviderNames() []string {
	names := make([]string, len(m.providers))
	for i, provider := range m.providers {
		names[i] = provider.GetProviderName()
	}
	return names
}
