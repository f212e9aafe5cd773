package app

import (
	"fmt"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/config"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/itunes"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/lrclib"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/lyricsovh"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/music"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/netease"
)

// NewCatalog 根据配置创建曲库客户端
func NewCatalog(cfg config.CatalogConfig) (music.CatalogAPI, error) {
	switch music.Provider(cfg.Provider) {
	case music.ProviderITunes, "":
		return itunes.NewClient(cfg.BaseURL, cfg.Timeout), nil
	case music.ProviderNetEase:
		return netease.NewClient(cfg.BaseURL, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported catalog provider: %s", cfg.Provider)
	}
}

// NewLyrics 根据配置创建歌词管理器，按配置顺序回退。
// BaseURL 只作用于第一个提供商。
func NewLyrics(cfg config.LyricsConfig) (*music.LyricsManager, error) {
	providers := make([]music.LyricsAPI, 0, len(cfg.Providers))
	for i, name := range cfg.Providers {
		baseURL := ""
		if i == 0 {
			baseURL = cfg.BaseURL
		}

		switch music.Provider(name) {
		case music.ProviderLyricsOvh:
			providers = append(providers, lyricsovh.NewClient(baseURL, cfg.Timeout))
		case music.ProviderLRCLib:
			providers = append(providers, lrclib.NewClient(baseURL, cfg.Timeout))
		default:
			return nil, fmt.Errorf("unsupported lyrics provider: %s", name)
		}
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no lyrics providers configured")
	}
	return music.NewLyricsManager(providers), nil
}
