package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Catalog.Provider != "itunes" || cfg.Catalog.Limit != DefaultCatalogLimit {
		t.Errorf("unexpected catalog defaults %+v", cfg.Catalog)
	}
	if len(cfg.Lyrics.Providers) != 1 || cfg.Lyrics.Providers[0] != "lyricsovh" {
		t.Errorf("unexpected lyrics defaults %+v", cfg.Lyrics)
	}
	if cfg.Discovery.SamplingBudget != DefaultSamplingBudget {
		t.Errorf("unexpected sampling budget %d", cfg.Discovery.SamplingBudget)
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[app]
listen_addr = "127.0.0.1:9000"

[catalog]
provider = "netease"
limit = 30
timeout = "3s"

[lyrics]
providers = ["lyricsovh", "lrclib"]
timeout = "nonsense"

[discovery]
sampling_budget = 5

[redis]
enabled = true
addr = "redis:6379"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("listen_addr not applied: %q", cfg.App.ListenAddr)
	}
	if cfg.Catalog.Provider != "netease" || cfg.Catalog.Limit != 30 || cfg.Catalog.Timeout != 3*time.Second {
		t.Errorf("catalog not applied: %+v", cfg.Catalog)
	}
	if len(cfg.Lyrics.Providers) != 2 {
		t.Errorf("lyrics providers not applied: %v", cfg.Lyrics.Providers)
	}
	if cfg.Lyrics.Timeout != DefaultTimeout {
		t.Errorf("invalid timeout should fall back to default, got %v", cfg.Lyrics.Timeout)
	}
	if cfg.Discovery.SamplingBudget != 5 {
		t.Errorf("sampling budget not applied: %d", cfg.Discovery.SamplingBudget)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "redis:6379" || cfg.Redis.Channel != DefaultRedisChannel {
		t.Errorf("redis not applied: %+v", cfg.Redis)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level not applied: %q", cfg.Log.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LYRICLINE_LISTEN_ADDR", ":7070")
	t.Setenv("LYRICLINE_REDIS_ADDR", "cache:6379")
	t.Setenv("LYRICLINE_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "[app]\nlisten_addr = \":9000\"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.ListenAddr != ":7070" {
		t.Errorf("env should win over file, got %q", cfg.App.ListenAddr)
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "cache:6379" {
		t.Errorf("redis env override not applied: %+v", cfg.Redis)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level env override not applied: %q", cfg.Log.Level)
	}
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"UnknownCatalog": "[catalog]\nprovider = \"spotify\"\n",
		"UnknownLyrics":  "[lyrics]\nproviders = [\"genius\"]\n",
		"BadLevel":       "[log]\nlevel = \"loud\"\n",
		"BadBaseURL":     "[catalog]\nbase_url = \"not a url\"\n",
		"BrokenToml":     "[catalog\n",
		"BadSignal":      "[statusbar]\nsignal = 99\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadStatusBar(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[app]\nlast_line_file = \"/tmp/line\"\n\n[statusbar]\nsignal = 10\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.LastLineFile != "/tmp/line" {
		t.Errorf("last_line_file not applied: %q", cfg.App.LastLineFile)
	}
	if cfg.StatusBar.Process != "i3blocks" || cfg.StatusBar.Signal != 10 {
		t.Errorf("unexpected statusbar config %+v", cfg.StatusBar)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != "/tmp/xdg/lyricline/config.toml" {
		t.Errorf("unexpected path %q", got)
	}
}
