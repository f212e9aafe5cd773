package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultSocketPath     = "/tmp/lyricline.sock"
	DefaultListenAddr     = ":8080"
	DefaultCatalogLimit   = 60
	DefaultSamplingBudget = 20
	DefaultTimeout        = 10 * time.Second
	DefaultRedisChannel   = "lyricline:findings"
)

// TomlConfig TOML配置文件结构
type TomlConfig struct {
	App struct {
		SocketPath   string `toml:"socket_path"`
		ListenAddr   string `toml:"listen_addr"`
		LastLineFile string `toml:"last_line_file"`
	} `toml:"app"`

	Catalog struct {
		Provider string `toml:"provider"`
		BaseURL  string `toml:"base_url"`
		Limit    int    `toml:"limit"`
		Timeout  string `toml:"timeout"`
	} `toml:"catalog"`

	Lyrics struct {
		Providers []string `toml:"providers"`
		BaseURL   string   `toml:"base_url"`
		Timeout   string   `toml:"timeout"`
	} `toml:"lyrics"`

	Discovery struct {
		SamplingBudget int `toml:"sampling_budget"`
	} `toml:"discovery"`

	Redis struct {
		Enabled  bool   `toml:"enabled"`
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
		Channel  string `toml:"channel"`
	} `toml:"redis"`

	StatusBar struct {
		Process string `toml:"process"`
		Signal  int    `toml:"signal"`
	} `toml:"statusbar"`

	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	SocketPath   string `validate:"required"`
	ListenAddr   string `validate:"required"`
	LastLineFile string
}

// CatalogConfig 曲库配置
type CatalogConfig struct {
	Provider string        `validate:"oneof=itunes netease"`
	BaseURL  string        `validate:"omitempty,url"`
	Limit    int           `validate:"min=1,max=200"`
	Timeout  time.Duration `validate:"gt=0"`
}

// LyricsConfig 歌词配置
type LyricsConfig struct {
	Providers []string      `validate:"min=1,dive,oneof=lyricsovh lrclib"`
	BaseURL   string        `validate:"omitempty,url"`
	Timeout   time.Duration `validate:"gt=0"`
}

type DiscoveryConfig struct {
	SamplingBudget int `validate:"min=1"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled  bool
	Addr     string `validate:"required_if=Enabled true"`
	Password string
	DB       int    `validate:"min=0"`
	Channel  string `validate:"required_if=Enabled true"`
}

// StatusBarConfig 状态栏刷新配置，Signal 为 0 时不发送信号
type StatusBarConfig struct {
	Process string `validate:"required_unless=Signal 0"`
	Signal  int    `validate:"min=0,max=64"`
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// Config 主配置结构
type Config struct {
	App       AppConfig
	Catalog   CatalogConfig
	Lyrics    LyricsConfig
	Discovery DiscoveryConfig
	Redis     RedisConfig
	StatusBar StatusBarConfig
	Log       LogConfig
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		App: AppConfig{
			SocketPath: DefaultSocketPath,
			ListenAddr: DefaultListenAddr,
		},
		Catalog: CatalogConfig{
			Provider: "itunes",
			Limit:    DefaultCatalogLimit,
			Timeout:  DefaultTimeout,
		},
		Lyrics: LyricsConfig{
			Providers: []string{"lyricsovh"},
			Timeout:   DefaultTimeout,
		},
		Discovery: DiscoveryConfig{
			SamplingBudget: DefaultSamplingBudget,
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Channel: DefaultRedisChannel,
		},
		StatusBar: StatusBarConfig{
			Process: "i3blocks",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath 获取配置文件路径
func DefaultPath() string {
	// 优先使用 XDG_CONFIG_HOME 环境变量
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "lyricline", "config.toml")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("Cannot get user home directory")
		return "config.toml"
	}

	return filepath.Join(homeDir, ".config", "lyricline", "config.toml")
}

// loadTomlConfig 加载TOML配置文件，文件不存在时返回空配置
func loadTomlConfig(configPath string) (*TomlConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Info().Str("path", configPath).Msg("Config file not found, using defaults")
		return &TomlConfig{}, nil
	}

	var config TomlConfig
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", configPath, err)
	}

	log.Info().Str("path", configPath).Msg("Loaded config")
	return &config, nil
}

// Load reads .env, the TOML file at path (DefaultPath when empty) and the
// LYRICLINE_* environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	if path == "" {
		path = DefaultPath()
	}
	tomlConfig, err := loadTomlConfig(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	applyToml(config, tomlConfig)
	applyEnv(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// applyToml 用TOML配置覆盖默认值
func applyToml(config *Config, tc *TomlConfig) {
	if tc.App.SocketPath != "" {
		config.App.SocketPath = tc.App.SocketPath
	}
	if tc.App.ListenAddr != "" {
		config.App.ListenAddr = tc.App.ListenAddr
	}
	if tc.App.LastLineFile != "" {
		config.App.LastLineFile = tc.App.LastLineFile
	}

	if tc.Catalog.Provider != "" {
		config.Catalog.Provider = tc.Catalog.Provider
	}
	if tc.Catalog.BaseURL != "" {
		config.Catalog.BaseURL = tc.Catalog.BaseURL
	}
	if tc.Catalog.Limit != 0 {
		config.Catalog.Limit = tc.Catalog.Limit
	}
	config.Catalog.Timeout = parseDuration("catalog.timeout", tc.Catalog.Timeout, config.Catalog.Timeout)

	if len(tc.Lyrics.Providers) > 0 {
		config.Lyrics.Providers = tc.Lyrics.Providers
	}
	if tc.Lyrics.BaseURL != "" {
		config.Lyrics.BaseURL = tc.Lyrics.BaseURL
	}
	config.Lyrics.Timeout = parseDuration("lyrics.timeout", tc.Lyrics.Timeout, config.Lyrics.Timeout)

	if tc.Discovery.SamplingBudget != 0 {
		config.Discovery.SamplingBudget = tc.Discovery.SamplingBudget
	}

	config.Redis.Enabled = tc.Redis.Enabled
	if tc.Redis.Addr != "" {
		config.Redis.Addr = tc.Redis.Addr
	}
	if tc.Redis.Password != "" {
		config.Redis.Password = tc.Redis.Password
	}
	if tc.Redis.DB != 0 {
		config.Redis.DB = tc.Redis.DB
	}
	if tc.Redis.Channel != "" {
		config.Redis.Channel = tc.Redis.Channel
	}

	if tc.StatusBar.Process != "" {
		config.StatusBar.Process = tc.StatusBar.Process
	}
	if tc.StatusBar.Signal != 0 {
		config.StatusBar.Signal = tc.StatusBar.Signal
	}

	if tc.Log.Level != "" {
		config.Log.Level = tc.Log.Level
	}
}

func applyEnv(config *Config) {
	if v := os.Getenv("LYRICLINE_LISTEN_ADDR"); v != "" {
		config.App.ListenAddr = v
	}
	if v := os.Getenv("LYRICLINE_SOCKET_PATH"); v != "" {
		config.App.SocketPath = v
	}
	if v := os.Getenv("LYRICLINE_REDIS_ADDR"); v != "" {
		config.Redis.Addr = v
		config.Redis.Enabled = true
	}
	if v := os.Getenv("LYRICLINE_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			config.Redis.DB = db
		} else {
			log.Warn().Str("value", v).Msg("Invalid LYRICLINE_REDIS_DB, ignoring")
		}
	}
	if v := os.Getenv("LYRICLINE_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
}

func parseDuration(key, raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("Invalid duration format, using default")
		return fallback
	}
	return d
}
