package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/config"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/discovery"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/httpapi"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/ipc"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/publish"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/statusbar"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/redis"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	cfg     *config.Config
	service *Service
	redis   *redis.Client
}

// New wires the catalog, the lyrics providers and the optional sinks.
// Redis is only dialled when enabled in the config.
func New(cfg *config.Config) (*App, error) {
	catalog, err := NewCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	lyricsAPI, err := NewLyrics(cfg.Lyrics)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("catalog", catalog.GetProviderName()).
		Str("lyrics", lyricsAPI.GetProviderName()).
		Msg("Providers ready")

	d := discovery.New(catalog, lyricsAPI, discovery.Options{
		CatalogLimit:   cfg.Catalog.Limit,
		SamplingBudget: cfg.Discovery.SamplingBudget,
	})

	a := &App{cfg: cfg}

	var sinks publish.Multi
	if cfg.App.LastLineFile != "" {
		sinks = append(sinks, publish.NewFileSink(cfg.App.LastLineFile))
		if cfg.StatusBar.Signal > 0 {
			sinks = append(sinks, statusbar.NewNotifier(cfg.StatusBar.Process, cfg.StatusBar.Signal))
		}
	}
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Str("channel", cfg.Redis.Channel).Msg("Publishing findings to redis")
		a.redis = client
		sinks = append(sinks, publish.NewRedisSink(client, cfg.Redis.Channel))
	}

	var sink publish.Sink
	if len(sinks) > 0 {
		sink = sinks
	}
	a.service = NewService(d, sink)
	return a, nil
}

// Service exposes the discovery entry point used by the CLI.
func (a *App) Service() *Service {
	return a.service
}

// Run serves HTTP and the unix socket until ctx is done or one of them fails.
func (a *App) Run(ctx context.Context) error {
	ipcServer := ipc.NewServer(a.cfg.App.SocketPath, a.service)
	if err := ipcServer.Start(); err != nil {
		return fmt.Errorf("failed to start IPC server: %w", err)
	}
	defer ipcServer.Close()

	httpServer := &http.Server{
		Addr:    a.cfg.App.ListenAddr,
		Handler: httpapi.NewRouter(a.service),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *App) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}
