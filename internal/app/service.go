package app

import (
	"context"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/api"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/discovery"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/publish"
	"github.com/rs/zerolog/log"
)

// Service runs discoveries and hands every finding to the configured sink.
// A failing sink is logged and never changes the result.
type Service struct {
	discoverer api.Discoverer
	sink       publish.Sink
}

func NewService(discoverer api.Discoverer, sink publish.Sink) *Service {
	return &Service{discoverer: discoverer, sink: sink}
}

func (s *Service) Discover(ctx context.Context, artist string, preferLong bool) (discovery.Result, error) {
	res, err := s.discoverer.Discover(ctx, artist, preferLong)
	if err != nil || !res.Found() || s.sink == nil {
		return res, err
	}

	if err := s.sink.Publish(ctx, *res.Finding); err != nil {
		log.Warn().Err(err).Str("run_id", res.RunID).Msg("Failed to publish finding")
	}
	return res, nil
}
