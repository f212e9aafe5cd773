package discovery

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/lyrics"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/music"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultCatalogLimit   = 60
	DefaultSamplingBudget = 20
)

var logger = log.With().Str("component", "discovery").Logger()

// Phase is a state of a discovery run.
type Phase int

const (
	PhaseCatalog Phase = iota
	PhaseSampling
	PhaseFallback
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseCatalog:
		return "catalog"
	case PhaseSampling:
		return "sampling"
	case PhaseFallback:
		return "fallback"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Reason tells why a run ended without error.
type Reason int

const (
	ReasonFound Reason = iota
	ReasonNoSongs
	ReasonExhausted
)

func (r Reason) String() string {
	switch r {
	case ReasonFound:
		return "found"
	case ReasonNoSongs:
		return "no_songs"
	case ReasonExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Message is the user-facing text for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonFound:
		return "found a lyric line"
	case ReasonNoSongs:
		return "no songs found for this artist"
	case ReasonExhausted:
		return "no lyric lines found after exhausting candidates"
	default:
		return ""
	}
}

// Finding is a lyric line with the song it came from.
type Finding struct {
	Artist string `json:"artist"`
	Title  string `json:"title,omitempty"`
	Line   string `json:"line"`
	Lyrics string `json:"lyrics,omitempty"`
}

// Result of one Discover call. Finding is nil unless Reason is ReasonFound.
type Result struct {
	RunID            string
	Finding          *Finding
	Reason           Reason
	Phase            Phase
	Tracks           int
	SamplingAttempts int
	FallbackAttempts int
}

func (r Result) Found() bool {
	return r.Finding != nil
}

type Options struct {
	CatalogLimit   int
	SamplingBudget int
	// IntN draws a uniform index in [0, n); defaults to math/rand/v2.IntN.
	IntN func(n int) int
}

// Discoverer turns an artist name into one random lyric line. It holds no
// per-run state and can be shared between goroutines.
type Discoverer struct {
	catalog        music.CatalogAPI
	lyrics         music.LyricsAPI
	selector       lyrics.Selector
	catalogLimit   int
	samplingBudget int
	intN           func(n int) int
}

func New(catalog music.CatalogAPI, lyricsAPI music.LyricsAPI, opts Options) *Discoverer {
	if opts.CatalogLimit <= 0 {
		opts.CatalogLimit = DefaultCatalogLimit
	}
	if opts.SamplingBudget <= 0 {
		opts.SamplingBudget = DefaultSamplingBudget
	}
	if opts.IntN == nil {
		opts.IntN = rand.Intn
	}
	return &Discoverer{
		catalog:        catalog,
		lyrics:         lyricsAPI,
		selector:       lyrics.NewSelectorWithRand(opts.IntN),
		catalogLimit:   opts.CatalogLimit,
		samplingBudget: opts.SamplingBudget,
		intN:           opts.IntN,
	}
}

// Discover searches the artist's catalog for a song with a usable line.
//
// The only error coming from the providers wraps music.ErrCatalogUnavailable.
// A cancelled ctx stops the run with ctx.Err(), both while the catalog is
// searched and between lyric attempts. Lyric misses
// are never errors; an unsuccessful run is reported through Result.Reason.
func (d *Discoverer) Discover(ctx context.Context, artist string, preferLong bool) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	l := logger.With().Str("run_id", res.RunID).Str("artist", artist).Bool("prefer_long", preferLong).Logger()

	var tracks []string
	phase := PhaseCatalog

	for phase != PhaseDone {
		switch phase {
		case PhaseCatalog:
			var err error
			tracks, err = d.catalog.FetchTracks(ctx, artist, d.catalogLimit)
			if err != nil {
				if cerr := ctx.Err(); cerr != nil {
					return d.cancelled(l, res, PhaseCatalog, cerr)
				}
				runsTotal.WithLabelValues("catalog_unavailable").Inc()
				l.Error().Err(err).Str("catalog", d.catalog.GetProviderName()).Msg("Catalog search failed")
				if !errors.Is(err, music.ErrCatalogUnavailable) {
					err = fmt.Errorf("%w: %v", music.ErrCatalogUnavailable, err)
				}
				return res, err
			}
			res.Tracks = len(tracks)
			catalogTracks.Observe(float64(len(tracks)))

			if len(tracks) == 0 {
				res.Reason = ReasonNoSongs
				phase = PhaseDone
				continue
			}
			phase = PhaseSampling

		case PhaseSampling:
			budget := min(d.samplingBudget, len(tracks))
			for res.SamplingAttempts < budget {
				if err := ctx.Err(); err != nil {
					return d.cancelled(l, res, PhaseSampling, err)
				}
				title := tracks[d.intN(len(tracks))]
				res.SamplingAttempts++
				if f, ok := d.attempt(ctx, artist, title, preferLong, PhaseSampling); ok {
					return d.found(l, res, f, PhaseSampling), nil
				}
			}
			l.Info().Int("attempts", res.SamplingAttempts).Msg("Sampling budget spent, sweeping all tracks")
			phase = PhaseFallback

		case PhaseFallback:
			for _, title := range tracks {
				if err := ctx.Err(); err != nil {
					return d.cancelled(l, res, PhaseFallback, err)
				}
				res.FallbackAttempts++
				if f, ok := d.attempt(ctx, artist, title, preferLong, PhaseFallback); ok {
					return d.found(l, res, f, PhaseFallback), nil
				}
			}
			res.Reason = ReasonExhausted
			phase = PhaseDone
		}
	}

	res.Phase = PhaseDone
	runsTotal.WithLabelValues(res.Reason.String()).Inc()
	l.Info().
		Str("reason", res.Reason.String()).
		Int("tracks", res.Tracks).
		Int("sampling_attempts", res.SamplingAttempts).
		Int("fallback_attempts", res.FallbackAttempts).
		Msg("No lyric line found")
	return res, nil
}

func (d *Discoverer) attempt(ctx context.Context, artist, title string, preferLong bool, phase Phase) (*Finding, bool) {
	text, ok := d.lyrics.FetchLyrics(ctx, artist, title)
	if !ok {
		lyricAttemptsTotal.WithLabelValues(phase.String(), "no_lyrics").Inc()
		return nil, false
	}
	line, ok := d.selector.Pick(text, preferLong)
	if !ok {
		lyricAttemptsTotal.WithLabelValues(phase.String(), "no_line").Inc()
		return nil, false
	}
	lyricAttemptsTotal.WithLabelValues(phase.String(), "hit").Inc()
	return &Finding{Artist: artist, Title: title, Line: line, Lyrics: text}, true
}

func (d *Discoverer) found(l zerolog.Logger, res Result, f *Finding, phase Phase) Result {
	res.Finding = f
	res.Reason = ReasonFound
	res.Phase = phase
	runsTotal.WithLabelValues(ReasonFound.String()).Inc()
	l.Info().
		Str("title", f.Title).
		Str("phase", phase.String()).
		Int("sampling_attempts", res.SamplingAttempts).
		Int("fallback_attempts", res.FallbackAttempts).
		Msg("Found lyric line")
	return res
}

// cancelled ends a run the caller abandoned. Phase is the phase that was
// interrupted.
func (d *Discoverer) cancelled(l zerolog.Logger, res Result, phase Phase, err error) (Result, error) {
	res.Phase = phase
	runsTotal.WithLabelValues("cancelled").Inc()
	l.Info().
		Err(err).
		Str("phase", phase.String()).
		Int("sampling_attempts", res.SamplingAttempts).
		Int("fallback_attempts", res.FallbackAttempts).
		Msg("Discovery cancelled")
	return res, err
}
