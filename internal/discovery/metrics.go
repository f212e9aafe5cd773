package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lyricline",
		Name:      "discovery_runs_total",
		Help:      "Discovery runs by outcome.",
	}, []string{"outcome"})

	lyricAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lyricline",
		Name:      "lyric_attempts_total",
		Help:      "Lyric fetch and line pick attempts by phase and result.",
	}, []string{"phase", "result"})

	catalogTracks = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lyricline",
		Name:      "catalog_tracks",
		Help:      "Distinct titles returned by the catalog per run.",
		Buckets:   []float64{0, 1, 5, 10, 20, 40, 60, 100},
	})
)
