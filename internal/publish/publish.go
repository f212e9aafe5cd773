package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/discovery"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/share"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/fileutil"
	"github.com/rs/zerolog/log"
)

var logger = log.With().Str("component", "publish").Logger()

// Sink receives every finding produced by the service.
type Sink interface {
	Publish(ctx context.Context, f discovery.Finding) error
}

// Message is the wire form of a published finding.
type Message struct {
	Artist      string    `json:"artist"`
	Title       string    `json:"title,omitempty"`
	Line        string    `json:"line"`
	Share       string    `json:"share"`
	PublishedAt time.Time `json:"published_at"`
}

func NewMessage(f discovery.Finding) Message {
	return Message{
		Artist:      f.Artist,
		Title:       f.Title,
		Line:        f.Line,
		Share:       share.Encode(f),
		PublishedAt: time.Now().UTC(),
	}
}

// Publisher is the part of pkg/redis.Client used here.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) (int64, error)
}

type RedisSink struct {
	client  Publisher
	channel string
}

func NewRedisSink(client Publisher, channel string) *RedisSink {
	return &RedisSink{client: client, channel: channel}
}

func (s *RedisSink) Publish(ctx context.Context, f discovery.Finding) error {
	payload, err := json.Marshal(NewMessage(f))
	if err != nil {
		return fmt.Errorf("failed to encode finding: %w", err)
	}
	receivers, err := s.client.Publish(ctx, s.channel, payload)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", s.channel, err)
	}
	logger.Debug().Str("channel", s.channel).Int64("receivers", receivers).Msg("Published finding")
	return nil
}

// FileSink mirrors the latest line into a file, for status bars and the like.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Publish(ctx context.Context, f discovery.Finding) error {
	return fileutil.WriteFileOverwrite(s.path, []byte(f.Line+"\n"), 0644)
}

// Multi fans a finding out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Publish(ctx context.Context, f discovery.Finding) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
