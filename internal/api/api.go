// Package api holds the request and response shapes shared by the HTTP and
// unix socket front ends.
package api

import (
	"context"
	"errors"
	"strings"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/discovery"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/share"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/music"
)

var ErrArtistRequired = errors.New("artist is required")

// Discoverer is implemented by discovery.Discoverer and app.Service.
type Discoverer interface {
	Discover(ctx context.Context, artist string, preferLong bool) (discovery.Result, error)
}

type Request struct {
	Artist     string `json:"artist"`
	PreferLong bool   `json:"prefer_long"`
}

// Normalize trims the artist and rejects an empty one.
func (r Request) Normalize() (Request, error) {
	r.Artist = strings.TrimSpace(r.Artist)
	if r.Artist == "" {
		return r, ErrArtistRequired
	}
	return r, nil
}

type Response struct {
	Found   bool   `json:"found"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	Artist  string `json:"artist,omitempty"`
	Title   string `json:"title,omitempty"`
	Line    string `json:"line,omitempty"`
	Share   string `json:"share,omitempty"`
	RunID   string `json:"run_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func FromResult(res discovery.Result) Response {
	resp := Response{
		Found:   res.Found(),
		Reason:  res.Reason.String(),
		Message: res.Reason.Message(),
		RunID:   res.RunID,
	}
	if res.Finding != nil {
		resp.Artist = res.Finding.Artist
		resp.Title = res.Finding.Title
		resp.Line = res.Finding.Line
		resp.Share = share.Encode(*res.Finding)
	}
	return resp
}

func FromFinding(f discovery.Finding) Response {
	return Response{
		Found:  true,
		Reason: discovery.ReasonFound.String(),
		Artist: f.Artist,
		Title:  f.Title,
		Line:   f.Line,
		Share:  share.Encode(f),
	}
}

// FromError maps a Discover error to the text shown to users.
func FromError(err error) Response {
	switch {
	case errors.Is(err, music.ErrCatalogUnavailable):
		return Response{Error: "song catalog unavailable, check your network and try again later"}
	case errors.Is(err, ErrArtistRequired), errors.Is(err, share.ErrIncompleteShare):
		return Response{Error: err.Error()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Response{Error: "request cancelled"}
	default:
		return Response{Error: "internal error"}
	}
}
