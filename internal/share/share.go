package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/discovery"
)

const (
	ParamArtist = "artist"
	ParamText   = "text"
)

var ErrIncompleteShare = errors.New("share link needs both artist and text")

// Encode returns the query string that restores f's artist and line.
func Encode(f discovery.Finding) string {
	v := url.Values{}
	v.Set(ParamArtist, f.Artist)
	v.Set(ParamText, f.Line)
	return strings.ReplaceAll(v.Encode(), "+", "%20")
}

// Restore rebuilds a finding from a share query string. It does not contact
// any provider, so Title and Lyrics stay empty.
func Restore(query string) (discovery.Finding, error) {
	v, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return discovery.Finding{}, fmt.Errorf("failed to parse share query: %w", err)
	}
	return FromValues(v)
}

func FromValues(v url.Values) (discovery.Finding, error) {
	artist := strings.TrimSpace(v.Get(ParamArtist))
	text := strings.TrimSpace(v.Get(ParamText))
	if artist == "" || text == "" {
		return discovery.Finding{}, ErrIncompleteShare
	}
	return discovery.Finding{Artist: artist, Line: text}, nil
}
