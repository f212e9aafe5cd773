package player

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// ErrNothingPlaying is returned when playerctl reports no artist.
var ErrNothingPlaying = errors.New("no music playing")

// runPlayerctl 执行 playerctl，测试时可替换
var runPlayerctl = func(ctx context.Context, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, "playerctl", args...).Output()
}

// CurrentArtist returns the artist of the track an MPRIS player is playing.
func CurrentArtist(ctx context.Context) (string, error) {
	output, err := runPlayerctl(ctx, "metadata", "--format", "{{artist}}")
	if err != nil {
		return "", ErrNothingPlaying
	}
	artist := strings.TrimSpace(string(output))
	if artist == "" {
		return "", ErrNothingPlaying
	}
	return artist, nil
}
