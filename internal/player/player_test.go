package player

import (
	"context"
	"errors"
	"testing"
)

func TestCurrentArtist(t *testing.T) {
	orig := runPlayerctl
	defer func() { runPlayerctl = orig }()

	tests := []struct {
		name    string
		output  string
		err     error
		want    string
		wantErr bool
	}{
		{name: "playing", output: "Adele\n", want: "Adele"},
		{name: "no artist tag", output: "\n", wantErr: true},
		{name: "no player", err: errors.New("exit status 1"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runPlayerctl = func(ctx context.Context, args ...string) ([]byte, error) {
				if len(args) != 3 || args[0] != "metadata" || args[2] != "{{artist}}" {
					t.Errorf("unexpected args %v", args)
				}
				return []byte(tt.output), tt.err
			}

			got, err := CurrentArtist(context.Background())
			if tt.wantErr {
				if !errors.Is(err, ErrNothingPlaying) {
					t.Fatalf("expected ErrNothingPlaying, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("got %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}
