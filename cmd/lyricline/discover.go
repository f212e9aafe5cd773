package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/api"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/app"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/player"
	"github.com/spf13/cobra"
)

var (
	discoverLong       bool
	discoverNowPlaying bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover [artist]",
	Short: "Print one random lyric line by the artist",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		artist := strings.Join(args, " ")
		if discoverNowPlaying {
			current, err := player.CurrentArtist(ctx)
			if err != nil {
				return err
			}
			artist = current
		}

		req, err := api.Request{Artist: artist, PreferLong: discoverLong}.Normalize()
		if err != nil {
			return err
		}

		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Service().Discover(ctx, req.Artist, req.PreferLong)
		if err != nil {
			return errors.New(api.FromError(err).Error)
		}

		out := cmd.OutOrStdout()
		if !res.Found() {
			fmt.Fprintln(out, res.Reason.Message())
			return nil
		}
		resp := api.FromResult(res)
		fmt.Fprintf(out, "%s\n  (%s, %s)\n  share: ?%s\n", resp.Line, resp.Artist, resp.Title, resp.Share)
		return nil
	},
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverLong, "long", false, "prefer lines of at least 30 characters")
	discoverCmd.Flags().BoolVar(&discoverNowPlaying, "now-playing", false, "use the artist playerctl reports")
}
