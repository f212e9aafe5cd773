package main

import (
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/app"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lyricline",
	Short: "Pick a random lyric line from an artist's songs",
	Long: `lyricline looks up an artist's songs, samples a few at random and
prints one lyric line from the first song that has usable lyrics.

Examples:
  lyricline discover "Adele"
  lyricline discover --long "Taylor Swift"
  lyricline restore "artist=Adele&text=Hello%20from%20the%20other%20side"
  lyricline serve
  lyricline watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if verbose {
			loaded.Log.Level = "debug"
		}
		app.SetupLogger(loaded.Log.Level)
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/lyricline/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd, discoverCmd, restoreCmd, watchCmd)
}
