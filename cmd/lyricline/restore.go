package main

import (
	"fmt"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/share"
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <query>",
	Short: "Show a shared line from its artist=...&text=... query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := share.Restore(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n  (%s)\n", f.Line, f.Artist)
		return nil
	},
}
