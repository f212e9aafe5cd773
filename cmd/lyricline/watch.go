package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/publish"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/redis"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print findings published by a running server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		defer client.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		log.Info().Str("channel", cfg.Redis.Channel).Msg("Watching for findings")
		err = client.Subscribe(ctx, cfg.Redis.Channel, func(payload string) {
			var msg publish.Message
			if err := json.Unmarshal([]byte(payload), &msg); err != nil {
				log.Warn().Err(err).Msg("Skipping malformed message")
				return
			}
			fmt.Fprintf(out, "[%s] %s\n  (%s, %s)\n", msg.PublishedAt.Local().Format("15:04:05"), msg.Line, msg.Artist, msg.Title)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
