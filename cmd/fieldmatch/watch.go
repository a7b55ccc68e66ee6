package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/fieldmatch"
)

var watchFlags matchFlags

// watchCmd keeps the tag pass running against a vault, re-applying it when
// notes change on disk.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a vault and re-run the tag pass when notes change",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings := watchFlags.resolve(cmd)
		if settings.Adapter != fieldmatch.AdapterVault {
			fatal("Watch needs the vault adapter", fmt.Errorf("got adapter %q; pass --adapter vault", settings.Adapter))
		}

		service, err := openService(settings)
		if err != nil {
			fatal("Failed to open collection", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		events, err := service.Watch(ctx)
		if err != nil {
			fatal("Failed to watch vault", err)
		}

		run := func() {
			report, err := service.ApplyTag(ctx, settings.MatchSpec)
			if err != nil {
				slog.Error("match pass failed", "error", err)
				return
			}
			if report.Tagged > 0 {
				fmt.Println(report.Summary(settings.Tag))
			}
		}

		watchFlags.persist(settings)

		// Initial pass, then once per change.
		run()
		slog.Info("watching vault", "path", settings.Target)
		for range events {
			run()
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchFlags.register(watchCmd)
}
