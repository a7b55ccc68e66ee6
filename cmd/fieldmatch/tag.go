package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	tagFlags    matchFlags
	tagThenSync bool
)

// tagCmd runs the pass and applies the tag.
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Compare two fields across the filtered notes and tag the matches",
	Long: `Run the match pass: for every note returned by the filter, read both
fields, compare them under the selected mode, and add the tag to matching
notes. Notes missing either field are skipped. Re-running is idempotent.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings := tagFlags.resolve(cmd)
		service, err := openService(settings)
		if err != nil {
			fatal("Failed to open collection", err)
		}

		ctx := context.Background()
		report, err := service.ApplyTag(ctx, settings.MatchSpec)
		if err != nil {
			fatal("Match pass failed", err)
		}

		tagFlags.persist(settings)
		fmt.Println(report.Summary(settings.Tag))

		if tagThenSync {
			if err := service.Sync(ctx); err != nil {
				fatal("Sync failed", err)
			}
			fmt.Println("Collection synced.")
		}
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagFlags.register(tagCmd)
	tagCmd.Flags().BoolVar(&tagThenSync, "sync", false, "Trigger the host's sync after tagging")
}
