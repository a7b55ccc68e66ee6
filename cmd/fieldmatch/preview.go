package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	previewFlags matchFlags
	previewJSON  bool
)

// previewCmd runs the pass without writing anything.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show which notes the tag pass would touch, without writing",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings := previewFlags.resolve(cmd)
		service, err := openService(settings)
		if err != nil {
			fatal("Failed to open collection", err)
		}

		matched, report, err := service.Preview(context.Background(), settings.MatchSpec)
		if err != nil {
			fatal("Match pass failed", err)
		}

		if previewJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(matched); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, n := range matched {
			marker := "+"
			if n.HasTag(settings.Tag) {
				marker = "="
			}
			fmt.Printf("%s %s  %q | %q\n", marker, n.ID, n.Fields[settings.FieldA], n.Fields[settings.FieldB])
		}
		fmt.Printf("%d matched, %d would be tagged, %d skipped\n",
			report.Matched, report.Tagged, report.Skipped)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewFlags.register(previewCmd)
	previewCmd.Flags().BoolVar(&previewJSON, "json", false, "Output in JSON format")
}
