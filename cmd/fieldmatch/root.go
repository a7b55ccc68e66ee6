package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	adapter string
	target  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fieldmatch",
	Short: "Tag flashcard notes whose fields are equal, unequal, or match a rule",
	Long: `fieldmatch compares two note fields across a filtered set of flashcards
and applies a tag based on the comparison. It talks to a running Anki via
AnkiConnect, or to a local vault of Markdown notes with frontmatter.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Collection backend: ankiconnect or vault (default from settings)")
	rootCmd.PersistentFlags().StringVar(&target, "target", "", "AnkiConnect URL or vault path (default from settings)")
}
