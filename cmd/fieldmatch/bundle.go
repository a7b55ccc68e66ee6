package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/fieldmatch/internal/bundle"
)

var bundleOut string

// bundleCmd packages an add-on payload directory into an installable archive.
var bundleCmd = &cobra.Command{
	Use:   "bundle <dir>",
	Short: "Package an add-on payload directory into a .ankiaddon archive",
	Long: `Zip the contents of a payload directory into the archive format the host
application installs. VCS droppings, caches and host-generated files
(meta.json) are excluded, and entries are sorted so identical payloads
produce identical archives.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src := args[0]
		out := bundleOut
		if out == "" {
			out = filepath.Base(filepath.Clean(src)) + ".ankiaddon"
		}

		if err := bundle.Archive(src, out); err != nil {
			fatal("Failed to build archive", err)
		}
		fmt.Printf("Wrote %s\n", out)
	},
}

func init() {
	rootCmd.AddCommand(bundleCmd)
	bundleCmd.Flags().StringVarP(&bundleOut, "out", "o", "", "Output archive path (default <dir>.ankiaddon)")
}
