package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/fieldmatch"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fieldmatch",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fieldmatch version %s\n", strings.TrimSpace(fieldmatch.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
