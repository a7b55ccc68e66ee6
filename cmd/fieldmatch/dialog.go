package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/aretw0/fieldmatch"
)

// dialogCmd collects the match settings interactively, pre-filled from the
// last run, then applies the tag.
var dialogCmd = &cobra.Command{
	Use:   "dialog",
	Short: "Configure and run the match pass interactively",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := fieldmatch.LoadSettings()
		if err != nil {
			// Still usable: the form starts from defaults.
			fmt.Fprintln(cmd.ErrOrStderr(), "Settings could not be read, starting from defaults.")
		}
		if adapter != "" {
			settings.Adapter = adapter
		}
		if target != "" {
			settings.Target = target
		}

		mode := string(settings.Mode)
		apply := true

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("First field").
					Value(&settings.FieldA).
					Validate(requireValue("a field name")),
				huh.NewInput().
					Title("Second field").
					Value(&settings.FieldB).
					Validate(requireValue("a field name")),
				huh.NewInput().
					Title("Filter").
					Description("e.g. deck:vocab; empty matches everything").
					Value(&settings.Filter),
				huh.NewSelect[string]().
					Title("Tag notes where fields are").
					Options(
						huh.NewOption("Equal", string(fieldmatch.ModeEqual)),
						huh.NewOption("Unequal", string(fieldmatch.ModeUnequal)),
						huh.NewOption("Matching a rule", string(fieldmatch.ModePattern)),
					).
					Value(&mode),
				huh.NewInput().
					Title("Rule").
					Description("pattern mode only; {b} stands for the second field").
					Value(&settings.Rule),
				huh.NewInput().
					Title("Tag").
					Value(&settings.Tag).
					Validate(requireValue("a tag")),
				huh.NewConfirm().
					Title("Apply now?").
					Value(&apply),
			),
		)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return
			}
			fatal("Dialog failed", err)
		}

		settings.Mode = fieldmatch.ParseMode(mode)
		if err := fieldmatch.SaveSettings(settings); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Settings could not be saved: %v\n", err)
		}

		if !apply {
			fmt.Println("Settings saved.")
			return
		}

		service, err := openService(settings)
		if err != nil {
			fatal("Failed to open collection", err)
		}
		report, err := service.ApplyTag(context.Background(), settings.MatchSpec)
		if err != nil {
			fatal("Match pass failed", err)
		}
		fmt.Println(report.Summary(settings.Tag))
	},
}

func requireValue(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("enter %s", what)
		}
		return nil
	}
}

func init() {
	rootCmd.AddCommand(dialogCmd)
}
