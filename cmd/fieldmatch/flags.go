package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/fieldmatch"
	"github.com/aretw0/fieldmatch/pkg/core"
)

// matchFlags carries the per-command spec overrides shared by tag, preview
// and watch.
type matchFlags struct {
	fieldA    string
	fieldB    string
	filter    string
	mode      string
	rule      string
	tag       string
	trim      bool
	foldCase  bool
	stripHTML bool
	save      bool
}

func (f *matchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.fieldA, "field-a", "a", "", "First field name")
	cmd.Flags().StringVarP(&f.fieldB, "field-b", "b", "", "Second field name")
	cmd.Flags().StringVarP(&f.filter, "filter", "f", "", "Search filter (e.g. deck:vocab)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "Match mode: equal, unequal or pattern")
	cmd.Flags().StringVarP(&f.rule, "rule", "r", "", "Pattern-mode rule; {b} stands for the second field")
	cmd.Flags().StringVarP(&f.tag, "tag", "t", "", "Tag to apply")
	cmd.Flags().BoolVar(&f.trim, "trim", true, "Trim surrounding whitespace before comparing")
	cmd.Flags().BoolVar(&f.foldCase, "fold-case", false, "Compare case-insensitively")
	cmd.Flags().BoolVar(&f.stripHTML, "strip-html", false, "Strip HTML markup before comparing")
	cmd.Flags().BoolVar(&f.save, "save", false, "Persist these settings for the next run")
}

// resolve merges persisted settings with the flags the user actually set.
// Flags win; everything else comes from the last saved run.
func (f *matchFlags) resolve(cmd *cobra.Command) fieldmatch.Settings {
	s, err := fieldmatch.LoadSettings()
	if err != nil {
		slog.Warn("using default settings", "error", err)
	}

	set := cmd.Flags().Changed
	if set("field-a") {
		s.FieldA = f.fieldA
	}
	if set("field-b") {
		s.FieldB = f.fieldB
	}
	if set("filter") {
		s.Filter = f.filter
	}
	if set("mode") {
		s.Mode = fieldmatch.ParseMode(f.mode)
	}
	if set("rule") {
		s.Rule = f.rule
	}
	if set("tag") {
		s.Tag = f.tag
	}
	if set("trim") {
		s.TrimSpace = f.trim
	}
	if set("fold-case") {
		s.FoldCase = f.foldCase
	}
	if set("strip-html") {
		s.StripHTML = f.stripHTML
	}
	if adapter != "" {
		s.Adapter = adapter
	}
	if target != "" {
		s.Target = target
	}
	return s
}

// persist saves the settings when --save was given.
func (f *matchFlags) persist(s fieldmatch.Settings) {
	if !f.save {
		return
	}
	if err := fieldmatch.SaveSettings(s); err != nil {
		slog.Warn("failed to save settings", "error", err)
	}
}

// openService builds the service for the resolved settings.
func openService(s fieldmatch.Settings) (*core.Service, error) {
	return fieldmatch.New(s.Target,
		fieldmatch.WithAdapter(s.Adapter),
		fieldmatch.WithLogger(slog.Default()),
		fieldmatch.WithMustExist(true),
	)
}
