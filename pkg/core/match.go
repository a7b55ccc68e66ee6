package core

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MatchMode selects how the two field values are compared.
type MatchMode string

const (
	// ModeEqual tags notes whose fields are equal (and non-empty).
	ModeEqual MatchMode = "equal"
	// ModeUnequal tags notes whose fields differ.
	ModeUnequal MatchMode = "unequal"
	// ModePattern tags notes where field A matches a custom regular
	// expression. The literal value of field B is substituted for the
	// placeholder {b} before matching.
	ModePattern MatchMode = "pattern"
)

// ParseMode maps a raw string to a MatchMode.
// Unknown values degrade to ModeUnequal instead of erroring, so that a stale
// or hand-edited settings file never blocks the tool.
func ParseMode(s string) MatchMode {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeEqual:
		return ModeEqual
	case ModePattern:
		return ModePattern
	default:
		return ModeUnequal
	}
}

// MatchSpec describes one tagging pass: which two fields to compare, over
// which subset of the collection, under which mode, and which tag to apply.
type MatchSpec struct {
	FieldA string    `yaml:"field_a" validate:"required"`
	FieldB string    `yaml:"field_b" validate:"required"`
	Filter string    `yaml:"filter"`
	Mode   MatchMode `yaml:"mode" validate:"oneof=equal unequal pattern"`
	Rule   string    `yaml:"rule" validate:"required_if=Mode pattern"`
	Tag    string    `yaml:"tag" validate:"required"`

	// Comparison options. The settings layer turns TrimSpace on by
	// default; the others are opt-in.
	TrimSpace bool `yaml:"trim_space"`
	FoldCase  bool `yaml:"fold_case"`
	StripHTML bool `yaml:"strip_html"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the spec is complete enough to run.
func (s MatchSpec) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "FieldA", "FieldB":
				return ErrMissingFields
			case "Tag":
				return ErrMissingTag
			}
		}
		return err
	}
	return nil
}

// rulePlaceholder marks where the value of field B is spliced into a rule.
const rulePlaceholder = "{b}"

// Evaluator applies a validated MatchSpec to pairs of field values.
type Evaluator struct {
	spec MatchSpec
	rule *regexp.Regexp // precompiled when the rule has no placeholder
}

// NewEvaluator validates the spec and prepares the comparison.
// A pattern-mode rule with invalid syntax fails here, before any note is
// touched.
func NewEvaluator(spec MatchSpec) (*Evaluator, error) {
	if spec.Mode == "" {
		spec.Mode = ModeUnequal
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	e := &Evaluator{spec: spec}
	if spec.Mode == ModePattern {
		if strings.Contains(spec.Rule, rulePlaceholder) {
			// Verify the syntax once with an empty substitution; the real
			// expression is compiled per note.
			if _, err := regexp.Compile(strings.ReplaceAll(spec.Rule, rulePlaceholder, "")); err != nil {
				return nil, fmt.Errorf("invalid rule %q: %w", spec.Rule, err)
			}
		} else {
			re, err := regexp.Compile(spec.Rule)
			if err != nil {
				return nil, fmt.Errorf("invalid rule %q: %w", spec.Rule, err)
			}
			e.rule = re
		}
	}
	return e, nil
}

// Spec returns the spec the evaluator was built from.
func (e *Evaluator) Spec() MatchSpec { return e.spec }

// Compare reports whether the pair of raw field values satisfies the mode.
func (e *Evaluator) Compare(a, b string) (bool, error) {
	a = e.normalize(a)
	b = e.normalize(b)

	switch e.spec.Mode {
	case ModeEqual:
		// An empty first field never counts as a match; otherwise untouched
		// card templates would all tag each other.
		return a != "" && a == b, nil
	case ModeUnequal:
		return a != b, nil
	case ModePattern:
		re := e.rule
		if re == nil {
			expr := strings.ReplaceAll(e.spec.Rule, rulePlaceholder, regexp.QuoteMeta(b))
			var err error
			re, err = regexp.Compile(expr)
			if err != nil {
				return false, fmt.Errorf("invalid rule %q: %w", expr, err)
			}
		}
		return re.MatchString(a), nil
	default:
		return false, fmt.Errorf("unknown match mode: %s", e.spec.Mode)
	}
}

var htmlTag = regexp.MustCompile(`(?s)<[^>]*>`)

func (e *Evaluator) normalize(v string) string {
	if e.spec.StripHTML {
		v = html.UnescapeString(htmlTag.ReplaceAllString(v, ""))
	}
	if e.spec.TrimSpace {
		v = strings.TrimSpace(v)
	}
	if e.spec.FoldCase {
		v = strings.ToLower(v)
	}
	return v
}
