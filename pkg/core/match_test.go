package core_test

import (
	"errors"
	"testing"

	"github.com/aretw0/fieldmatch/pkg/core"
)

func TestParseMode(t *testing.T) {
	cases := map[string]core.MatchMode{
		"equal":   core.ModeEqual,
		"EQUAL":   core.ModeEqual,
		"unequal": core.ModeUnequal,
		"pattern": core.ModePattern,
		"":        core.ModeUnequal,
		"bogus":   core.ModeUnequal,
	}
	for in, want := range cases {
		if got := core.ParseMode(in); got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEvaluator_Equal(t *testing.T) {
	ev, err := core.NewEvaluator(core.MatchSpec{
		FieldA: "Reading", FieldB: "Kanji",
		Mode: core.ModeEqual, Tag: "same",
		TrimSpace: true,
	})
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	cases := []struct {
		a, b string
		want bool
	}{
		{"水", "水", true},
		{" 水 ", "水", true}, // trimmed
		{"水", "火", false},
		{"", "", false}, // empty first field never matches
		{"  ", "", false},
	}
	for _, c := range cases {
		got, err := ev.Compare(c.a, c.b)
		if err != nil {
			t.Fatalf("Compare(%q, %q) failed: %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("Compare(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestEvaluator_Unequal(t *testing.T) {
	ev, err := core.NewEvaluator(core.MatchSpec{
		FieldA: "Front", FieldB: "Back",
		Mode: core.ModeUnequal, Tag: "diff",
	})
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	if got, _ := ev.Compare("a", "b"); !got {
		t.Error("expected unequal values to match")
	}
	if got, _ := ev.Compare("a", "a"); got {
		t.Error("expected equal values not to match")
	}
	// Both empty are equal, so no match.
	if got, _ := ev.Compare("", ""); got {
		t.Error("expected two empty values not to match")
	}
}

func TestEvaluator_Normalization(t *testing.T) {
	ev, err := core.NewEvaluator(core.MatchSpec{
		FieldA: "Front", FieldB: "Back",
		Mode: core.ModeEqual, Tag: "same",
		TrimSpace: true, FoldCase: true, StripHTML: true,
	})
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	got, err := ev.Compare("<b>Hello&nbsp;World</b>", "hello world")
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("expected HTML-stripped, folded values to compare equal")
	}
}

func TestEvaluator_Pattern(t *testing.T) {
	ev, err := core.NewEvaluator(core.MatchSpec{
		FieldA: "Reading", FieldB: "Kana",
		Mode: core.ModePattern, Rule: `^{b}(ます)?$`, Tag: "rule",
		TrimSpace: true,
	})
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	if got, _ := ev.Compare("たべます", "たべ"); !got {
		t.Error("expected placeholder rule to match")
	}
	if got, _ := ev.Compare("のみます", "たべ"); got {
		t.Error("expected placeholder rule not to match")
	}
	// Field B values are spliced in literally, never as regexp syntax.
	if got, _ := ev.Compare("a+", "a+"); !got {
		t.Error("expected quoted field B to match literally")
	}
}

func TestNewEvaluator_InvalidRule(t *testing.T) {
	_, err := core.NewEvaluator(core.MatchSpec{
		FieldA: "A", FieldB: "B",
		Mode: core.ModePattern, Rule: `[unclosed`, Tag: "t",
	})
	if err == nil {
		t.Fatal("expected error for invalid rule syntax")
	}
}

func TestMatchSpec_Validate(t *testing.T) {
	spec := core.MatchSpec{FieldB: "Back", Mode: core.ModeEqual, Tag: "t"}
	if err := spec.Validate(); !errors.Is(err, core.ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}

	spec = core.MatchSpec{FieldA: "Front", FieldB: "Back", Mode: core.ModeEqual}
	if err := spec.Validate(); !errors.Is(err, core.ErrMissingTag) {
		t.Errorf("expected ErrMissingTag, got %v", err)
	}

	spec = core.MatchSpec{FieldA: "Front", FieldB: "Back", Mode: core.ModeEqual, Tag: "t"}
	if err := spec.Validate(); err != nil {
		t.Errorf("expected valid spec, got %v", err)
	}
}
