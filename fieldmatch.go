package fieldmatch

import (
	"log/slog"
	"time"

	"github.com/aretw0/fieldmatch/internal/platform"
	"github.com/aretw0/fieldmatch/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// NoteID is a public alias for the domain note id.
type NoteID = core.NoteID

// MatchSpec is a public alias for the match specification.
type MatchSpec = core.MatchSpec

// MatchMode is a public alias for the comparison mode.
type MatchMode = core.MatchMode

// Report is a public alias for the pass summary.
type Report = core.Report

// Settings is a public alias for the persisted dialog state.
type Settings = platform.Settings

// Comparison modes.
const (
	ModeEqual   = core.ModeEqual
	ModeUnequal = core.ModeUnequal
	ModePattern = core.ModePattern
)

// Adapter names.
const (
	AdapterAnkiConnect = platform.AdapterAnkiConnect
	AdapterVault       = platform.AdapterVault
)

// ParseMode maps a raw string to a MatchMode, degrading unknown values to
// ModeUnequal.
func ParseMode(s string) MatchMode {
	return core.ParseMode(s)
}

// --- Configuration ---

// Option defines a functional option for configuring fieldmatch.
type Option = platform.Option

// WithAdapter selects the collection backend by name ("ankiconnect" or "vault").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithCollection allows injecting a custom collection adapter.
func WithCollection(col core.Collection) Option {
	return platform.WithCollection(col)
}

// WithPattern overrides the vault adapter's note discovery glob.
func WithPattern(pattern string) Option {
	return platform.WithPattern(pattern)
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithTimeout overrides the AnkiConnect request timeout.
func WithTimeout(timeout time.Duration) Option {
	return platform.WithTimeout(timeout)
}

// --- Factory ---

// New creates a fieldmatch Service bound to a host collection. The target
// argument is adapter-specific: the AnkiConnect base URL, or the vault
// directory path.
func New(target string, opts ...Option) (*core.Service, error) {
	return platform.New(target, opts...)
}

// Open initializes a collection adapter without wrapping it in a service.
func Open(target string, opts ...Option) (core.Collection, error) {
	return platform.Open(target, opts...)
}

// --- Settings ---

// DefaultSettings returns the out-of-the-box dialog state.
func DefaultSettings() Settings {
	return platform.DefaultSettings()
}

// LoadSettings reads the persisted dialog state, degrading to defaults when
// the file is missing or unreadable.
func LoadSettings() (Settings, error) {
	return platform.LoadSettings()
}

// SaveSettings persists the dialog state for the next invocation.
func SaveSettings(s Settings) error {
	return platform.SaveSettings(s)
}
