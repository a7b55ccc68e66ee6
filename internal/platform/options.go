package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/fieldmatch/pkg/core"
)

// options holds the internal configuration for the fieldmatch service.
type options struct {
	collection core.Collection
	logger     *slog.Logger
	adapter    string
	pattern    string
	mustExist  bool
	timeout    time.Duration
}

// Option defines a functional option for configuring fieldmatch.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		collection: nil,
		logger:     nil,
		adapter:    AdapterAnkiConnect,
		pattern:    "",
		mustExist:  false,
		timeout:    0,
	}
}

// Adapter names accepted by WithAdapter.
const (
	AdapterAnkiConnect = "ankiconnect"
	AdapterVault       = "vault"
)

// WithAdapter selects the collection backend by name
// ("ankiconnect" or "vault"). Defaults to "ankiconnect".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithLogger sets the logger for the service and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCollection allows injecting a custom collection adapter (e.g. a mock).
// If provided, the named adapter is skipped.
func WithCollection(col core.Collection) Option {
	return func(o *options) {
		o.collection = col
	}
}

// WithPattern overrides the vault adapter's note discovery glob.
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithTimeout overrides the AnkiConnect request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}
