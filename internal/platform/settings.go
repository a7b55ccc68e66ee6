package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/fieldmatch/pkg/adapters/ankiconnect"
	"github.com/aretw0/fieldmatch/pkg/core"
)

// Settings is the persisted dialog state: the last match spec plus the
// backend it ran against. It survives between invocations so the dialog can
// pre-fill its inputs, mirroring what a host-side configuration file does.
type Settings struct {
	core.MatchSpec `yaml:",inline"`

	Adapter string `yaml:"adapter"`
	// Target is adapter-specific: AnkiConnect base URL or vault path.
	Target string `yaml:"target"`
}

// DefaultSettings mirrors the historical defaults: compare for unequal
// fields, tag with "field-matcher", talk to a local Anki.
func DefaultSettings() Settings {
	return Settings{
		MatchSpec: core.MatchSpec{
			Mode:      core.ModeUnequal,
			Tag:       "field-matcher",
			TrimSpace: true,
		},
		Adapter: AdapterAnkiConnect,
		Target:  ankiconnect.DefaultURL,
	}
}

// SettingsPath returns the location of the persisted settings file.
func SettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return filepath.Join(dir, "fieldmatch", "config.yaml"), nil
}

// LoadSettings reads the persisted settings, falling back to defaults when
// the file is missing or unreadable. A stale or hand-edited file must never
// block the tool, so parse problems degrade to defaults and are reported as
// a non-nil error alongside them.
func LoadSettings() (Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return DefaultSettings(), err
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom is LoadSettings with an explicit path.
func LoadSettingsFrom(path string) (Settings, error) {
	defaults := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaults, nil
	}
	if err != nil {
		return defaults, err
	}

	s := defaults
	if err := yaml.Unmarshal(data, &s); err != nil {
		return defaults, fmt.Errorf("invalid settings file %s: %w", path, err)
	}

	// Unknown modes and adapters degrade instead of erroring.
	s.Mode = core.ParseMode(string(s.Mode))
	if s.Adapter != AdapterAnkiConnect && s.Adapter != AdapterVault {
		s.Adapter = defaults.Adapter
	}
	if s.Tag == "" {
		s.Tag = defaults.Tag
	}
	return s, nil
}

// SaveSettings persists the settings for the next invocation.
func SaveSettings(s Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	return SaveSettingsTo(path, s)
}

// SaveSettingsTo is SaveSettings with an explicit path.
func SaveSettingsTo(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
