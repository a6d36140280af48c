// Package config provides configuration helpers and TOML parsing.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrConfigExists is returned when writing over an existing config without force.
var ErrConfigExists = errors.New("config file already exists")

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	WPM            *int       `toml:"wpm"`
	WPMStep        *int       `toml:"wpm_step"`
	Model          *string    `toml:"model"`
	Countdown      *int       `toml:"countdown"`
	APIBaseURL     *string    `toml:"api_base_url"`
	RequestTimeout *string    `toml:"request_timeout"`
	Keys           KeysConfig `toml:"keys"`
}

// KeysConfig maps keybinding settings.
type KeysConfig struct {
	Quit        *string `toml:"quit"`
	Pause       *string `toml:"pause"`
	IncreaseWPM *string `toml:"increase_wpm"`
	DecreaseWPM *string `toml:"decrease_wpm"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return FileConfig{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// DefaultFileConfig returns a FileConfig with every setting at its default.
func DefaultFileConfig() FileConfig {
	d := Defaults()
	timeout := d.RequestTimeout.String()
	return FileConfig{
		WPM:            &d.WPM,
		WPMStep:        &d.WPMStep,
		Model:          &d.Model,
		Countdown:      &d.Countdown,
		APIBaseURL:     &d.APIBaseURL,
		RequestTimeout: &timeout,
		Keys: KeysConfig{
			Quit:        &d.Keys.Quit,
			Pause:       strPtr("space"),
			IncreaseWPM: &d.Keys.IncreaseWPM,
			DecreaseWPM: &d.Keys.DecreaseWPM,
		},
	}
}

// RenderDefault returns the default config file contents.
func RenderDefault() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# speedread configuration\n")
	buf.WriteString("# Keys are single characters; use \"space\" for the spacebar.\n")
	buf.WriteString("# OPEN_ROUTER_API_KEY, SPEEDREAD_MODEL and SPEEDREAD_API_BASE_URL override this file.\n\n")
	if err := toml.NewEncoder(&buf).Encode(DefaultFileConfig()); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default config to path. An existing file is kept
// unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
	}
	data, err := RenderDefault()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
