package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/speedread/internal/model"
	"github.com/verte-zerg/speedread/internal/rate"
	"github.com/verte-zerg/speedread/internal/scheduler"
)

const (
	defaultModel          = "deepseek/deepseek-r1:free"
	defaultAPIBaseURL     = "https://openrouter.ai/api/v1"
	defaultRequestTimeout = 2 * time.Minute

	// MinFlagWPM and MaxFlagWPM bound the --wpm flag.
	MinFlagWPM = 150
	MaxFlagWPM = 1000
)

// ErrInvalidKey is returned for key bindings that are not a single printable
// key.
var ErrInvalidKey = errors.New("invalid key binding")

// Defaults returns the built-in configuration.
func Defaults() model.Config {
	return model.Config{
		WPM:            rate.DefaultWPM,
		WPMStep:        rate.DefaultStep,
		Countdown:      scheduler.DefaultCountdown,
		Model:          defaultModel,
		APIBaseURL:     defaultAPIBaseURL,
		RequestTimeout: defaultRequestTimeout,
		Keys: model.KeyBindings{
			Quit:        "q",
			Pause:       " ",
			IncreaseWPM: "+",
			DecreaseWPM: "-",
		},
	}
}

// Resolve layers the file config and then the environment over the defaults
// and validates the result.
func Resolve(file FileConfig, e EnvConfig) (model.Config, error) {
	cfg := Defaults()

	applyInt(&cfg.WPM, file.WPM)
	applyInt(&cfg.WPMStep, file.WPMStep)
	applyInt(&cfg.Countdown, file.Countdown)
	applyString(&cfg.Model, file.Model)
	applyString(&cfg.APIBaseURL, file.APIBaseURL)
	if file.RequestTimeout != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*file.RequestTimeout))
		if err != nil {
			return model.Config{}, fmt.Errorf("invalid request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	applyString(&cfg.Keys.Quit, file.Keys.Quit)
	applyString(&cfg.Keys.Pause, file.Keys.Pause)
	applyString(&cfg.Keys.IncreaseWPM, file.Keys.IncreaseWPM)
	applyString(&cfg.Keys.DecreaseWPM, file.Keys.DecreaseWPM)

	if v := strings.TrimSpace(e.Model); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(e.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	cfg.APIKey = strings.TrimSpace(e.APIKey)
	cfg.Debug = e.Debug

	keys, err := normalizeKeys(cfg.Keys)
	if err != nil {
		return model.Config{}, err
	}
	cfg.Keys = keys

	if err := Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// Validate checks a resolved configuration.
func Validate(cfg model.Config) error {
	if cfg.WPM < 1 {
		return fmt.Errorf("wpm must be >= 1")
	}
	if cfg.WPMStep < 1 {
		return fmt.Errorf("wpm_step must be >= 1")
	}
	if cfg.Countdown < 0 {
		return fmt.Errorf("countdown must be >= 0")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return fmt.Errorf("model must not be empty")
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0")
	}
	seen := map[string]string{}
	for _, b := range []struct{ name, key string }{
		{"quit", cfg.Keys.Quit},
		{"pause", cfg.Keys.Pause},
		{"increase_wpm", cfg.Keys.IncreaseWPM},
		{"decrease_wpm", cfg.Keys.DecreaseWPM},
	} {
		if utf8.RuneCountInString(b.key) != 1 {
			return fmt.Errorf("%w: keys.%s = %q", ErrInvalidKey, b.name, b.key)
		}
		if r, _ := utf8.DecodeRuneInString(b.key); !unicode.IsPrint(r) {
			return fmt.Errorf("%w: keys.%s = %q is not printable", ErrInvalidKey, b.name, b.key)
		}
		if other, ok := seen[b.key]; ok {
			return fmt.Errorf("%w: keys.%s and keys.%s share %q", ErrInvalidKey, other, b.name, b.key)
		}
		seen[b.key] = b.name
	}
	return nil
}

// ClampFlagWPM bounds a rate given on the command line.
func ClampFlagWPM(wpm int) (int, error) {
	if wpm <= 0 {
		return 0, fmt.Errorf("--wpm must be > 0")
	}
	return max(MinFlagWPM, min(wpm, MaxFlagWPM)), nil
}

func normalizeKeys(k model.KeyBindings) (model.KeyBindings, error) {
	var err error
	for _, p := range []*string{&k.Quit, &k.Pause, &k.IncreaseWPM, &k.DecreaseWPM} {
		if strings.EqualFold(*p, "space") {
			*p = " "
		}
		if *p == "" {
			err = fmt.Errorf("%w: empty key", ErrInvalidKey)
		}
	}
	return k, err
}

func applyInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
