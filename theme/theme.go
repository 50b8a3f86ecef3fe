// Package theme holds the visual defaults a host application can load from
// a TOML file: spacing, padding, and the base palette.
package theme

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Theme is the quartz.toml schema.
type Theme struct {
	// Spacing is the default gap between box cells.
	Spacing float64 `toml:"spacing"`

	// Padding is the default container padding.
	Padding float64 `toml:"padding"`

	// Colors, as "#rrggbb" strings.
	Background string `toml:"background"`
	Surface    string `toml:"surface"`
	Accent     string `toml:"accent"`
	Text       string `toml:"text"`
}

// Default returns the built-in dark theme.
func Default() Theme {
	return Theme{
		Spacing:    1,
		Padding:    1,
		Background: "#1e1e2e",
		Surface:    "#313244",
		Accent:     "#89b4fa",
		Text:       "#cdd6f4",
	}
}

// Load reads a theme file. Missing keys keep their defaults.
func Load(path string) (Theme, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("theme: %w", err)
	}
	if err := toml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("theme: parse %s: %w", path, err)
	}
	return t, nil
}

// Save writes the theme as TOML.
func Save(path string, t Theme) error {
	data, err := toml.Marshal(t)
	if err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	return nil
}
