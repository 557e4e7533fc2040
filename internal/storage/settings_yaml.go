package storage

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pulsatingtimer/internal/core/animation"
	"pulsatingtimer/internal/core/model"

	"gopkg.in/yaml.v3"
)

const (
	settingsFileName = "style.yaml"
	snapshotFileName = "snapshot.bin"
)

// Store keeps the style settings and the lifecycle snapshot in one directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store writes to.
func (store *Store) Dir() string {
	return store.dir
}

type yamlSettings struct {
	Target              *int     `yaml:"target,omitempty"`
	Progress            *int     `yaml:"progress,omitempty"`
	TextColor           string   `yaml:"text_color,omitempty"`
	BackgroundTint      string   `yaml:"background_tint,omitempty"`
	TextSize            float32  `yaml:"text_size,omitempty"`
	TextBold            bool     `yaml:"text_bold,omitempty"`
	CircleRadius        *float32 `yaml:"circle_radius,omitempty"`
	PulsationColor      string   `yaml:"pulsation_color,omitempty"`
	PulsationAlpha      *float64 `yaml:"pulsation_alpha,omitempty"`
	PulsationIntervalMS int64    `yaml:"pulsation_interval_ms,omitempty"`
	PulsationDurationMS int64    `yaml:"pulsation_duration_ms,omitempty"`
	Curve               string   `yaml:"curve,omitempty"`
}

// LoadConfig reads the timer configuration from YAML.
// If the file does not exist, the default configuration is returned.
// Values that fail validation keep their defaults.
func (store *Store) LoadConfig() (model.Config, error) {
	config := model.DefaultConfig()

	rawData, err := os.ReadFile(store.path(settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse settings yaml: %w", err)
	}

	if err := applyYamlSettings(&config, fileData); err != nil {
		return config, err
	}
	return config, nil
}

// SaveConfig writes the timer configuration to YAML.
func (store *Store) SaveConfig(config model.Config) error {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	style := config.Style
	target := config.Target
	progress := config.Progress
	radius := style.CircleRadius
	alpha := style.PulsationAlpha
	fileData := yamlSettings{
		Target:              &target,
		Progress:            &progress,
		TextColor:           formatColor(style.TextColor),
		BackgroundTint:      formatColor(style.BackgroundTint),
		TextSize:            style.TextSize,
		TextBold:            style.TextBold,
		CircleRadius:        &radius,
		PulsationColor:      formatColor(style.PulsationColor),
		PulsationAlpha:      &alpha,
		PulsationIntervalMS: style.PulsationInterval.Milliseconds(),
		PulsationDurationMS: style.PulsationDuration.Milliseconds(),
		Curve:               style.Curve.String(),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path(settingsFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func (store *Store) path(name string) string {
	return filepath.Join(store.dir, name)
}

func applyYamlSettings(config *model.Config, fileData yamlSettings) error {
	if fileData.Target != nil && *fileData.Target >= 0 {
		config.Target = *fileData.Target
	}
	if fileData.Progress != nil && *fileData.Progress >= 0 {
		config.Progress = *fileData.Progress
	}

	style := &config.Style
	if fileData.TextSize > 0 {
		style.TextSize = fileData.TextSize
	}
	style.TextBold = fileData.TextBold
	if fileData.CircleRadius != nil {
		style.CircleRadius = *fileData.CircleRadius
	}
	if fileData.PulsationAlpha != nil && *fileData.PulsationAlpha >= 0 && *fileData.PulsationAlpha <= 1 {
		style.PulsationAlpha = *fileData.PulsationAlpha
	}
	if fileData.PulsationIntervalMS > 0 {
		style.PulsationInterval = time.Duration(fileData.PulsationIntervalMS) * time.Millisecond
	}
	if fileData.PulsationDurationMS > 0 {
		style.PulsationDuration = time.Duration(fileData.PulsationDurationMS) * time.Millisecond
	}

	var errs []error
	for _, field := range []struct {
		name  string
		value string
		dest  *color.NRGBA
	}{
		{"text_color", fileData.TextColor, &style.TextColor},
		{"background_tint", fileData.BackgroundTint, &style.BackgroundTint},
		{"pulsation_color", fileData.PulsationColor, &style.PulsationColor},
	} {
		if field.value == "" {
			continue
		}
		parsed, err := ParseColor(field.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field.name, err))
			continue
		}
		*field.dest = parsed
	}

	if fileData.Curve != "" {
		curve, err := animation.ParseCurve(fileData.Curve)
		if err != nil {
			errs = append(errs, fmt.Errorf("curve: %w", err))
		} else {
			style.Curve = curve
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("apply settings: %w", errors.Join(errs...))
	}
	return nil
}

// ParseColor accepts #RRGGBB or #RRGGBBAA.
func ParseColor(value string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", value)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	packed, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", value, err)
	}
	return color.NRGBA{
		R: uint8(packed >> 24),
		G: uint8(packed >> 16),
		B: uint8(packed >> 8),
		A: uint8(packed),
	}, nil
}

func formatColor(value color.NRGBA) string {
	if value.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", value.R, value.G, value.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", value.R, value.G, value.B, value.A)
}
