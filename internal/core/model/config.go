package model

import (
	"image/color"
	"time"

	"pulsatingtimer/internal/core/animation"
)

const (
	DefaultTarget            = 1000
	DefaultProgress          = 0
	DefaultPulsationAlpha    = 0.5
	DefaultPulsationInterval = time.Second
	DefaultPulsationDuration = 1200 * time.Millisecond

	// AutoRadius lets the circle fill half the smaller centre distance.
	AutoRadius = float32(-1)
)

// Style holds the visual parameters of a pulsating timer.
type Style struct {
	TextColor      color.NRGBA
	BackgroundTint color.NRGBA
	// TextSize of 0 leaves the size to the rendering surface.
	TextSize float32
	TextBold bool
	// CircleRadius below 0 means AutoRadius.
	CircleRadius float32

	PulsationColor    color.NRGBA
	PulsationAlpha    float64
	PulsationInterval time.Duration
	PulsationDuration time.Duration
	Curve             animation.Curve
}

// Config contains the initial counter values together with the style.
type Config struct {
	Target   int
	Progress int
	Style    Style
}

// DefaultStyle returns the stock look: black digits on a white disc with
// white ripples.
func DefaultStyle() Style {
	return Style{
		TextColor:         color.NRGBA{A: 0xff},
		BackgroundTint:    color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		CircleRadius:      AutoRadius,
		PulsationColor:    color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		PulsationAlpha:    DefaultPulsationAlpha,
		PulsationInterval: DefaultPulsationInterval,
		PulsationDuration: DefaultPulsationDuration,
		Curve:             animation.CurveLinear,
	}
}

// DefaultConfig returns a timer counting from 0 toward 1000.
func DefaultConfig() Config {
	return Config{
		Target:   DefaultTarget,
		Progress: DefaultProgress,
		Style:    DefaultStyle(),
	}
}
