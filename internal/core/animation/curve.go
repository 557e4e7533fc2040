package animation

import (
	"fmt"
	"math"
	"strings"
)

// Curve selects the interpolation applied to a pulsation's raw time fraction.
type Curve int

const (
	CurveLinear Curve = iota
	CurveAccelerate
	CurveDecelerate
	CurveAccelerateDecelerate
)

var curveNames = map[Curve]string{
	CurveLinear:               "linear",
	CurveAccelerate:           "accelerate",
	CurveDecelerate:           "decelerate",
	CurveAccelerateDecelerate: "accelerate_decelerate",
}

// Curves lists every supported curve in display order.
func Curves() []Curve {
	return []Curve{CurveLinear, CurveAccelerate, CurveDecelerate, CurveAccelerateDecelerate}
}

// String returns the settings-file name of the curve.
func (curve Curve) String() string {
	if name, ok := curveNames[curve]; ok {
		return name
	}
	return fmt.Sprintf("curve(%d)", int(curve))
}

// ParseCurve resolves a curve by name. Matching ignores case, dashes and spaces.
func ParseCurve(name string) (Curve, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for curve, curveName := range curveNames {
		if curveName == normalized {
			return curve, nil
		}
	}
	return CurveLinear, fmt.Errorf("unknown curve %q", name)
}

// Interpolate maps a raw fraction in [0, 1] onto the curve. Inputs outside the
// range are clamped.
func (curve Curve) Interpolate(fraction float64) float64 {
	if fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return 1
	}

	switch curve {
	case CurveAccelerate:
		return fraction * fraction
	case CurveDecelerate:
		inverse := 1 - fraction
		return 1 - inverse*inverse
	case CurveAccelerateDecelerate:
		return math.Cos((fraction+1)*math.Pi)/2 + 0.5
	default:
		return fraction
	}
}
