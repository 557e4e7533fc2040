package animation

import (
	"math"
	"testing"
)

func TestInterpolateEndpoints(t *testing.T) {
	for _, curve := range Curves() {
		if got := curve.Interpolate(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", curve, got)
		}
		if got := curve.Interpolate(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", curve, got)
		}
		if got := curve.Interpolate(-0.5); got != 0 {
			t.Errorf("%s(-0.5) = %v, want 0", curve, got)
		}
		if got := curve.Interpolate(3); got != 1 {
			t.Errorf("%s(3) = %v, want 1", curve, got)
		}
	}
}

func TestInterpolateMidpoint(t *testing.T) {
	tests := []struct {
		curve Curve
		want  float64
	}{
		{CurveLinear, 0.5},
		{CurveAccelerate, 0.25},
		{CurveDecelerate, 0.75},
		{CurveAccelerateDecelerate, 0.5},
	}
	for _, tt := range tests {
		if got := tt.curve.Interpolate(0.5); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s(0.5) = %v, want %v", tt.curve, got, tt.want)
		}
	}
}

func TestInterpolateMonotonic(t *testing.T) {
	for _, curve := range Curves() {
		previous := 0.0
		for step := 1; step <= 100; step++ {
			value := curve.Interpolate(float64(step) / 100)
			if value < previous {
				t.Fatalf("%s decreases at step %d: %v < %v", curve, step, value, previous)
			}
			previous = value
		}
	}
}

func TestParseCurve(t *testing.T) {
	tests := []struct {
		name    string
		want    Curve
		wantErr bool
	}{
		{"linear", CurveLinear, false},
		{"Decelerate", CurveDecelerate, false},
		{"accelerate-decelerate", CurveAccelerateDecelerate, false},
		{" accelerate ", CurveAccelerate, false},
		{"bounce", CurveLinear, true},
	}
	for _, tt := range tests {
		got, err := ParseCurve(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCurve(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCurve(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}
