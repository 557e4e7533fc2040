package terminal

import (
	"image/color"
	"math"
	"strconv"

	"pulsatingtimer/internal/core/pulsating"
	"pulsatingtimer/internal/core/pulse"

	"github.com/gdamore/tcell/v2"
)

// Terminal cells are roughly twice as tall as they are wide, so the engine
// works in half-cell vertical units and the renderer maps them back.
const cellAspect = 2

// ringThickness is the band, in surface units, painted around each ripple radius.
const ringThickness = 0.75

// Renderer paints engine frames onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer for screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// SurfaceSize returns the screen size in engine units.
func (renderer *Renderer) SurfaceSize() (float32, float32) {
	width, height := renderer.screen.Size()
	return float32(width), float32(height * cellAspect)
}

// Draw paints frame and a one-line footer, then shows the screen.
func (renderer *Renderer) Draw(frame pulsating.Frame, footer string) {
	screen := renderer.screen
	screen.Clear()
	width, height := screen.Size()
	style := frame.Style

	disc := tcell.StyleDefault.Background(toColor(style.BackgroundTint, 0xff))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := float64(x) + 0.5
			py := float64(y*cellAspect) + cellAspect/2.0
			distance := math.Hypot(px-float64(frame.Center.X), py-float64(frame.Center.Y))

			if distance <= float64(frame.BaseRadius) {
				screen.SetContent(x, y, ' ', nil, disc)
				continue
			}
			if ring, ok := ringAt(frame, distance); ok {
				shade := tcell.StyleDefault.Foreground(toColor(style.PulsationColor, ring.Alpha))
				screen.SetContent(x, y, '·', nil, shade)
			}
		}
	}

	label := strconv.Itoa(frame.Progress)
	labelStyle := disc.Foreground(toColor(style.TextColor, 0xff)).Bold(style.TextBold)
	row := int(frame.Center.Y) / cellAspect
	drawText(screen, int(frame.Center.X)-len(label)/2, row, label, labelStyle)
	drawText(screen, 0, height-1, footer, tcell.StyleDefault)
	screen.Show()
}

// ringAt returns the newest ripple whose band covers distance.
func ringAt(frame pulsating.Frame, distance float64) (pulse.Ring, bool) {
	for i := len(frame.Pulsations) - 1; i >= 0; i-- {
		ring := frame.Pulsations[i]
		if math.Abs(distance-float64(ring.Radius)) <= ringThickness {
			return ring, true
		}
	}
	return pulse.Ring{}, false
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// toColor scales value by alpha over the terminal's black background.
func toColor(value color.NRGBA, alpha uint8) tcell.Color {
	scale := func(channel uint8) int32 {
		return int32(uint32(channel) * uint32(value.A) / 0xff * uint32(alpha) / 0xff)
	}
	return tcell.NewRGBColor(scale(value.R), scale(value.G), scale(value.B))
}
