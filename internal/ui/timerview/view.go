package timerview

import (
	"image/color"
	"strconv"
	"sync/atomic"
	"time"

	"pulsatingtimer/internal/core/pulsating"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// FrameInterval paces repaints requested by the engine (~60 FPS).
const FrameInterval = 16 * time.Millisecond

const (
	minSide          = float32(64)
	textSizeFraction = float32(0.45)
)

// View paints a pulsating.Timer: ripples behind a tinted disc with the
// progress number centred on it.
type View struct {
	widget.BaseWidget

	timer   *pulsating.Timer
	pending atomic.Bool
}

// New creates an unbound view. Bind attaches the engine.
func New() *View {
	view := &View{}
	view.ExtendBaseWidget(view)
	return view
}

// Bind attaches the engine this view renders.
func (view *View) Bind(timer *pulsating.Timer) {
	view.timer = timer
	view.Refresh()
}

// RequestFrame schedules one repaint on the fyne thread. Requests made before
// that repaint runs are coalesced.
func (view *View) RequestFrame() {
	if !view.pending.CompareAndSwap(false, true) {
		return
	}
	time.AfterFunc(FrameInterval, func() {
		fyne.Do(func() {
			view.pending.Store(false)
			view.Refresh()
		})
	})
}

// CreateRenderer implements fyne.Widget.
func (view *View) CreateRenderer() fyne.WidgetRenderer {
	circle := canvas.NewCircle(color.Transparent)
	label := canvas.NewText("", color.Black)
	label.Alignment = fyne.TextAlignCenter

	renderer := &viewRenderer{
		view:   view,
		circle: circle,
		label:  label,
	}
	renderer.rebuildObjects()
	return renderer
}

type viewRenderer struct {
	view    *View
	rings   []*canvas.Circle
	circle  *canvas.Circle
	label   *canvas.Text
	objects []fyne.CanvasObject
}

func (renderer *viewRenderer) Layout(size fyne.Size) {
	if renderer.view.timer == nil {
		return
	}
	renderer.view.timer.SetSize(size.Width, size.Height)
	renderer.apply(renderer.view.timer.Frame())
}

func (renderer *viewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(minSide, minSide)
}

func (renderer *viewRenderer) Refresh() {
	if renderer.view.timer == nil {
		return
	}
	renderer.apply(renderer.view.timer.Frame())
	for _, object := range renderer.objects {
		object.Refresh()
	}
}

func (renderer *viewRenderer) Objects() []fyne.CanvasObject {
	return renderer.objects
}

func (renderer *viewRenderer) Destroy() {}

func (renderer *viewRenderer) apply(frame pulsating.Frame) {
	style := frame.Style
	renderer.ensureRings(len(frame.Pulsations))
	for i, ring := range frame.Pulsations {
		fill := style.PulsationColor
		fill.A = ring.Alpha
		renderer.rings[i].FillColor = fill
		placeCircle(renderer.rings[i], frame.Center, ring.Radius)
	}

	renderer.circle.FillColor = style.BackgroundTint
	placeCircle(renderer.circle, frame.Center, frame.BaseRadius)

	textSize := style.TextSize
	if textSize <= 0 {
		textSize = max(theme.TextSize(), frame.BaseRadius*textSizeFraction)
	}
	renderer.label.Text = strconv.Itoa(frame.Progress)
	renderer.label.Color = style.TextColor
	renderer.label.TextSize = textSize
	renderer.label.TextStyle = fyne.TextStyle{Bold: style.TextBold}
	labelSize := renderer.label.MinSize()
	renderer.label.Resize(labelSize)
	renderer.label.Move(fyne.NewPos(frame.Center.X-labelSize.Width/2, frame.Center.Y-labelSize.Height/2))
}

func (renderer *viewRenderer) ensureRings(count int) {
	if count == len(renderer.rings) {
		return
	}
	for len(renderer.rings) < count {
		renderer.rings = append(renderer.rings, canvas.NewCircle(color.Transparent))
	}
	renderer.rings = renderer.rings[:count]
	renderer.rebuildObjects()
}

// Ripples first so the disc and the number sit on top of them.
func (renderer *viewRenderer) rebuildObjects() {
	objects := make([]fyne.CanvasObject, 0, len(renderer.rings)+2)
	for _, ring := range renderer.rings {
		objects = append(objects, ring)
	}
	renderer.objects = append(objects, renderer.circle, renderer.label)
}

func placeCircle(circle *canvas.Circle, center pulsating.Point, radius float32) {
	if radius < 0 {
		radius = 0
	}
	circle.Move(fyne.NewPos(center.X-radius, center.Y-radius))
	circle.Resize(fyne.NewSize(radius*2, radius*2))
}
