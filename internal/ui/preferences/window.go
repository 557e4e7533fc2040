package preferences

import (
	"fmt"
	"strconv"
	"time"

	"pulsatingtimer/internal/core/animation"
	"pulsatingtimer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window edits the target and the style of the timer.
type Window struct {
	window   fyne.Window
	config   model.Config
	onSave   func(model.Config)
	target   *widget.Entry
	interval *widget.Entry
	duration *widget.Entry
	radius   *widget.Entry
	alpha    *widget.Slider
	curve    *widget.Select
	bold     *widget.Check
}

// New creates a preferences window. onSave receives the edited config.
func New(app fyne.App, config model.Config, onSave func(model.Config)) *Window {
	window := app.NewWindow("Pulsating Timer Style")

	curveNames := make([]string, 0, len(animation.Curves()))
	for _, curve := range animation.Curves() {
		curveNames = append(curveNames, curve.String())
	}

	prefs := &Window{
		window:   window,
		onSave:   onSave,
		target:   widget.NewEntry(),
		interval: widget.NewEntry(),
		duration: widget.NewEntry(),
		radius:   widget.NewEntry(),
		alpha:    widget.NewSlider(0, 1),
		curve:    widget.NewSelect(curveNames, nil),
		bold:     widget.NewCheck("Bold digits", nil),
	}
	prefs.alpha.Step = 0.05
	prefs.radius.SetPlaceHolder("auto")
	prefs.UpdateConfig(config)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Counter", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Target"), prefs.target),
		widget.NewLabelWithStyle("Pulsation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Every"), prefs.interval, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Lasting"), prefs.duration, widget.NewLabel("ms")),
		widget.NewLabel("Opacity"),
		prefs.alpha,
		container.NewHBox(widget.NewLabel("Curve"), prefs.curve),
		widget.NewLabelWithStyle("Circle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Radius"), prefs.radius),
		prefs.bold,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 440))
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateConfig replaces window values.
func (prefs *Window) UpdateConfig(config model.Config) {
	prefs.config = config
	style := config.Style
	prefs.target.SetText(strconv.Itoa(config.Target))
	prefs.interval.SetText(fmt.Sprintf("%d", style.PulsationInterval.Milliseconds()))
	prefs.duration.SetText(fmt.Sprintf("%d", style.PulsationDuration.Milliseconds()))
	if style.CircleRadius >= 0 {
		prefs.radius.SetText(strconv.FormatFloat(float64(style.CircleRadius), 'f', -1, 32))
	} else {
		prefs.radius.SetText("")
	}
	prefs.alpha.Value = style.PulsationAlpha
	prefs.alpha.Refresh()
	prefs.curve.SetSelected(style.Curve.String())
	prefs.bold.SetChecked(style.TextBold)
}

func (prefs *Window) handleSave() {
	prefs.config = prefs.edited()
	if prefs.onSave != nil {
		prefs.onSave(prefs.config)
	}
	prefs.window.Hide()
}

// edited applies the valid form fields on top of the current config.
func (prefs *Window) edited() model.Config {
	config := prefs.config

	if target, err := strconv.Atoi(prefs.target.Text); err == nil && target >= 0 {
		config.Target = target
	}
	if millis, ok := parsePositiveInt(prefs.interval.Text); ok {
		config.Style.PulsationInterval = time.Duration(millis) * time.Millisecond
	}
	if millis, ok := parsePositiveInt(prefs.duration.Text); ok {
		config.Style.PulsationDuration = time.Duration(millis) * time.Millisecond
	}
	if prefs.radius.Text == "" {
		config.Style.CircleRadius = model.AutoRadius
	} else if radius, err := strconv.ParseFloat(prefs.radius.Text, 32); err == nil && radius >= 0 {
		config.Style.CircleRadius = float32(radius)
	}
	if curve, err := animation.ParseCurve(prefs.curve.Selected); err == nil {
		config.Style.Curve = curve
	}
	config.Style.PulsationAlpha = prefs.alpha.Value
	config.Style.TextBold = prefs.bold.Checked
	return config
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
