package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	mode       *widget.RadioGroup
	countDown  *widget.Entry
	effective  *widget.Entry
	defaultVal *widget.Entry
	interval   *widget.Entry
	background *widget.Check
	floor      *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("MagicTimer Settings")

	mode := widget.NewRadioGroup([]string{ModeStopWatch, ModeCountDown}, nil)
	mode.Horizontal = true
	countDown := widget.NewEntry()
	effective := widget.NewEntry()
	defaultVal := widget.NewEntry()
	interval := widget.NewEntry()
	background := widget.NewCheck("Count while in background", nil)
	floor := widget.NewCheck("Keep one second when count-down ran out in background", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mode,
		container.NewHBox(widget.NewLabel("Count down from"), countDown, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Step"), effective, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Default value"), defaultVal, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Tick every"), interval, widget.NewLabel("ms")),
		background,
		floor,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 360))

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		mode:       mode,
		countDown:  countDown,
		effective:  effective,
		defaultVal: defaultVal,
		interval:   interval,
		background: background,
		floor:      floor,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = window.Hide
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.mode.SetSelected(settings.Mode)
	prefs.countDown.SetText(strconv.Itoa(settings.CountDownSeconds))
	prefs.effective.SetText(strconv.Itoa(settings.EffectiveValue))
	prefs.defaultVal.SetText(strconv.Itoa(settings.DefaultValue))
	prefs.interval.SetText(fmt.Sprintf("%d", settings.TickInterval.Milliseconds()))
	prefs.background.SetChecked(settings.BackgroundEnabled)
	prefs.floor.SetChecked(settings.CountdownFloor)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if prefs.mode.Selected != "" {
		settings.Mode = prefs.mode.Selected
	}
	if seconds, ok := parseNonNegativeInt(prefs.countDown.Text); ok {
		settings.CountDownSeconds = seconds
	}
	if seconds, ok := parseNonNegativeInt(prefs.effective.Text); ok {
		settings.EffectiveValue = seconds
	}
	if seconds, ok := parseNonNegativeInt(prefs.defaultVal.Text); ok {
		settings.DefaultValue = seconds
	}
	if millis, ok := parseNonNegativeInt(prefs.interval.Text); ok && millis > 0 {
		settings.TickInterval = time.Duration(millis) * time.Millisecond
	}
	settings.BackgroundEnabled = prefs.background.Checked
	settings.CountdownFloor = prefs.floor.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}
