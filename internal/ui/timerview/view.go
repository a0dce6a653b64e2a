// Package timerview shows a TimeKeeper's elapsed time with basic controls.
package timerview

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"magictimer/internal/core/timekeeper"
	"magictimer/internal/format"
)

// Controller is the set of timer commands the view issues.
type Controller interface {
	Start() error
	Stop()
	Reset()
	ResetToDefault()
	State() timekeeper.State
	Elapsed() float64
}

// View renders the formatted elapsed time. It implements timekeeper.Listener
// and may be notified from any goroutine.
type View struct {
	controller Controller
	formatter  format.Formatter
	timeLabel  *canvas.Text
	stateLabel *widget.Label
	errorLabel *widget.Label
	startBtn   *widget.Button
	stopBtn    *widget.Button
	content    fyne.CanvasObject
	onChange   func(timekeeper.State, string)
}

// New builds the view. onChange, if set, is called on the UI goroutine with
// the current state and formatted time after every update.
func New(controller Controller, formatter format.Formatter, onChange func(timekeeper.State, string)) *View {
	if formatter == nil {
		formatter = format.Standard{}
	}

	timeLabel := canvas.NewText(formatter.Format(controller.Elapsed()), color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeLabel.TextSize = 45

	view := &View{
		controller: controller,
		formatter:  formatter,
		timeLabel:  timeLabel,
		stateLabel: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		errorLabel: widget.NewLabel(""),
		onChange:   onChange,
	}
	view.errorLabel.Wrapping = fyne.TextWrapWord

	view.startBtn = widget.NewButton("Start", view.handleStart)
	view.stopBtn = widget.NewButton("Stop", controller.Stop)
	reset := widget.NewButton("Reset", controller.Reset)
	resetDefault := widget.NewButton("Reset to default", controller.ResetToDefault)

	view.content = container.NewVBox(
		layout.NewSpacer(),
		timeLabel,
		view.stateLabel,
		container.NewHBox(layout.NewSpacer(), view.startBtn, view.stopBtn, reset, resetDefault, layout.NewSpacer()),
		view.errorLabel,
		layout.NewSpacer(),
	)
	view.render(controller.State(), controller.Elapsed())
	return view
}

// Content returns the canvas object to place in a window.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}

// Text returns the currently displayed time.
func (view *View) Text() string {
	return view.timeLabel.Text
}

// OnStateChanged implements timekeeper.Listener.
func (view *View) OnStateChanged(state timekeeper.State) {
	elapsed := view.controller.Elapsed()
	fyne.Do(func() {
		view.render(state, elapsed)
	})
}

// OnElapsedTimeChanged implements timekeeper.Listener.
func (view *View) OnElapsedTimeChanged(seconds float64) {
	state := view.controller.State()
	fyne.Do(func() {
		view.render(state, seconds)
	})
}

func (view *View) handleStart() {
	if err := view.controller.Start(); err != nil {
		view.errorLabel.SetText(err.Error())
		return
	}
	view.errorLabel.SetText("")
}

func (view *View) render(state timekeeper.State, seconds float64) {
	text := view.formatter.Format(seconds)
	view.timeLabel.Text = text
	view.timeLabel.Refresh()
	view.stateLabel.SetText(string(state))

	running := state == timekeeper.StateFired
	if running {
		view.startBtn.Disable()
		view.stopBtn.Enable()
	} else {
		view.startBtn.Enable()
		view.stopBtn.Disable()
	}

	if view.onChange != nil {
		view.onChange(state, text)
	}
}
