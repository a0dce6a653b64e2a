package timerview

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"magictimer/internal/core/timekeeper"
)

type fakeController struct {
	state    timekeeper.State
	elapsed  float64
	startErr error
	calls    []string
}

func (c *fakeController) Start() error {
	c.calls = append(c.calls, "start")
	if c.startErr == nil {
		c.state = timekeeper.StateFired
	}
	return c.startErr
}

func (c *fakeController) Stop()                   { c.calls = append(c.calls, "stop") }
func (c *fakeController) Reset()                  { c.calls = append(c.calls, "reset") }
func (c *fakeController) ResetToDefault()         { c.calls = append(c.calls, "default") }
func (c *fakeController) State() timekeeper.State { return c.state }
func (c *fakeController) Elapsed() float64        { return c.elapsed }

func TestNew_RendersInitialValue(t *testing.T) {
	test.NewTempApp(t)
	controller := &fakeController{state: timekeeper.StateNone, elapsed: 65}

	view := New(controller, nil, nil)

	assert.Equal(t, "01:05", view.Text())
	assert.True(t, view.stopBtn.Disabled())
	assert.False(t, view.startBtn.Disabled())
}

func TestView_ElapsedNotification(t *testing.T) {
	test.NewTempApp(t)
	controller := &fakeController{state: timekeeper.StateFired}
	var changes []string
	view := New(controller, nil, func(state timekeeper.State, text string) {
		changes = append(changes, text)
	})

	view.OnElapsedTimeChanged(3661)

	assert.Equal(t, "01:01:01", view.Text())
	assert.Equal(t, "01:01:01", changes[len(changes)-1])
	assert.True(t, view.startBtn.Disabled())
}

func TestView_StateNotificationUsesControllerElapsed(t *testing.T) {
	test.NewTempApp(t)
	controller := &fakeController{state: timekeeper.StateFired, elapsed: 10}
	view := New(controller, nil, nil)

	controller.elapsed = 0
	view.OnStateChanged(timekeeper.StateStopped)

	assert.Equal(t, "00:00", view.Text())
	assert.Equal(t, "stopped", view.stateLabel.Text)
	assert.False(t, view.startBtn.Disabled())
}

func TestView_ButtonsDriveController(t *testing.T) {
	test.NewTempApp(t)
	controller := &fakeController{state: timekeeper.StateNone}
	view := New(controller, nil, nil)

	test.Tap(view.startBtn)
	view.stopBtn.Enable()
	test.Tap(view.stopBtn)

	assert.Equal(t, []string{"start", "stop"}, controller.calls)
}

func TestView_StartErrorShown(t *testing.T) {
	test.NewTempApp(t)
	controller := &fakeController{state: timekeeper.StateNone, startErr: errors.New("misaligned")}
	view := New(controller, nil, nil)

	test.Tap(view.startBtn)

	assert.Equal(t, "misaligned", view.errorLabel.Text)
}
