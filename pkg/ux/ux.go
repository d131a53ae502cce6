// Package ux is the on-device user-interaction core: it owns the driver
// loop over the interaction stack, the paginated story viewer, the menu
// system, the idle watchdog, and the abort signaling that lets privileged
// background activity redirect the UI.
//
// The hardware collaborators (display, keypad, settings) are passed in as
// interfaces; see the display, keypad, and settings packages for the
// contracts and the stock implementations.
package ux

import (
	"errors"
	"log/slog"
	"time"

	"go.uber.org/atomic"

	"github.com/reardencode/firmware/pkg/ux/display"
	"github.com/reardencode/firmware/pkg/ux/internal"
	"github.com/reardencode/firmware/pkg/ux/keypad"
	"github.com/reardencode/firmware/pkg/ux/platform"
	"github.com/reardencode/firmware/pkg/ux/settings"
	"github.com/reardencode/firmware/pkg/ux/stack"
)

// Context bundles the interaction stack with the device collaborators.
// There is one Context per process, created at startup and handed to the
// driver loop, the watchdog task, and any background event handlers.
type Context struct {
	Stack    *stack.Stack
	Keys     keypad.Source
	Display  display.Display
	Settings *settings.Store
	Profile  platform.Profile

	// Secure is set while a privileged automated mode is active; it
	// suspends the idle watchdog and skips dramatic pauses.
	Secure *atomic.Bool

	log     *slog.Logger
	sleepFn func(time.Duration)
}

// New creates the interaction context. The stack starts empty; install
// the first screen with Stack.Reset before running the driver loop.
func New(keys keypad.Source, disp display.Display, store *settings.Store, profile platform.Profile) *Context {
	return &Context{
		Stack:    stack.New(),
		Keys:     keys,
		Display:  disp,
		Settings: store,
		Profile:  profile,
		Secure:   atomic.NewBool(false),
		log:      internal.GetLogger(),
	}
}

// Interact is the driver loop: run the top of stack forever. Aborts are
// already absorbed by Stack.Run; real screen failures are logged and the
// loop continues with whatever is on top.
func (c *Context) Interact() {
	for {
		if err := c.Stack.Run(); err != nil {
			c.log.Error("screen failed", "error", err)
			// don't spin if the top screen fails immediately every time
			time.Sleep(250 * time.Millisecond)
		}
	}
}

// AbortAndGoto discards the entire navigation history, makes screen the
// only entry, and wakes any blocked key waiter. The stack mutates before
// the wakeup so the driver loop's next cycle already sees the new top.
func (c *Context) AbortAndGoto(screen stack.Screen) {
	c.Stack.Reset(screen)
	c.Keys.AbortWait()
}

// AbortAndPush keeps the current navigation history but interrupts it
// with screen; the interrupted flow resumes when screen pops itself.
func (c *Context) AbortAndPush(screen stack.Screen) {
	c.Stack.Push(screen)
	c.Keys.AbortWait()
}

// IsAborted reports whether err is the abort signal (possibly wrapped).
func IsAborted(err error) bool {
	return errors.Is(err, keypad.ErrAborted)
}

// Refresher is an optional screen capability: rebuild contents that may
// have changed while the screen was not in control.
type Refresher interface {
	UpdateContents()
}

// Shower is an optional screen capability: redraw without entering the
// interaction loop.
type Shower interface {
	Show()
}

// RestoreTop redraws the active screen after something outside the ux
// core disturbed the display (e.g. a host-driven upload).
func (c *Context) RestoreTop() {
	top := c.Stack.Top()
	if top == nil {
		return
	}
	if r, ok := top.(Refresher); ok {
		r.UpdateContents()
	}
	if s, ok := top.(Shower); ok {
		s.Show()
	}
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before the first log statement to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// SetLogLevel sets the minimum log level.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g.
// "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
