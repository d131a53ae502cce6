package ux

import (
	"strings"
	"time"

	"github.com/reardencode/firmware/pkg/ux/keypad"
)

// Confirm shows msg under a stock are-you-sure banner and reports whether
// the user confirmed.
func (c *Context) Confirm(msg string) (bool, error) {
	resp, err := c.ShowStory(InlineText(localize(msgConfirmPrefix)+"\n\n"+msg), StoryOptions{})
	if err != nil {
		return false, err
	}
	return resp == keypad.KeyYes, nil
}

// DramaticPause shows a fullscreen message with a progress sweep for the
// given duration, then discards whatever keys were mashed meanwhile.
// Skipped entirely while secure mode is active.
func (c *Context) DramaticPause(msg string, d time.Duration) error {
	if c.Secure.Load() {
		return nil
	}

	const step = 125 * time.Millisecond
	n := int(d / step)
	if n < 1 {
		n = 1
	}

	c.Display.Fullscreen(msg)
	for i := 0; i < n; i++ {
		c.Display.ProgressBar(float64(i) / float64(n))
		c.sleep(step)
	}

	return keypad.Drain(c.Keys, false)
}

// ShowAborted tells the user a dangerous action was not performed because
// they backed out of the confirmations.
func (c *Context) ShowAborted() error {
	return c.DramaticPause(localize(msgAborted), 2*time.Second)
}

// ShowFatalError puts up the terminal error banner with the last lines of
// the failure trace. It does not return control to the UI; callers halt
// after this.
func (c *Context) ShowFatalError(trace string) {
	lines := strings.Split(strings.TrimRight(trace, "\n"), "\n")
	if len(lines) > 6 {
		lines = lines[len(lines)-6:]
	}
	c.log.Error("fatal error", "banner", localize(msgFatalBanner), "trace", trace)
	c.Display.ShowFatalError(lines)
}

// sleep is indirect so tests can compress dramatic pauses.
func (c *Context) sleep(d time.Duration) {
	if c.sleepFn != nil {
		c.sleepFn(d)
		return
	}
	time.Sleep(d)
}
