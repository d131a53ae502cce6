package ux

import (
	"io"
	"strings"

	"github.com/reardencode/firmware/pkg/ux/keypad"
)

// Body is the text source for a story: either fully materialized or
// streamed from a larger message.
type Body interface {
	storyBody()
}

// InlineText is a story body held fully in memory.
type InlineText string

func (InlineText) storyBody() {}

// StreamingText reads the story body line by line from Reader, which is
// closed as soon as the lines have been consumed to bound memory use.
type StreamingText struct {
	Reader io.ReadCloser
}

func (StreamingText) storyBody() {}

// StoryOptions adjusts how ShowStory presents and exits.
type StoryOptions struct {
	// Title, when set, renders as the first line with the title marker.
	Title string

	// Escape lists keys returned verbatim the moment they are pressed,
	// letting embedding screens define custom exits.
	Escape string

	// Sensitive marks content that warrants the shoulder-surfing badge.
	Sensitive bool

	// StrictEscape disables the default select/cancel translation and the
	// auxiliary capture keys; only Escape keys and scrolling work.
	StrictEscape bool
}

// ShowStory presents a long, possibly multi-page text and blocks until
// the user dismisses it. It returns exactly one terminal value: a
// verbatim Escape or auxiliary key, or the canonical KeyYes/KeyNo
// markers. It never returns on an abort; that propagates to the driver
// loop.
func (c *Context) ShowStory(body Body, opts StoryOptions) (keypad.Key, error) {
	lines, err := storyLines(body, opts.Title, c.Profile)
	if err != nil {
		return keypad.KeyNone, err
	}

	h := c.Profile.StoryH
	total := len(lines)
	top := 0

	for {
		end := top + h
		if end > total {
			end = total
		}
		c.Display.DrawStory(lines[top:end], top, total, opts.Sensitive)

		k, err := keypad.WaitKeyUp(c.Keys, "")
		if err != nil {
			return keypad.KeyNone, err
		}

		if opts.Escape != "" && strings.Contains(opts.Escape, string(k)) {
			// allow another way out for some usages
			return k, nil
		}

		switch k {
		case keypad.KeySelect:
			if !opts.StrictEscape {
				return keypad.KeyYes, nil
			}
		case keypad.KeyCancel:
			if !opts.StrictEscape {
				return keypad.KeyNo, nil
			}
		case keypad.KeyYes, keypad.KeyNo:
			if !opts.StrictEscape {
				return k, nil
			}
		case keypad.KeyEnd:
			top = max(0, total-h/2)
		case "0", keypad.KeyHome:
			top = 0
		case "7", keypad.KeyPageUp:
			top = max(0, top-h)
		case "9", keypad.KeyPageDown:
			top = max(0, min(total-2, top+h))
		case "5", keypad.KeyUp:
			top = max(0, top-1)
		case "8", keypad.KeyDown:
			top = max(0, min(total-2, top+1))
		case keypad.KeyNFC, keypad.KeyQR:
			if !opts.StrictEscape {
				return k, nil
			}
		}
	}
}

// StoryScreen adapts ShowStory to the interaction stack: it shows the
// story once, reports the dismissing key, and pops itself.
type StoryScreen struct {
	Ctx  *Context
	Body Body
	Opts StoryOptions

	// OnDone, when set, receives the key that dismissed the story.
	OnDone func(k keypad.Key)
}

// Interact implements stack.Screen.
func (s *StoryScreen) Interact() error {
	k, err := s.Ctx.ShowStory(s.Body, s.Opts)
	if err != nil {
		return err
	}
	if s.OnDone != nil {
		s.OnDone(k)
	}
	s.Ctx.Stack.Pop()
	return nil
}
