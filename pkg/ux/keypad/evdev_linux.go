//go:build linux

package keypad

import (
	"fmt"

	"github.com/holoplot/go-evdev"
)

// EvdevMapping translates kernel input key codes to logical keypad codes.
type EvdevMapping map[evdev.EvCode]Key

// DefaultEvdevMapping covers the matrix keypad wiring used by both device
// variants: digits, the yes/no shortcut keys, and the navigation cluster
// present on the qwerty variant.
func DefaultEvdevMapping() EvdevMapping {
	m := EvdevMapping{
		evdev.KEY_0:        "0",
		evdev.KEY_1:        "1",
		evdev.KEY_2:        "2",
		evdev.KEY_3:        "3",
		evdev.KEY_4:        "4",
		evdev.KEY_5:        "5",
		evdev.KEY_6:        "6",
		evdev.KEY_7:        "7",
		evdev.KEY_8:        "8",
		evdev.KEY_9:        "9",
		evdev.KEY_Y:        KeyYes,
		evdev.KEY_X:        KeyNo,
		evdev.KEY_ENTER:    KeySelect,
		evdev.KEY_ESC:      KeyCancel,
		evdev.KEY_UP:       KeyUp,
		evdev.KEY_DOWN:     KeyDown,
		evdev.KEY_LEFT:     KeyLeft,
		evdev.KEY_RIGHT:    KeyRight,
		evdev.KEY_HOME:     KeyHome,
		evdev.KEY_END:      KeyEnd,
		evdev.KEY_PAGEUP:   KeyPageUp,
		evdev.KEY_PAGEDOWN: KeyPageDown,
		evdev.KEY_TAB:      KeyTab,
	}
	return m
}

// ListenEvdev reads EV_KEY events from an input device and posts chord
// state changes to q. It blocks until the device read fails, so run it on
// its own goroutine.
func ListenEvdev(path string, mapping EvdevMapping, q *Queue) error {
	dev, err := evdev.Open(path)
	if err != nil {
		return fmt.Errorf("keypad: open %s: %w", path, err)
	}
	defer dev.Close()

	held := make(map[Key]bool)
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			return fmt.Errorf("keypad: read %s: %w", path, err)
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}
		k, ok := mapping[ev.Code]
		if !ok {
			continue
		}

		switch ev.Value {
		case 1:
			held[k] = true
		case 0:
			delete(held, k)
		default:
			// autorepeat, the queue consumers do their own repeat
			continue
		}

		q.Post(Chord(held))
	}
}
