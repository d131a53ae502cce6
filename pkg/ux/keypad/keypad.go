// Package keypad defines the key event contract for the physical keypad
// and provides the queue implementation shared by the hardware adapter,
// the simulator, and tests.
//
// A delivered event is the current chord state: the set of keys held at
// that moment, encoded as a string of logical key codes. The empty string
// means everything was released. Waiters that want single presses filter
// out chords as noise.
package keypad

import (
	"errors"
	"sort"
	"strings"
)

// ErrAborted indicates a higher-priority actor wants control of the UI now.
// It is flow control, not a failure: every level between the triggering key
// wait and the driver loop lets it propagate, and only the driver loop
// swallows it.
var ErrAborted = errors.New("keypad: interaction aborted")

// Key is a logical key code. Printable keys use their own character
// ("0"-"9", "x", "y"); navigation and function keys use control codes.
// The empty Key is a release event; a multi-character Key is a chord.
type Key string

const (
	KeyNone     Key = ""     // all keys released
	KeyHome     Key = "\x01" // jump to top
	KeyLeft     Key = "\x02"
	KeyEnd      Key = "\x05"
	KeyRight    Key = "\x06"
	KeyDelete   Key = "\x08"
	KeyTab      Key = "\t"
	KeyUp       Key = "\x0b"
	KeyDown     Key = "\x0c"
	KeySelect   Key = "\r"
	KeyPageDown Key = "\x0e"
	KeyNFC      Key = "\x0f" // request alternate output over NFC
	KeyPageUp   Key = "\x10"
	KeyQR       Key = "\x11" // request alternate output as QR
	KeyCancel   Key = "\x1b"

	// KeyYes and KeyNo are the literal shortcut keys on the compact keypad
	// and double as the canonical confirm/cancel markers returned by the
	// story viewer.
	KeyYes Key = "y"
	KeyNo  Key = "x"

	// KeyAbort is the reserved wakeup sentinel. It is never returned to
	// callers; sources translate it into ErrAborted.
	KeyAbort Key = "\xff"
)

// Released reports whether this event means "all keys released".
func (k Key) Released() bool { return k == KeyNone }

// Chord reports whether more than one key was held at once.
func (k Key) Chord() bool { return len(k) > 1 }

// Source delivers key events from the keypad hardware (or a simulator).
//
// Either Poll or Wait returns ErrAborted instead of a key when it
// encounters the reserved abort sentinel; this is how external preemption
// reaches a blocked screen. Every delivered non-release, non-abort event
// updates the source's last-event tick, so idle tracking cannot be
// bypassed by a screen forgetting to report activity.
type Source interface {
	// Poll returns the next pending event, or ok=false immediately when
	// none is queued. It never blocks.
	Poll() (k Key, ok bool, err error)

	// Wait blocks the caller until an event is available.
	Wait() (Key, error)

	// AbortWait wakes any blocked waiter with the abort sentinel. Callers
	// must mutate the interaction stack before invoking this, so the
	// driver loop observes the new state when it resumes.
	AbortWait()

	// LastEventTicks returns the millisecond tick of the most recent
	// non-release event, or 0 if none has been recorded.
	LastEventTicks() uint32
}

// Drain discards all queued events, so a fresh screen does not act on
// stale keypresses. With suppressAbort set, a queued abort sentinel is
// discarded too; otherwise it surfaces as ErrAborted.
func Drain(src Source, suppressAbort bool) error {
	for {
		_, ok, err := src.Poll()
		if err != nil {
			if suppressAbort && errors.Is(err, ErrAborted) {
				continue
			}
			return err
		}
		if !ok {
			return nil
		}
	}
}

// WaitKeyUp recognizes a full press/release cycle and returns the pressed
// key once it is released, mirroring physical button semantics. Chords are
// ignored. A non-empty accepted set restricts which presses arm the
// release; others are ignored.
func WaitKeyUp(src Source, accepted string) (Key, error) {
	var armed Key
	for {
		k, err := src.Wait()
		if err != nil {
			return KeyNone, err
		}

		if k.Chord() {
			// multipress noise
			continue
		}

		if k.Released() {
			if armed != KeyNone {
				return armed, nil
			}
			continue
		}

		if accepted != "" && !strings.Contains(accepted, string(k)) {
			continue
		}

		armed = k
	}
}

// Chord encodes a held-key set as a single deterministic event value.
// Adapters use this to post chord state changes.
func Chord(held map[Key]bool) Key {
	if len(held) == 0 {
		return KeyNone
	}
	codes := make([]string, 0, len(held))
	for k := range held {
		codes = append(codes, string(k))
	}
	sort.Strings(codes)
	return Key(strings.Join(codes, ""))
}
