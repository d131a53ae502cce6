// Package platform describes the device variants the ux core runs on.
// The core is variant-agnostic except for the text geometry and a few
// presentation adaptations keyed off the profile.
package platform

// Profile describes one device variant's display geometry and keypad
// style.
type Profile struct {
	Name string

	// CharsW is how many fixed-width characters fit on one display line;
	// story text is word-wrapped to this width.
	CharsW int

	// StoryH is how many text lines fit in the story viewport.
	StoryH int

	// HasQwerty marks the full-keyboard variant. Its screens carry
	// dedicated SELECT/CANCEL keys, so legacy keypad hints in story text
	// are rewritten before display.
	HasQwerty bool
}

// Compact is the original small-screen variant with a numeric keypad.
var Compact = Profile{
	Name:   "compact",
	CharsW: 17,
	StoryH: 5,
}

// Qwerty is the wide-screen variant with a full keyboard.
var Qwerty = Profile{
	Name:      "qwerty",
	CharsW:    34,
	StoryH:    10,
	HasQwerty: true,
}
