// Package display defines the screen collaborator contract for the ux
// core and provides an SDL-backed character-grid implementation for
// development and the desktop simulator. The core calls the Display
// interface and knows nothing about pixel layout.
package display

// TitleMarker prefixes a story line that should be rendered as a title.
const TitleMarker = "\x01"

// Display renders the character-oriented surfaces the ux core needs.
type Display interface {
	// DrawStory renders the visible window of a paginated story plus a
	// scroll indicator. lines is the visible slice, top its index within
	// the full line buffer, total the buffer length. sensitive marks
	// content that should carry the shoulder-surfing warning badge.
	DrawStory(lines []string, top, total int, sensitive bool)

	// DrawMenu renders the visible menu labels. selected indexes into
	// labels; ypos and total position the scroll indicator.
	DrawMenu(labels []string, selected, ypos, total int)

	// Fullscreen shows a single centered message, replacing all content.
	Fullscreen(msg string)

	// ProgressBar renders a progress bar over the current fullscreen
	// message. fraction is clamped to [0, 1].
	ProgressBar(fraction float64)

	// ShowFatalError renders a terminal, non-interactive error banner.
	// Nothing can be drawn after it; the device is expected to halt.
	ShowFatalError(lines []string)
}
