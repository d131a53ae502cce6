package stack

import (
	"errors"
	"sync"

	"github.com/reardencode/firmware/pkg/ux/keypad"
)

// ErrNoScreen is returned by Run before the stack has been initialized
// with Reset.
var ErrNoScreen = errors.New("stack: no screen installed")

// Screen is one unit of user interaction.
type Screen interface {
	// Interact runs the screen until it is done, blocked on key input, or
	// unwound by an abort. It returns keypad.ErrAborted (possibly wrapped)
	// when preempted; any other error is a real failure.
	Interact() error
}

// Stack holds the current chain of screens. Once initialized via Reset it
// is never empty: the root screen cannot be popped. The zero value is
// ready to use.
//
// All operations are safe for concurrent use; the watchdog and background
// event handlers mutate the stack from their own goroutines.
type Stack struct {
	mu      sync.Mutex
	entries []Screen
}

// New creates an empty interaction stack.
func New() *Stack {
	return &Stack{}
}

// Reset clears the stack entirely and installs screen as the only entry.
// Used when starting over, e.g. after a login.
func (s *Stack) Reset(screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries[:0], screen)
}

// Push appends screen, making it the active top. The previous top is
// suspended, not destroyed, and resumes when this one is popped.
func (s *Stack) Push(screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, screen)
}

// Replace swaps the current top for screen; the screen below is
// unaffected.
func (s *Stack) Replace(screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.entries); n > 0 {
		s.entries[n-1] = screen
		return
	}
	s.entries = append(s.entries, screen)
}

// Pop removes the current top unless it is the last remaining screen.
// Returns true when the stack was already at the root and nothing was
// removed. The UI can never be left with zero screens.
func (s *Stack) Pop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) < 2 {
		return true
	}
	s.entries[len(s.entries)-1] = nil
	s.entries = s.entries[:len(s.entries)-1]
	return false
}

// Top returns the active screen, or nil if the stack is uninitialized.
func (s *Stack) Top() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

// Len returns the number of screens on the stack.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run invokes Interact on the top screen. An abort is swallowed here: it
// is the designed preemption mechanism, not an error, and the caller's
// next cycle re-reads the (possibly now different) top of stack. Any other
// error from the screen is returned.
func (s *Stack) Run() error {
	top := s.Top()
	if top == nil {
		return ErrNoScreen
	}

	err := top.Interact()
	if errors.Is(err, keypad.ErrAborted) {
		return nil
	}
	return err
}
