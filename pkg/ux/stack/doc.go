// Package stack implements the interaction stack: a LIFO router of screens
// where the top entry is always the one the user is interacting with.
//
// Screens do not know about each other. Navigation direction is expressed
// entirely through which stack operation a screen's logic calls: Push to
// drill in, Pop to back out, Replace to move sideways, Reset to start over.
//
// # Basic Usage
//
//	s := stack.New()
//	s.Reset(mainMenu)
//
//	for {
//	    if err := s.Run(); err != nil {
//	        // infrastructure failure; aborts never surface here
//	    }
//	}
//
// Run executes the top screen's Interact. When a screen is unwound by an
// abort (see the keypad package), Run swallows it: that is the designed
// preemption mechanism, and the caller's next cycle re-reads the possibly
// changed top of stack.
//
// # Preemption
//
// Background actors interrupt the user by mutating the stack first and
// waking the blocked key waiter second, so the driver loop always observes
// the new top when it resumes. The ux package's AbortAndGoto and
// AbortAndPush wrap that ordering.
package stack
