// Package internal contains the shared infrastructure for the ux core:
// structured logging and the millisecond tick clock. Types and functions
// in this package are not part of the public API.
package internal

import "time"

var tickBase = time.Now()

// TicksMS returns elapsed milliseconds as a 32-bit counter. Device uptime
// counters wrap, so callers must compare values with TicksDiff rather than
// raw subtraction.
func TicksMS() uint32 {
	return uint32(time.Since(tickBase).Milliseconds())
}

// TicksDiff returns a-b in milliseconds, correct across counter wraparound
// for intervals shorter than half the counter range.
func TicksDiff(a, b uint32) int32 {
	return int32(a - b)
}
