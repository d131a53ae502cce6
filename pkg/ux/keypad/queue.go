package keypad

import (
	"go.uber.org/atomic"

	"github.com/reardencode/firmware/pkg/ux/internal"
)

const defaultQueueDepth = 16

// Queue is the standard Source implementation: a fixed-depth event queue
// fed by a hardware adapter (or simulator) and drained by the interaction
// code. When the queue overflows the oldest event is dropped, matching
// hardware FIFO behavior.
type Queue struct {
	events    chan Key
	lastEvent atomic.Uint32
	ticks     func() uint32
}

// NewQueue creates a Queue holding up to depth pending events.
// Non-positive depth selects the default.
func NewQueue(depth int) *Queue {
	if depth <= 0 {
		depth = defaultQueueDepth
	}
	return &Queue{
		events: make(chan Key, depth),
		ticks:  internal.TicksMS,
	}
}

// Post delivers a key state change to waiting readers. Never blocks: a
// full queue drops its oldest entry to make room, so the abort sentinel
// in particular always lands.
func (q *Queue) Post(k Key) {
	if k != KeyNone && k != KeyAbort {
		q.lastEvent.Store(q.ticks())
	}

	for {
		select {
		case q.events <- k:
			return
		default:
		}
		select {
		case <-q.events:
		default:
		}
	}
}

// Poll returns the next pending event or ok=false immediately.
func (q *Queue) Poll() (Key, bool, error) {
	select {
	case k := <-q.events:
		if k == KeyAbort {
			return KeyNone, false, ErrAborted
		}
		return k, true, nil
	default:
		return KeyNone, false, nil
	}
}

// Wait blocks until an event is available.
func (q *Queue) Wait() (Key, error) {
	k := <-q.events
	if k == KeyAbort {
		return KeyNone, ErrAborted
	}
	return k, nil
}

// AbortWait wakes any blocked waiter with the abort sentinel.
func (q *Queue) AbortWait() {
	q.Post(KeyAbort)
}

// LastEventTicks returns the tick of the most recent non-release event.
func (q *Queue) LastEventTicks() uint32 {
	return q.lastEvent.Load()
}
