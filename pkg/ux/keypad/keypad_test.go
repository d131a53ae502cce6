package keypad

import (
	"errors"
	"testing"
)

func TestQueuePollEmpty(t *testing.T) {
	q := NewQueue(4)

	k, ok, err := q.Poll()
	if err != nil {
		t.Fatalf("Poll on empty queue returned error: %v", err)
	}
	if ok || k != KeyNone {
		t.Fatalf("expected no event, got %q ok=%v", k, ok)
	}
}

func TestQueueWaitDeliversInOrder(t *testing.T) {
	q := NewQueue(4)
	q.Post("5")
	q.Post(KeyNone)

	k, err := q.Wait()
	if err != nil || k != "5" {
		t.Fatalf("expected 5, got %q err=%v", k, err)
	}

	k, err = q.Wait()
	if err != nil || !k.Released() {
		t.Fatalf("expected release, got %q err=%v", k, err)
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueue(2)
	q.Post("1")
	q.Post("2")
	q.Post("3")

	k, _, _ := q.Poll()
	if k != "2" {
		t.Fatalf("expected oldest event dropped, first is %q", k)
	}
	k, _, _ = q.Poll()
	if k != "3" {
		t.Fatalf("expected 3, got %q", k)
	}
}

func TestAbortWaitRaisesFromWaitAndPoll(t *testing.T) {
	q := NewQueue(4)
	q.AbortWait()

	if _, err := q.Wait(); !errors.Is(err, ErrAborted) {
		t.Fatalf("Wait: expected ErrAborted, got %v", err)
	}

	q.AbortWait()
	if _, _, err := q.Poll(); !errors.Is(err, ErrAborted) {
		t.Fatalf("Poll: expected ErrAborted, got %v", err)
	}
}

func TestAbortWaitLandsOnFullQueue(t *testing.T) {
	q := NewQueue(2)
	q.Post("1")
	q.Post("2")
	q.AbortWait()

	// The sentinel must be reachable even though the queue was full.
	for {
		_, ok, err := q.Poll()
		if errors.Is(err, ErrAborted) {
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("queue drained without seeing abort sentinel")
		}
	}
}

func TestDrainDiscardsPending(t *testing.T) {
	q := NewQueue(8)
	q.Post("1")
	q.Post(KeyNone)
	q.Post("y")

	if err := Drain(q, false); err != nil {
		t.Fatalf("Drain returned error: %v", err)
	}
	if _, ok, _ := q.Poll(); ok {
		t.Fatal("events left after Drain")
	}
}

func TestDrainAbortHandling(t *testing.T) {
	q := NewQueue(8)
	q.Post("1")
	q.AbortWait()
	q.Post("2")

	if err := Drain(q, false); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	q.Post("1")
	q.AbortWait()
	q.Post("2")
	if err := Drain(q, true); err != nil {
		t.Fatalf("suppressed Drain returned error: %v", err)
	}
	if _, ok, _ := q.Poll(); ok {
		t.Fatal("events left after suppressed Drain")
	}
}

func TestWaitKeyUpReturnsOnRelease(t *testing.T) {
	q := NewQueue(8)
	q.Post("5")
	q.Post(KeyNone)

	k, err := WaitKeyUp(q, "")
	if err != nil {
		t.Fatalf("WaitKeyUp returned error: %v", err)
	}
	if k != "5" {
		t.Fatalf("expected 5 on release, got %q", k)
	}
}

func TestWaitKeyUpIgnoresChords(t *testing.T) {
	q := NewQueue(8)
	q.Post("58") // two keys held at once
	q.Post(KeyNone)
	q.Post("8")
	q.Post(KeyNone)

	k, err := WaitKeyUp(q, "")
	if err != nil {
		t.Fatalf("WaitKeyUp returned error: %v", err)
	}
	if k != "8" {
		t.Fatalf("expected chord filtered out, got %q", k)
	}
}

func TestWaitKeyUpAcceptedSet(t *testing.T) {
	q := NewQueue(8)
	q.Post("3") // not accepted, must not arm
	q.Post(KeyNone)
	q.Post("y")
	q.Post(KeyNone)

	k, err := WaitKeyUp(q, "xy")
	if err != nil {
		t.Fatalf("WaitKeyUp returned error: %v", err)
	}
	if k != KeyYes {
		t.Fatalf("expected y, got %q", k)
	}
}

func TestWaitKeyUpAbortUnwinds(t *testing.T) {
	q := NewQueue(8)
	q.Post("5") // armed but never released
	q.AbortWait()

	if _, err := WaitKeyUp(q, ""); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestLastEventTicks(t *testing.T) {
	q := NewQueue(8)
	tick := uint32(0)
	q.ticks = func() uint32 { return tick }

	if q.LastEventTicks() != 0 {
		t.Fatal("expected zero before any event")
	}

	tick = 100
	q.Post("5")
	if got := q.LastEventTicks(); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}

	// Releases and aborts do not count as liveness.
	tick = 200
	q.Post(KeyNone)
	q.AbortWait()
	if got := q.LastEventTicks(); got != 100 {
		t.Fatalf("expected release/abort ignored, got %d", got)
	}
}

func TestChordEncoding(t *testing.T) {
	if Chord(nil) != KeyNone {
		t.Fatal("empty held set must encode as release")
	}
	held := map[Key]bool{"8": true, "5": true}
	if got := Chord(held); got != "58" {
		t.Fatalf("expected deterministic chord 58, got %q", got)
	}
	if !Chord(held).Chord() {
		t.Fatal("two held keys must report as chord")
	}
}
