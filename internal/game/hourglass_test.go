package game

import (
	"testing"
	"time"
)

func TestHourglassIgnoresStaleRuns(t *testing.T) {
	h := NewHourglass(time.Hour, func(uint64) {})
	first := h.Start()
	second := h.Start()
	defer h.Stop()

	if h.Expire(first) {
		t.Fatal("a restarted run expired")
	}
	if !h.Running() {
		t.Fatal("hourglass stopped by a stale expiry")
	}
	if !h.Expire(second) {
		t.Fatal("current run did not expire")
	}
	if h.Expire(second) {
		t.Fatal("run expired twice")
	}
	if h.Remaining() != 0 {
		t.Fatal("remaining time after expiry")
	}
}

func TestHourglassStopCancelsRun(t *testing.T) {
	fired := make(chan uint64, 1)
	h := NewHourglass(10*time.Millisecond, func(gen uint64) { fired <- gen })
	gen := h.Start()
	h.Stop()

	select {
	case got := <-fired:
		if h.Expire(got) {
			t.Fatal("stopped run expired")
		}
	case <-time.After(50 * time.Millisecond):
	}
	if h.Expire(gen) {
		t.Fatal("stopped run expired")
	}
}

func TestHourglassCallsBack(t *testing.T) {
	fired := make(chan uint64, 1)
	h := NewHourglass(time.Millisecond, func(gen uint64) { fired <- gen })
	gen := h.Start()

	select {
	case got := <-fired:
		if got != gen || !h.Expire(got) {
			t.Fatalf("callback gen %d, started %d", got, gen)
		}
	case <-time.After(time.Second):
		t.Fatal("hourglass never ran out")
	}
}
