/*
Package game
File: hourglass.go
Description:
    The building-phase hourglass. It runs on its own timer goroutine; every
    run gets a generation number and an expiry only counts when its
    generation is still current, so a restart or a stop can never be
    followed by a stale timeout.
*/

package game

import (
	"sync"
	"time"
)

type Hourglass struct {
	mu       sync.Mutex
	duration time.Duration
	timer    *time.Timer
	gen      uint64
	running  bool
	deadline time.Time
	onExpire func(gen uint64)
}

// NewHourglass creates a stopped hourglass. onExpire runs on the timer
// goroutine with the generation of the run that ran out; the receiver must
// confirm it with Expire before acting.
func NewHourglass(d time.Duration, onExpire func(gen uint64)) *Hourglass {
	return &Hourglass{duration: d, onExpire: onExpire}
}

// Start (re)starts a run, cancelling the pending one.
func (h *Hourglass) Start() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
	}
	h.gen++
	gen := h.gen
	h.running = true
	h.deadline = time.Now().Add(h.duration)
	h.timer = time.AfterFunc(h.duration, func() { h.onExpire(gen) })
	return gen
}

// Stop cancels the current run.
func (h *Hourglass) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.gen++
	h.running = false
}

// Expire reports whether gen is the run in progress and, if so, ends it.
func (h *Hourglass) Expire(gen uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running || gen != h.gen {
		return false
	}
	h.running = false
	h.timer = nil
	return true
}

func (h *Hourglass) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// Remaining is the time left in the current run.
func (h *Hourglass) Remaining() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return 0
	}
	return max(time.Until(h.deadline), 0)
}
