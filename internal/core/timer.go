package core

import "time"

// Timer is a countdown driven by externally measured deltas.
// It never reads the wall clock itself, which keeps game logic deterministic.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
}

// NewTimer creates a timer that becomes ready after d has elapsed.
func NewTimer(d time.Duration) Timer {
	return Timer{duration: d}
}

// Update accumulates elapsed time.
func (t *Timer) Update(delta time.Duration) {
	t.elapsed += delta
}

// Ready reports whether the countdown has expired.
func (t Timer) Ready() bool {
	return t.elapsed >= t.duration
}

// Reset zeroes the elapsed time, keeping the duration.
func (t *Timer) Reset() {
	t.elapsed = 0
}

// Duration returns the countdown length.
func (t Timer) Duration() time.Duration {
	return t.duration
}

// Elapsed returns time accumulated since the last reset.
func (t Timer) Elapsed() time.Duration {
	return t.elapsed
}

// TimeLeft returns the remaining time, never negative.
func (t Timer) TimeLeft() time.Duration {
	if t.elapsed >= t.duration {
		return 0
	}
	return t.duration - t.elapsed
}

// FractionLeft returns TimeLeft as a fraction of the duration in [0, 1].
func (t Timer) FractionLeft() float64 {
	if t.duration <= 0 {
		return 0
	}
	return float64(t.TimeLeft()) / float64(t.duration)
}
