// internal/keyer/ticker.go
// Package keyer implements the Morse timing and keying engine: a tick-based
// virtual clock, a symbol-buffer decoder that commits characters on timing
// boundaries, and an iambic scheduler that resolves dual-paddle input into
// an ordered element stream.
package keyer

import "time"

// MaxTick is the highest tick the clock reports. Tick 3 is the character
// boundary, tick 7 the word boundary; nothing past 7 carries meaning for
// decoding, so the clock saturates there unless wrapping is enabled.
const MaxTick = 7

// Ticker accumulates elapsed time into discrete ticks of one dit each.
// It is the sole source of timing truth for the engine: it accepts
// arbitrary, possibly irregular deltas and never polls the wall clock.
type Ticker struct {
	ditDuration time.Duration
	elapsed     time.Duration
	ticks       int
	wasReset    bool
	wrap        bool
}

// NewTicker returns a ticker with the given dit duration.
func NewTicker(ditDuration time.Duration) *Ticker {
	return &Ticker{ditDuration: ditDuration}
}

// Ticks returns the current tick count.
func (t *Ticker) Ticks() int { return t.ticks }

// DitDuration returns the current base unit.
func (t *Ticker) DitDuration() time.Duration { return t.ditDuration }

// SetDitDuration changes the base unit and resets the clock, discarding any
// in-flight measurement (it would be meaningless at the new speed). A no-op
// if the duration is unchanged.
func (t *Ticker) SetDitDuration(d time.Duration) {
	if d == t.ditDuration {
		return
	}
	t.ditDuration = d
	t.Reset()
}

// SetWrap selects between saturating at MaxTick (decode mode) and cycling
// through an 8-phase loop (iambic mode). Kept as an explicit switch so the
// clock stays independent of keyer modes.
func (t *Ticker) SetWrap(wrap bool) { t.wrap = wrap }

// Reset zeroes the clock. The next Advance call reports a change even if
// the numeric tick value ends up equal to the old one, so a fresh cycle is
// never silently dropped.
func (t *Ticker) Reset() {
	t.wasReset = true
	t.ticks = 0
	t.elapsed = 0
}

// Advance adds delta to the clock and returns the tick count plus whether
// it changed since the previous call.
func (t *Ticker) Advance(delta time.Duration) (int, bool) {
	wasReset := t.wasReset
	t.wasReset = false
	t.elapsed += delta

	old := t.ticks
	for t.ditDuration > 0 && t.elapsed >= t.ditDuration {
		t.elapsed -= t.ditDuration
		if t.ticks < MaxTick {
			t.ticks++
		} else if t.wrap {
			t.ticks = 0
		}
	}
	return t.ticks, wasReset || t.ticks != old
}
