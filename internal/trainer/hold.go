// internal/trainer/hold.go
package trainer

import (
	"time"

	"github.com/ColonelBlimp/cwtrainer/internal/keyer"
)

// holdTracker turns terminal key input into press/release pairs. Terminals
// only report key-down (and auto-repeat) events, so a key is considered
// held while repeats keep arriving within the hold window and released once
// the window expires without one.
type holdTracker struct {
	window    time.Duration
	deadlines map[keyer.Key]time.Time
}

func newHoldTracker(window time.Duration) *holdTracker {
	return &holdTracker{
		window:    window,
		deadlines: make(map[keyer.Key]time.Time),
	}
}

// Press records a key-down or auto-repeat at now. It returns a press event
// on the first down; repeats only extend the hold.
func (h *holdTracker) Press(key keyer.Key, now time.Time) []keyer.Event {
	_, held := h.deadlines[key]
	h.deadlines[key] = now.Add(h.window)
	if held {
		return nil
	}
	return []keyer.Event{{Key: key, Pressed: true}}
}

// Expire returns release events for every held key whose window has passed
// without a repeat.
func (h *holdTracker) Expire(now time.Time) []keyer.Event {
	var events []keyer.Event
	for key, deadline := range h.deadlines {
		if now.Before(deadline) {
			continue
		}
		delete(h.deadlines, key)
		events = append(events, keyer.Event{Key: key, Pressed: false})
	}
	return events
}

// ReleaseAll releases every held key immediately.
func (h *holdTracker) ReleaseAll() []keyer.Event {
	var events []keyer.Event
	for key := range h.deadlines {
		delete(h.deadlines, key)
		events = append(events, keyer.Event{Key: key, Pressed: false})
	}
	return events
}
