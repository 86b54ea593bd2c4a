package trainer

import (
	"testing"
	"time"

	"github.com/ColonelBlimp/cwtrainer/internal/keyer"
)

func TestHoldTracker_FirstPressEmitsEvent(t *testing.T) {
	h := newHoldTracker(200 * time.Millisecond)
	now := time.Now()

	events := h.Press(keyer.KeyStraight, now)
	if len(events) != 1 || !events[0].Pressed || events[0].Key != keyer.KeyStraight {
		t.Fatalf("Press() = %v, want single press event", events)
	}
}

func TestHoldTracker_RepeatExtendsHold(t *testing.T) {
	h := newHoldTracker(200 * time.Millisecond)
	now := time.Now()

	h.Press(keyer.KeyStraight, now)
	if events := h.Press(keyer.KeyStraight, now.Add(100*time.Millisecond)); len(events) != 0 {
		t.Errorf("repeat Press() = %v, want no events", events)
	}

	// The repeat moved the deadline, so the original window expiring is not
	// enough to release.
	if events := h.Expire(now.Add(250 * time.Millisecond)); len(events) != 0 {
		t.Errorf("Expire() before extended deadline = %v, want none", events)
	}
	events := h.Expire(now.Add(350 * time.Millisecond))
	if len(events) != 1 || events[0].Pressed {
		t.Fatalf("Expire() after extended deadline = %v, want single release", events)
	}
}

func TestHoldTracker_ExpireReleasesOnce(t *testing.T) {
	h := newHoldTracker(200 * time.Millisecond)
	now := time.Now()

	h.Press(keyer.KeyDot, now)
	events := h.Expire(now.Add(time.Second))
	if len(events) != 1 || events[0].Key != keyer.KeyDot || events[0].Pressed {
		t.Fatalf("Expire() = %v, want release of dot key", events)
	}
	if events := h.Expire(now.Add(2 * time.Second)); len(events) != 0 {
		t.Errorf("second Expire() = %v, want none", events)
	}

	// Press after release works again.
	if events := h.Press(keyer.KeyDot, now.Add(3*time.Second)); len(events) != 1 {
		t.Errorf("Press() after release = %v, want single press", events)
	}
}

func TestHoldTracker_TracksKeysIndependently(t *testing.T) {
	h := newHoldTracker(200 * time.Millisecond)
	now := time.Now()

	h.Press(keyer.KeyDot, now)
	h.Press(keyer.KeyDash, now.Add(150*time.Millisecond))

	events := h.Expire(now.Add(250 * time.Millisecond))
	if len(events) != 1 || events[0].Key != keyer.KeyDot {
		t.Fatalf("Expire() = %v, want release of dot key only", events)
	}
}

func TestHoldTracker_ReleaseAll(t *testing.T) {
	h := newHoldTracker(200 * time.Millisecond)
	now := time.Now()

	h.Press(keyer.KeyDot, now)
	h.Press(keyer.KeyDash, now)

	events := h.ReleaseAll()
	if len(events) != 2 {
		t.Fatalf("ReleaseAll() = %v, want two releases", events)
	}
	for _, ev := range events {
		if ev.Pressed {
			t.Errorf("ReleaseAll() produced press event %v", ev)
		}
	}
	if events := h.Expire(now.Add(time.Second)); len(events) != 0 {
		t.Errorf("Expire() after ReleaseAll() = %v, want none", events)
	}
}
