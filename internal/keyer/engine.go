// internal/keyer/engine.go
package keyer

import (
	"strings"
	"time"

	"github.com/ColonelBlimp/cwtrainer/internal/morse"
)

// Key identifies a logical input key.
type Key int

const (
	// KeyStraight is the single straight key: press duration selects the
	// element.
	KeyStraight Key = iota
	// KeyDot is the dot paddle.
	KeyDot
	// KeyDash is the dash paddle.
	KeyDash
)

// Event is one discrete key transition delivered with a frame.
type Event struct {
	Key     Key
	Pressed bool
}

// Output is everything a frame produced: the text committed this frame, a
// snapshot of the symbol buffer and tick count for display, and the tone
// commands for the audio collaborator. Tone commands are best-effort
// signals; the engine's timing and decode results do not depend on anyone
// consuming them.
type Output struct {
	Committed string
	Buffer    string
	Ticks     int
	Tone      []ToneAction
}

// Engine is the single-threaded keying engine. One instance per training
// session; the caller drives it with one Advance per frame and owns all the
// state in between. Nothing here blocks, sleeps, or shares state across
// goroutines.
type Engine struct {
	ticker    *Ticker
	scheduler *Scheduler
	mode      Mode

	pressed bool
	buffer  []byte
	text    strings.Builder
}

// NewEngine returns an engine at the given speed in straight-key mode.
func NewEngine(wpm int) *Engine {
	return &Engine{
		ticker: NewTicker(morse.DitDuration(wpm)),
	}
}

// Text returns the committed transcript.
func (e *Engine) Text() string { return e.text.String() }

// Mode returns the current keyer mode.
func (e *Engine) Mode() Mode { return e.mode }

// Clear drops the transcript and the in-progress symbol buffer.
func (e *Engine) Clear() {
	e.text.Reset()
	e.buffer = e.buffer[:0]
}

// SetWPM changes the target speed. The clamped speed's dit duration is
// applied to the clock, which resets itself only when the value actually
// changed.
func (e *Engine) SetWPM(wpm int) {
	e.ticker.SetDitDuration(morse.DitDuration(wpm))
}

// SetMode switches the keying discipline. Entering or leaving an iambic
// mode rebuilds the scheduler and flips the clock into or out of its
// wrapping 8-phase cycle; switching between A and B mid-element is not
// preserved.
func (e *Engine) SetMode(mode Mode) {
	if mode == e.mode {
		return
	}
	e.mode = mode
	e.pressed = false
	if mode.Iambic() {
		e.scheduler = NewScheduler(mode)
	} else {
		e.scheduler = nil
	}
	e.ticker.SetWrap(mode.Iambic())
}

// Advance runs one frame: applies the frame's key events, advances the
// clock by delta, and performs any boundary work the new tick triggers.
func (e *Engine) Advance(delta time.Duration, events []Event) Output {
	var out Output
	for _, ev := range events {
		e.handleEvent(ev, &out)
	}

	tick, changed := e.ticker.Advance(delta)
	if changed {
		e.handleTick(tick, &out)
	}

	out.Buffer = string(e.buffer)
	out.Ticks = e.ticker.Ticks()
	return out
}

func (e *Engine) handleEvent(ev Event, out *Output) {
	switch {
	case ev.Key == KeyStraight && !e.mode.Iambic():
		if ev.Pressed {
			if e.pressed {
				return // key repeat while held
			}
			e.pressed = true
			e.ticker.Reset()
			out.Tone = append(out.Tone, ToneStart)
			return
		}
		if !e.pressed {
			return
		}
		e.pressed = false
		out.Tone = append(out.Tone, ToneStop)
		// Classify the finished press by how many ticks it spanned.
		if e.ticker.Ticks() <= 2 {
			e.buffer = append(e.buffer, byte(Dot))
		} else {
			e.buffer = append(e.buffer, byte(Dash))
		}
		e.ticker.Reset()

	case (ev.Key == KeyDot || ev.Key == KeyDash) && e.mode.Iambic():
		sym := Dot
		if ev.Key == KeyDash {
			sym = Dash
		}
		if ev.Pressed {
			if !e.scheduler.Active() {
				e.ticker.Reset()
			}
			e.scheduler.Press(sym, e.ticker.Ticks())
		} else {
			e.scheduler.Release(sym)
		}
	}
}

func (e *Engine) handleTick(tick int, out *Output) {
	// Boundary decisions are suspended while a press is being measured or
	// the keyer is still producing elements, judged as of the tick report.
	// An element completing on this very tick does not count as idle yet:
	// its character keeps the full continuation window before resolving.
	if !e.pressed && !(e.mode.Iambic() && e.scheduler.Active()) {
		switch {
		case tick == 3:
			e.resolveBuffer(out)
		case tick == 7:
			text := e.text.String()
			if text != "" && !strings.HasSuffix(text, " ") {
				e.commit(" ", out)
			}
		}
	}

	if e.mode.Iambic() {
		sym, tone := e.scheduler.HandleTick(tick)
		if sym != 0 {
			e.buffer = append(e.buffer, byte(sym))
		}
		if tone != ToneNone {
			out.Tone = append(out.Tone, tone)
		}
	}
}

// resolveBuffer matches the symbol buffer against the character table and,
// in addition, the prosign table. The buffer is cleared whether or not
// anything matched; an unreadable sequence is dropped without feedback,
// the operator simply sees nothing appear.
func (e *Engine) resolveBuffer(out *Output) {
	pattern := string(e.buffer)
	e.buffer = e.buffer[:0]
	if pattern == "" {
		return
	}
	if c, ok := morse.DecodeChar(pattern); ok {
		e.commit(string(c), out)
	}
	if text, ok := morse.DecodeProsign(pattern); ok {
		e.commit(text, out)
	}
}

func (e *Engine) commit(s string, out *Output) {
	e.text.WriteString(s)
	out.Committed += s
}
