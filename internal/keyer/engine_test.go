package keyer

import (
	"strings"
	"testing"
	"time"
)

const testDit = 120 * time.Millisecond // wpm 10

func press(k Key) Event   { return Event{Key: k, Pressed: true} }
func release(k Key) Event { return Event{Key: k, Pressed: false} }

// key holds the straight key for the given number of dits.
func key(e *Engine, dits int) {
	e.Advance(0, []Event{press(KeyStraight)})
	e.Advance(time.Duration(dits)*testDit, nil)
	e.Advance(0, []Event{release(KeyStraight)})
}

func TestEngine_StraightKeyDotDash(t *testing.T) {
	e := NewEngine(10)

	key(e, 1)
	if out := e.Advance(0, nil); out.Buffer != "." {
		t.Errorf("buffer after 1-tick press = %q, want %q", out.Buffer, ".")
	}

	key(e, 3)
	if out := e.Advance(0, nil); out.Buffer != ".-" {
		t.Errorf("buffer after 3-tick press = %q, want %q", out.Buffer, ".-")
	}
}

func TestEngine_StraightKeyBoundaryTick(t *testing.T) {
	e := NewEngine(10)

	// 2 ticks is still a dot, 3 is a dash.
	key(e, 2)
	key(e, 3)
	if out := e.Advance(0, nil); out.Buffer != ".-" {
		t.Errorf("buffer = %q, want %q", out.Buffer, ".-")
	}
}

func TestEngine_DecodesCharacterAtTickThree(t *testing.T) {
	e := NewEngine(10)

	key(e, 1)
	key(e, 1)
	out := e.Advance(3*testDit, nil)
	if out.Committed != "I" {
		t.Errorf("committed = %q, want %q", out.Committed, "I")
	}
	if out.Buffer != "" {
		t.Errorf("buffer not cleared after resolution: %q", out.Buffer)
	}
	if e.Text() != "I" {
		t.Errorf("transcript = %q, want %q", e.Text(), "I")
	}
}

func TestEngine_AppendBeforeBoundaryExtendsCharacter(t *testing.T) {
	e := NewEngine(10)

	// Two dots, then a dash before any tick-3 resolution: ..- = U.
	key(e, 1)
	key(e, 1)
	key(e, 3)
	out := e.Advance(3*testDit, nil)
	if out.Committed != "U" {
		t.Errorf("committed = %q, want %q", out.Committed, "U")
	}
}

func TestEngine_UnmatchedBufferDroppedSilently(t *testing.T) {
	e := NewEngine(10)

	// 7 dots is not a character; 8 would be the error prosign.
	for i := 0; i < 7; i++ {
		key(e, 1)
	}
	out := e.Advance(3*testDit, nil)
	if out.Committed != "" {
		t.Errorf("committed = %q, want nothing", out.Committed)
	}
	if out.Buffer != "" {
		t.Error("invalid buffer survived the character boundary")
	}
}

func TestEngine_CommitsProsign(t *testing.T) {
	e := NewEngine(10)

	// ...-.- = <SK>
	for _, dits := range []int{1, 1, 1, 3, 1, 3} {
		key(e, dits)
	}
	out := e.Advance(3*testDit, nil)
	if out.Committed != "<SK> (End of Contact)" {
		t.Errorf("committed = %q, want the SK prosign", out.Committed)
	}
}

// A pattern shared between the sign table and a prosign commits both
// renderings, characters first.
func TestEngine_SignAndProsignOverlap(t *testing.T) {
	e := NewEngine(10)

	// -.--. = ')' and <KN>
	for _, dits := range []int{3, 1, 3, 3, 1} {
		key(e, dits)
	}
	out := e.Advance(3*testDit, nil)
	if !strings.HasPrefix(out.Committed, ")") || !strings.Contains(out.Committed, "<KN>") {
		t.Errorf("committed = %q, want ')' followed by <KN>", out.Committed)
	}
}

func TestEngine_WordBoundaryAppendsOneSpace(t *testing.T) {
	e := NewEngine(10)

	key(e, 1)
	key(e, 1)
	e.Advance(3*testDit, nil) // I

	out := e.Advance(4*testDit, nil) // idle through tick 7
	if out.Committed != " " {
		t.Errorf("committed at word boundary = %q, want a space", out.Committed)
	}
	if e.Text() != "I " {
		t.Errorf("transcript = %q, want %q", e.Text(), "I ")
	}

	// More idle time never stacks spaces.
	out = e.Advance(time.Minute, nil)
	if out.Committed != "" {
		t.Errorf("saturated idle committed %q", out.Committed)
	}
}

func TestEngine_NoSpaceOnEmptyTranscript(t *testing.T) {
	e := NewEngine(10)

	e.Advance(10*testDit, nil)
	if e.Text() != "" {
		t.Errorf("transcript = %q, want empty", e.Text())
	}
}

func TestEngine_ToneCommands(t *testing.T) {
	e := NewEngine(10)

	out := e.Advance(0, []Event{press(KeyStraight)})
	if len(out.Tone) != 1 || out.Tone[0] != ToneStart {
		t.Errorf("tone on press = %v, want [ToneStart]", out.Tone)
	}
	e.Advance(testDit, nil)
	out = e.Advance(0, []Event{release(KeyStraight)})
	if len(out.Tone) != 1 || out.Tone[0] != ToneStop {
		t.Errorf("tone on release = %v, want [ToneStop]", out.Tone)
	}
}

func TestEngine_KeyRepeatIgnoredWhileHeld(t *testing.T) {
	e := NewEngine(10)

	e.Advance(0, []Event{press(KeyStraight)})
	e.Advance(2*testDit, nil)
	out := e.Advance(0, []Event{press(KeyStraight)}) // terminal key repeat
	if len(out.Tone) != 0 {
		t.Errorf("repeat press produced tone commands: %v", out.Tone)
	}
	e.Advance(0, []Event{release(KeyStraight)})
	if out := e.Advance(0, nil); out.Buffer != "." {
		t.Errorf("buffer = %q, want the original press measured as a dot", out.Buffer)
	}
}

func TestEngine_Clear(t *testing.T) {
	e := NewEngine(10)

	key(e, 1)
	e.Advance(3*testDit, nil) // E
	key(e, 1)
	e.Clear()
	if e.Text() != "" {
		t.Errorf("transcript after Clear = %q", e.Text())
	}
	if out := e.Advance(0, nil); out.Buffer != "" {
		t.Errorf("buffer after Clear = %q", out.Buffer)
	}
}

func TestEngine_SetWPMResetsMeasurement(t *testing.T) {
	e := NewEngine(10)

	e.Advance(0, []Event{press(KeyStraight)})
	e.Advance(2*testDit, nil)
	e.SetWPM(20)
	if e.Advance(0, nil).Ticks != 0 {
		t.Error("speed change did not reset the in-flight measurement")
	}

	// Setting the same speed leaves the clock alone.
	e2 := NewEngine(10)
	e2.Advance(2*testDit, nil)
	e2.SetWPM(10)
	if e2.Advance(0, nil).Ticks != 2 {
		t.Error("no-op speed change reset the clock")
	}
}

func TestEngine_IambicTapProducesSingleDot(t *testing.T) {
	e := NewEngine(10)
	e.SetMode(IambicB)

	e.Advance(0, []Event{press(KeyDot)})
	out := e.Advance(testDit, []Event{release(KeyDot)})
	if out.Buffer != "." {
		t.Errorf("buffer after paddle tap = %q, want %q", out.Buffer, ".")
	}

	// Two more dits reach the character boundary with the keyer idle.
	var committed string
	for i := 0; i < 2; i++ {
		committed += e.Advance(testDit, nil).Committed
	}
	if committed != "E" {
		t.Errorf("committed = %q, want %q", committed, "E")
	}

	// The wrapping clock revisits tick 7 every cycle; the transcript must
	// still gain exactly one space.
	for i := 0; i < 24; i++ {
		e.Advance(testDit, nil)
	}
	if e.Text() != "E " {
		t.Errorf("transcript = %q, want %q", e.Text(), "E ")
	}
}

func TestEngine_IambicSqueezeAlternates(t *testing.T) {
	e := NewEngine(10)
	e.SetMode(IambicB)

	e.Advance(0, []Event{press(KeyDot), press(KeyDash)})
	var buffer string
	for i := 0; i < 24; i++ {
		buffer = e.Advance(testDit, nil).Buffer
	}
	if len(buffer) < 4 {
		t.Fatalf("squeeze produced %q, want at least 4 elements", buffer)
	}
	for i := 0; i < len(buffer); i++ {
		want := byte('.')
		if i%2 == 1 {
			want = '-'
		}
		if buffer[i] != want {
			t.Fatalf("squeeze buffer = %q, alternation broken at %d", buffer, i)
		}
	}
}

// An element whose completion lands exactly on tick 3 must not close the
// character on that same tick; the full inter-character gap still applies.
func TestEngine_IambicDashThenDotDecodesN(t *testing.T) {
	e := NewEngine(10)
	e.SetMode(IambicB)

	e.Advance(0, []Event{press(KeyDash)})
	e.Advance(0, []Event{release(KeyDash)})
	out := e.Advance(3*testDit, nil) // dash completes on the wrapped tick 3
	if out.Committed != "" {
		t.Fatalf("committed %q while the dash was still finishing, want nothing", out.Committed)
	}
	if out.Buffer != "-" {
		t.Fatalf("buffer = %q, want %q", out.Buffer, "-")
	}

	e.Advance(testDit, nil) // one-dit element gap
	e.Advance(0, []Event{press(KeyDot)})
	e.Advance(0, []Event{release(KeyDot)})
	e.Advance(testDit, nil) // dot completes
	out = e.Advance(2*testDit, nil)
	if out.Committed != "N" {
		t.Errorf("committed = %q, want %q", out.Committed, "N")
	}
	if e.Text() != "N" {
		t.Errorf("transcript = %q, want %q", e.Text(), "N")
	}
}

func TestEngine_ModeSwitchRebuildsScheduler(t *testing.T) {
	e := NewEngine(10)
	e.SetMode(IambicB)
	e.Advance(0, []Event{press(KeyDot)})
	e.Advance(testDit, nil)

	e.SetMode(Straight)
	if e.Mode() != Straight {
		t.Fatalf("mode = %v, want Straight", e.Mode())
	}
	// Paddle events are inert outside iambic mode.
	out := e.Advance(testDit, []Event{press(KeyDot)})
	if len(out.Tone) != 0 {
		t.Errorf("paddle press in straight mode produced tones: %v", out.Tone)
	}

	e.SetMode(IambicA)
	out = e.Advance(4*testDit, nil)
	if out.Committed == "" && e.Text() == "" {
		// Leftover buffer from the abandoned squeeze may or may not
		// resolve; what matters is the fresh scheduler starts idle.
		t.Log("no leftover commit, scheduler recreated clean")
	}
}
