// internal/keyer/iambic.go
package keyer

// Symbol is a single Morse element.
type Symbol byte

const (
	Dot  Symbol = '.'
	Dash Symbol = '-'
)

// Mode selects the keying discipline.
type Mode int

const (
	// Straight keys elements by press duration alone.
	Straight Mode = iota
	// IambicA stops when the paddles are released, finishing only the
	// element in progress.
	IambicA
	// IambicB honors a queued opposite element one more time after both
	// paddles are released.
	IambicB
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case IambicA:
		return "Iambic A"
	case IambicB:
		return "Iambic B"
	default:
		return "Straight"
	}
}

// Iambic reports whether the mode uses the dual-paddle scheduler.
func (m Mode) Iambic() bool { return m == IambicA || m == IambicB }

// ToneAction tells the caller what to do with the sidetone this tick.
type ToneAction int

const (
	ToneNone ToneAction = iota
	ToneStart
	ToneStop
)

// Scheduler resolves overlapping dual-paddle input into an ordered element
// stream over an 8-phase tick cycle. A dot occupies its start phase plus
// one tick, a dash its start phase plus three; each claims one further tick
// of inter-element gap, so a dot spans 2 phases total and a dash 4.
type Scheduler struct {
	mode Mode
	dot  paddle
	dash paddle
}

// paddle holds one side's schedule. released means the key is up but an
// already-scheduled element must still complete.
type paddle struct {
	armed    bool
	next     int // start phase, valid only when armed
	released bool
}

// Phase spans including the trailing inter-element gap.
const (
	dotSpan  = 2
	dashSpan = 4
)

// NewScheduler returns an idle scheduler for the given iambic mode.
func NewScheduler(mode Mode) *Scheduler {
	return &Scheduler{mode: mode}
}

// Press arms a paddle. Repeated press events while the paddle already has a
// slot are ignored (key repeat debounce). If the other paddle is pending,
// the new element is queued to start right after the other one completes;
// otherwise it starts at the current tick.
func (s *Scheduler) Press(sym Symbol, tick int) {
	p, other := s.pair(sym)
	p.released = false
	if p.armed {
		return
	}
	p.armed = true
	if other.armed {
		p.next = (other.next + s.span(opposite(sym))) % 8
	} else {
		p.next = tick
	}
}

// Release marks a paddle up. It never cancels an element already scheduled;
// it only prevents re-arming once the current element completes.
func (s *Scheduler) Release(sym Symbol) {
	p, _ := s.pair(sym)
	p.released = true
}

// HandleTick checks whether tick is an element completion phase. On a
// completion it returns the finished Symbol and ToneStop, and either
// re-arms the paddle (after the opposite element when both are held, which
// produces the alternating squeeze sequence) or clears it when released.
// On a non-boundary tick with work pending it returns ToneStart to keep the
// element's audible window open.
func (s *Scheduler) HandleTick(tick int) (Symbol, ToneAction) {
	if s.dot.armed && (s.dot.next+1)%8 == tick {
		s.complete(Dot, tick)
		return Dot, ToneStop
	}
	if s.dash.armed && (s.dash.next+3)%8 == tick {
		s.complete(Dash, tick)
		return Dash, ToneStop
	}
	if s.Active() {
		return 0, ToneStart
	}
	return 0, ToneNone
}

func (s *Scheduler) complete(sym Symbol, tick int) {
	p, other := s.pair(sym)
	if p.released {
		p.armed = false
		// Mode A drops a queued opposite element once its paddle is also
		// up; mode B lets it sound one more time.
		if s.mode == IambicA && other.armed && other.released {
			other.armed = false
		}
		return
	}
	if other.armed {
		p.next = (tick + s.span(opposite(sym))) % 8
	} else {
		p.next = (tick + 1) % 8
	}
}

// Active reports whether either paddle has a pending element. The engine
// uses it to suppress boundary decoding while the keyer is producing.
func (s *Scheduler) Active() bool {
	return s.dot.armed || s.dash.armed
}

func (s *Scheduler) pair(sym Symbol) (p, other *paddle) {
	if sym == Dot {
		return &s.dot, &s.dash
	}
	return &s.dash, &s.dot
}

func (s *Scheduler) span(sym Symbol) int {
	if sym == Dot {
		return dotSpan
	}
	return dashSpan
}

func opposite(sym Symbol) Symbol {
	if sym == Dot {
		return Dash
	}
	return Dot
}
