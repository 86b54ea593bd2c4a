// internal/trainer/send.go
// Package trainer provides the Bubble Tea training screens.
package trainer

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ColonelBlimp/cwtrainer/internal/audio"
	"github.com/ColonelBlimp/cwtrainer/internal/config"
	"github.com/ColonelBlimp/cwtrainer/internal/keyer"
	"github.com/ColonelBlimp/cwtrainer/internal/morse"
	"github.com/ColonelBlimp/cwtrainer/internal/store"
)

// frameInterval paces the training loop. Well under a dit at 40 wpm (30 ms)
// so tick boundaries land on time.
const frameInterval = 16 * time.Millisecond

// frameMsg carries the wall-clock time of one frame.
type frameMsg time.Time

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

var (
	meterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	bufferStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	sheetStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// ParseKeyerMode maps a config keyer mode name to the engine mode. Unknown
// names fall back to straight.
func ParseKeyerMode(name string) keyer.Mode {
	switch name {
	case "iambic-a":
		return keyer.IambicA
	case "iambic-b":
		return keyer.IambicB
	default:
		return keyer.Straight
	}
}

func keyerModeID(m keyer.Mode) string {
	switch m {
	case keyer.IambicA:
		return "iambic-a"
	case keyer.IambicB:
		return "iambic-b"
	default:
		return "straight"
	}
}

// SendModel implements the sending practice screen: the operator keys Morse
// and watches the decode appear live.
type SendModel struct {
	engine  *keyer.Engine
	hold    *holdTracker
	sounder Sounder
	store   *store.Store

	wpm        int
	cheatSheet bool

	width  int
	height int

	startedAt time.Time
	lastFrame time.Time
	pending   []keyer.Event

	ticks  int
	buffer string
	chars  int
}

// NewSend constructs the sending screen from normalized settings.
func NewSend(cfg *config.Settings, sounder Sounder, st *store.Store) *SendModel {
	engine := keyer.NewEngine(cfg.WPM)
	engine.SetMode(ParseKeyerMode(cfg.KeyerMode))
	return &SendModel{
		engine:  engine,
		hold:    newHoldTracker(time.Duration(cfg.HoldMs) * time.Millisecond),
		sounder: sounder,
		store:   st,
		wpm:     morse.ClampWPM(cfg.WPM),
	}
}

// Init implements tea.Model.
func (m *SendModel) Init() tea.Cmd {
	m.startedAt = time.Now()
	return frameCmd()
}

// Update implements tea.Model.
func (m *SendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case frameMsg:
		return m, m.advance(time.Time(msg))
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *SendModel) advance(now time.Time) tea.Cmd {
	var delta time.Duration
	if !m.lastFrame.IsZero() {
		delta = now.Sub(m.lastFrame)
	}
	m.lastFrame = now

	events := append(m.pending, m.hold.Expire(now)...)
	m.pending = nil

	out := m.engine.Advance(delta, events)
	m.applyTone(out.Tone)
	m.ticks = out.Ticks
	m.buffer = out.Buffer
	m.chars += len([]rune(out.Committed))
	return frameCmd()
}

func (m *SendModel) applyTone(actions []keyer.ToneAction) {
	for _, a := range actions {
		switch a {
		case keyer.ToneStart:
			m.sounder.Play()
		case keyer.ToneStop:
			m.sounder.Pause()
		}
	}
}

func (m *SendModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, m.finish()
	case "backspace":
		m.engine.Clear()
		m.buffer = ""
	case "f1":
		m.setWPM(m.wpm - 1)
	case "f2":
		m.setWPM(m.wpm + 1)
	case "f3":
		m.sounder.SetFrequency(m.sounder.Frequency() - 50)
	case "f4":
		m.sounder.SetFrequency(m.sounder.Frequency() + 50)
	case "f5":
		m.sounder.SetVolume(m.sounder.Volume() - 5)
	case "f6":
		m.sounder.SetVolume(m.sounder.Volume() + 5)
	case "m":
		m.cycleMode()
	case "c":
		m.cheatSheet = !m.cheatSheet
	case " ":
		if !m.engine.Mode().Iambic() {
			m.pressKey(keyer.KeyStraight)
		}
	case "[":
		if m.engine.Mode().Iambic() {
			m.pressKey(keyer.KeyDot)
		}
	case "]":
		if m.engine.Mode().Iambic() {
			m.pressKey(keyer.KeyDash)
		}
	}
	return m, nil
}

// pressKey stamps the press with the frame clock so hold expiry lines up
// with the deltas the engine sees.
func (m *SendModel) pressKey(key keyer.Key) {
	now := m.lastFrame
	if now.IsZero() {
		now = time.Now()
	}
	m.pending = append(m.pending, m.hold.Press(key, now)...)
}

func (m *SendModel) setWPM(wpm int) {
	m.wpm = morse.ClampWPM(wpm)
	m.engine.SetWPM(m.wpm)
}

// cycleMode steps Straight, Iambic A, Iambic B. Held keys from the old mode
// are dropped and the tone is stopped so nothing keeps sounding across the
// switch.
func (m *SendModel) cycleMode() {
	m.hold.ReleaseAll()
	m.pending = nil
	m.sounder.Pause()
	switch m.engine.Mode() {
	case keyer.Straight:
		m.engine.SetMode(keyer.IambicA)
	case keyer.IambicA:
		m.engine.SetMode(keyer.IambicB)
	default:
		m.engine.SetMode(keyer.Straight)
	}
}

func (m *SendModel) finish() tea.Cmd {
	m.hold.ReleaseAll()
	m.sounder.Pause()
	m.saveSession()
	return tea.Quit
}

// saveSession is best-effort; a store failure never aborts training.
func (m *SendModel) saveSession() {
	if m.store == nil || m.chars == 0 {
		return
	}
	endedAt := time.Now()
	_, err := m.store.InsertSession(context.Background(), store.Session{
		StartedAt:  m.startedAt,
		EndedAt:    endedAt,
		Mode:       "send",
		KeyerMode:  keyerModeID(m.engine.Mode()),
		WPM:        m.wpm,
		Chars:      m.chars,
		DurationMs: endedAt.Sub(m.startedAt).Milliseconds(),
	})
	if err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

// View implements tea.Model.
func (m *SendModel) View() string {
	meter := make([]byte, 0, keyer.MaxTick)
	for i := 1; i <= keyer.MaxTick; i++ {
		if i <= m.ticks {
			meter = append(meter, '+')
		} else {
			meter = append(meter, '-')
		}
	}

	var b strings.Builder
	b.WriteString(meterStyle.Render(string(meter)))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render(m.engine.Text()))
	b.WriteString(bufferStyle.Render(m.buffer + "|"))
	b.WriteString("\n\n")
	if m.cheatSheet {
		b.WriteString(sheetStyle.Render(cheatSheet()))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.helpLine()))

	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *SendModel) statusLine() string {
	return fmt.Sprintf("%s · %d WPM · %.0f Hz · vol %.0f",
		m.engine.Mode(), m.wpm, m.sounder.Frequency(), m.sounder.Volume())
}

func (m *SendModel) helpLine() string {
	key := "Space send"
	if m.engine.Mode().Iambic() {
		key = "[ dit  ] dash"
	}
	return fmt.Sprintf("%s  F1/F2 wpm  F3/F4 freq  F5/F6 vol  m mode  c codes  bksp clear  esc quit", key)
}

// cheatSheet renders the code table in columns.
func cheatSheet() string {
	codes := morse.Codes()
	const columns = 4
	rows := (len(codes) + columns - 1) / columns

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			i := col*rows + row
			if i >= len(codes) {
				continue
			}
			b.WriteString(fmt.Sprintf("%c %-7s", codes[i].Char, codes[i].Pattern))
		}
		if row < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

// Ensure the audio player keeps satisfying the screen surface.
var _ Sounder = (*audio.Player)(nil)
