// internal/trainer/listen.go
package trainer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ColonelBlimp/cwtrainer/internal/config"
	"github.com/ColonelBlimp/cwtrainer/internal/morse"
	"github.com/ColonelBlimp/cwtrainer/internal/store"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#73C991"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// ListenModel implements the copy practice screen: the trainer plays a code
// group and the operator types what they heard.
type ListenModel struct {
	timing  morse.Timing
	sounder Sounder
	store   *store.Store
	gen     *Generator
	charset []rune

	wpm       int
	groupSize int

	width  int
	height int

	target   string
	segments []morse.Segment
	segIndex int
	segLeft  time.Duration
	playing  bool

	input   textinput.Model
	checked bool

	groupsDone int
	chars      int
	errors     int

	startedAt time.Time
	lastFrame time.Time
}

// NewListen constructs the listening screen from normalized settings.
func NewListen(cfg *config.Settings, sounder Sounder, st *store.Store) *ListenModel {
	input := textinput.New()
	input.Placeholder = "copy"
	input.CharLimit = 32
	input.Focus()

	m := &ListenModel{
		timing:    morse.NewTiming(cfg.WPM, cfg.Farnsworth),
		sounder:   sounder,
		store:     st,
		gen:       NewGenerator(),
		charset:   Charset(cfg.Charset),
		wpm:       morse.ClampWPM(cfg.WPM),
		groupSize: cfg.GroupSize,
		input:     input,
	}
	m.nextGroup()
	return m
}

// Init implements tea.Model.
func (m *ListenModel) Init() tea.Cmd {
	m.startedAt = time.Now()
	return tea.Batch(frameCmd(), textinput.Blink)
}

// Update implements tea.Model.
func (m *ListenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *ListenModel) advance(now time.Time) tea.Cmd {
	var delta time.Duration
	if !m.lastFrame.IsZero() {
		delta = now.Sub(m.lastFrame)
	}
	m.lastFrame = now
	m.step(delta)
	return frameCmd()
}

// step walks the encoded segments, switching the tone at each boundary.
func (m *ListenModel) step(delta time.Duration) {
	if !m.playing {
		return
	}
	m.segLeft -= delta
	for m.segLeft <= 0 {
		m.segIndex++
		if m.segIndex >= len(m.segments) {
			m.playing = false
			m.sounder.Pause()
			return
		}
		seg := m.segments[m.segIndex]
		m.segLeft += seg.Duration
		if seg.Tone {
			m.sounder.Play()
		} else {
			m.sounder.Pause()
		}
	}
}

func (m *ListenModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, m.finish()
	case "ctrl+r":
		m.replay()
		return m, nil
	case "enter":
		if m.checked {
			m.nextGroup()
		} else {
			m.check()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ListenModel) nextGroup() {
	m.target = m.gen.Groups(m.charset, 1, m.groupSize)[0]
	m.segments = morse.Encode(m.target, m.timing)
	m.checked = false
	m.input.SetValue("")
	m.replay()
}

func (m *ListenModel) replay() {
	if len(m.segments) == 0 {
		return
	}
	m.segIndex = 0
	m.segLeft = m.segments[0].Duration
	m.playing = true
	if m.segments[0].Tone {
		m.sounder.Play()
	} else {
		m.sounder.Pause()
	}
}

func (m *ListenModel) check() {
	m.checked = true
	m.groupsDone++
	correct, wrong := scoreCopy(m.target, m.input.Value())
	m.chars += correct + wrong
	m.errors += wrong
}

// scoreCopy compares the typed copy against the played group position by
// position, case-insensitively. Missing and extra characters count as
// wrong.
func scoreCopy(target, typed string) (correct, wrong int) {
	t := []rune(strings.ToUpper(target))
	in := []rune(strings.ToUpper(strings.TrimSpace(typed)))
	for i, r := range t {
		if i < len(in) && in[i] == r {
			correct++
		} else {
			wrong++
		}
	}
	if len(in) > len(t) {
		wrong += len(in) - len(t)
	}
	return correct, wrong
}

func (m *ListenModel) finish() tea.Cmd {
	m.playing = false
	m.sounder.Pause()
	m.saveSession()
	return tea.Quit
}

// saveSession is best-effort; a store failure never aborts training.
func (m *ListenModel) saveSession() {
	if m.store == nil || m.chars == 0 {
		return
	}
	endedAt := time.Now()
	_, err := m.store.InsertSession(context.Background(), store.Session{
		StartedAt:  m.startedAt,
		EndedAt:    endedAt,
		Mode:       "listen",
		WPM:        m.wpm,
		Chars:      m.chars,
		Errors:     m.errors,
		DurationMs: endedAt.Sub(m.startedAt).Milliseconds(),
	})
	if err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

// View implements tea.Model.
func (m *ListenModel) View() string {
	var b strings.Builder
	if m.playing {
		b.WriteString(meterStyle.Render("playing..."))
	} else {
		b.WriteString(statusStyle.Render("ready"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.checked {
		b.WriteString(m.renderResult())
		b.WriteString("\n\n")
	}
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("enter check/next  ctrl+r replay  esc quit"))

	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderResult shows the played group with the copy's misses highlighted.
func (m *ListenModel) renderResult() string {
	t := []rune(m.target)
	in := []rune(strings.ToUpper(strings.TrimSpace(m.input.Value())))
	var b strings.Builder
	b.WriteString(promptStyle.Render("sent: "))
	for i, r := range t {
		if i < len(in) && in[i] == r {
			b.WriteString(correctStyle.Render(string(r)))
		} else {
			b.WriteString(wrongStyle.Render(string(r)))
		}
	}
	return b.String()
}

func (m *ListenModel) statusLine() string {
	acc := 100.0
	if m.chars > 0 {
		acc = float64(m.chars-m.errors) / float64(m.chars) * 100
	}
	return fmt.Sprintf("%d WPM · group %d · %d chars · %.0f%%",
		m.wpm, m.groupsDone, m.chars, acc)
}
