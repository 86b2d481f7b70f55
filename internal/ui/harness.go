package ui

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
// Timers scheduled by the model run on a fake clock advanced with Advance;
// spinner animation and cursor blinking are suppressed.
type Harness struct {
	model   *Model
	clock   time.Time
	elapsed time.Duration
	pending []pendingTimer
	quit    bool
}

type pendingTimer struct {
	at  time.Duration
	msg tea.Msg
}

// timerMsg is what a scheduled timer resolves to under the harness.
type timerMsg struct {
	delay time.Duration
	msg   tea.Msg
}

// NewHarness creates a harness for the provided model. It must be called
// before Init so mounted forms pick up the static cursor.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model, clock: time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)}
	if model != nil {
		model.cursorMode = cursor.CursorStatic
		model.now = h.Now
		model.after = func(d time.Duration, msg tea.Msg) tea.Cmd {
			return func() tea.Msg { return timerMsg{delay: d, msg: msg} }
		}
	}
	return h
}

// Init runs the model's start-up commands.
func (h *Harness) Init() {
	if h.model == nil {
		return
	}
	h.processCmd(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Keys sends each rune of text as a separate key press.
func (h *Harness) Keys(text string) {
	for _, r := range text {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Press sends a single special key.
func (h *Harness) Press(t tea.KeyType) {
	h.Send(tea.KeyMsg{Type: t})
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil, spinner.TickMsg, cursor.BlinkMsg:
		case tea.QuitMsg:
			h.quit = true
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case timerMsg:
			h.pending = append(h.pending, pendingTimer{at: h.elapsed + msg.delay, msg: msg.msg})
		default:
			mdl, follow := h.model.Update(msg)
			if updated, ok := mdl.(*Model); ok {
				h.model = updated
			}
			queue = append(queue, follow)
		}
	}
}

// Advance moves the fake clock forward by d and delivers every timer that
// falls due, earliest first.
func (h *Harness) Advance(d time.Duration) {
	target := h.elapsed + d
	for {
		sort.SliceStable(h.pending, func(i, j int) bool { return h.pending[i].at < h.pending[j].at })
		if len(h.pending) == 0 || h.pending[0].at > target {
			break
		}
		due := h.pending[0]
		h.pending = h.pending[1:]
		h.elapsed = due.at
		h.Send(due.msg)
	}
	h.elapsed = target
}

// Pending reports how many timers have not fired yet.
func (h *Harness) Pending() int {
	return len(h.pending)
}

// Now returns the fake wall clock.
func (h *Harness) Now() time.Time {
	return h.clock.Add(h.elapsed)
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
