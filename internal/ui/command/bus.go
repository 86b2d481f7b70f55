package command

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/confusion-tui/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultTimeout = 10 * time.Second

// Request encapsulates one backend call.
type Request struct {
	ID    string
	Label string
	Run   func(ctx context.Context) tea.Msg
}

// Bus runs backend calls as Bubble Tea commands. Every call gets its own
// deadline derived from the bus context; Close cancels calls still in flight.
type Bus struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// New initialises a command bus whose calls time out after timeout.
func New(timeout time.Duration) *Bus {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{ctx: ctx, cancel: cancel, timeout: timeout}
}

// Timeout returns the per-call deadline.
func (b *Bus) Timeout() time.Duration {
	return b.timeout
}

// Close cancels every call still running.
func (b *Bus) Close() {
	b.cancel()
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		ctx, cancel := context.WithTimeout(b.ctx, b.timeout)
		defer cancel()
		msg := req.Run(ctx)
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
