package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/confusion-tui/internal/api"
	"github.com/atomicstack/confusion-tui/internal/logging/events"
	"github.com/atomicstack/confusion-tui/internal/ui"
	uistate "github.com/atomicstack/confusion-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	BaseURL         string
	View            string
	Timeout         time.Duration
	PersistComments bool
	Width           int
	Height          int
	ShowFooter      bool
	CursorBlink     bool
}

// Options turns the configuration into UI model options.
func (c Config) Options(client api.Client) (ui.Options, error) {
	route, err := uistate.ParseRoute(c.View)
	if err != nil {
		return ui.Options{}, fmt.Errorf("initial view: %w", err)
	}
	return ui.Options{
		Client:          client,
		Width:           c.Width,
		Height:          c.Height,
		ShowFooter:      c.ShowFooter,
		PersistComments: c.PersistComments,
		InitialRoute:    route,
		RequestTimeout:  c.Timeout,
		StaticCursor:    !c.CursorBlink,
	}, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) (err error) {
	defer func() { events.App.Exit(err) }()
	client := api.NewClient(cfg.BaseURL, cfg.Timeout)
	defer client.Close()
	opts, err := cfg.Options(client)
	if err != nil {
		return err
	}
	model := ui.NewModel(opts)
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
