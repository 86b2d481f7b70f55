package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/atomicstack/confusion-tui/internal/app"
	"github.com/atomicstack/confusion-tui/internal/config"
	"github.com/atomicstack/confusion-tui/internal/logging"
	"github.com/atomicstack/confusion-tui/internal/logging/events"
	uistate "github.com/atomicstack/confusion-tui/internal/ui/state"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg, stdoutSize))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// terminalSize reports the size of the output terminal, if there is one.
type terminalSize func() (width, height int, ok bool)

func stdoutSize() (int, int, bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, false
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return 0, 0, false
	}
	return width, height, true
}

// startupTracePayload records which API the client talks to and what it
// shows first.
func startupTracePayload(cfg config.Config, size terminalSize) map[string]interface{} {
	payload := map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   cfg.Flags,
		"envFile": cfg.EnvFile,
		"session": describeSession(cfg.App, size),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}

type session struct {
	API             endpoints `json:"api"`
	View            string    `json:"view"`
	DishID          string    `json:"dish_id,omitempty"`
	PersistComments bool      `json:"persist_comments"`
	Timeout         string    `json:"timeout"`
	CursorBlink     bool      `json:"cursor_blink"`
	Viewport        viewport  `json:"viewport"`
}

type endpoints struct {
	Host     string `json:"host"`
	Dishes   string `json:"dishes"`
	Feedback string `json:"feedback"`
	Error    string `json:"error,omitempty"`
}

// viewport is the size the first frame renders at. Source is "config",
// "terminal", "config+terminal", or "resize" when neither is known yet.
type viewport struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source"`
}

func describeSession(cfg app.Config, size terminalSize) session {
	s := session{
		View:            cfg.View,
		PersistComments: cfg.PersistComments,
		Timeout:         cfg.Timeout.String(),
		CursorBlink:     cfg.CursorBlink,
		API: endpoints{
			Dishes:   cfg.BaseURL + "/dishes",
			Feedback: cfg.BaseURL + "/feedback",
		},
		Viewport: viewport{Width: cfg.Width, Height: cfg.Height},
	}
	if u, err := url.Parse(cfg.BaseURL); err == nil {
		s.API.Host = u.Host
	} else {
		s.API.Error = err.Error()
	}
	if route, err := uistate.ParseRoute(cfg.View); err == nil {
		s.View = route.String()
		s.DishID = route.DishID
	}

	configured := cfg.Width > 0 || cfg.Height > 0
	fromTerminal := false
	if cfg.Width <= 0 || cfg.Height <= 0 {
		if width, height, ok := size(); ok {
			if s.Viewport.Width <= 0 {
				s.Viewport.Width = width
			}
			if s.Viewport.Height <= 0 {
				s.Viewport.Height = height
			}
			fromTerminal = true
		}
	}
	switch {
	case configured && fromTerminal:
		s.Viewport.Source = "config+terminal"
	case configured && cfg.Width > 0 && cfg.Height > 0:
		s.Viewport.Source = "config"
	case fromTerminal:
		s.Viewport.Source = "terminal"
	default:
		s.Viewport.Source = "resize"
	}
	return s
}
