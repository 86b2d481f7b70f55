package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/atomicstack/confusion-tui/internal/api"
	"github.com/atomicstack/confusion-tui/internal/form"
	"github.com/atomicstack/confusion-tui/internal/theme"
	"github.com/atomicstack/confusion-tui/internal/ui/command"
	uistate "github.com/atomicstack/confusion-tui/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	menuHeaderSeparator = "→"
	brandTitle          = "Ristorante con Fusion"

	defaultSpinnerDelay = time.Second
	defaultSubmitDelay  = 5 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Client          api.Client
	Width           int
	Height          int
	ShowFooter      bool
	PersistComments bool
	InitialRoute    uistate.Route
	RequestTimeout  time.Duration
	StaticCursor    bool
}

type dishView struct {
	state *uistate.DishDetail
	form  *form.Form
}

type contactView struct {
	state *uistate.Contact
	form  *form.Form
}

// Model implements the Bubble Tea model for the restaurant client.
type Model struct {
	client  api.Client
	bus     *command.Bus
	history *uistate.History

	// mount identifies the view instance currently on screen. Messages
	// carrying another mount id belong to a torn down view.
	mount  int
	mounts int

	list    *uistate.List
	dish    *dishView
	contact *contactView
	spinner spinner.Model

	cursorMode  cursor.Mode
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	persist     bool
	errMsg      string
	infoMsg     string
	infoExpire  time.Time

	handlers map[reflect.Type]msgHandler

	now          func() time.Time
	after        func(time.Duration, tea.Msg) tea.Cmd
	spinnerDelay time.Duration
	submitDelay  time.Duration
}

// NewModel initialises the UI on the initial route. The view is mounted by
// Init so that its fetches run as commands.
func NewModel(opts Options) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if styles.Spinner != nil {
		sp.Style = *styles.Spinner
	}
	m := &Model{
		client:       opts.Client,
		bus:          command.New(opts.RequestTimeout),
		history:      uistate.NewHistory(opts.InitialRoute),
		spinner:      sp,
		cursorMode:   cursor.CursorBlink,
		showFooter:   opts.ShowFooter,
		persist:      opts.PersistComments,
		now:          time.Now,
		after:        tickAfter,
		spinnerDelay: defaultSpinnerDelay,
		submitDelay:  defaultSubmitDelay,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if opts.StaticCursor {
		m.cursorMode = cursor.CursorStatic
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.mountCurrent(), m.spinner.Tick)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	if cmd := m.forwardToForm(msg); cmd != nil {
		return m, cmd
	}
	return m, nil
}

// Route returns the route on screen.
func (m *Model) Route() uistate.Route {
	return m.history.Current()
}

// Close cancels backend calls still in flight.
func (m *Model) Close() {
	m.bus.Close()
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):      m.handleSpinnerTickMsg,
		reflect.TypeOf(dishesLoadedMsg{}):      m.handleDishesLoadedMsg,
		reflect.TypeOf(dishIDsLoadedMsg{}):     m.handleDishIDsLoadedMsg,
		reflect.TypeOf(dishLoadedMsg{}):        m.handleDishLoadedMsg,
		reflect.TypeOf(dishSavedMsg{}):         m.handleDishSavedMsg,
		reflect.TypeOf(feedbackSubmittedMsg{}): m.handleFeedbackSubmittedMsg,
		reflect.TypeOf(spinnerClearMsg{}):      m.handleSpinnerClearMsg,
		reflect.TypeOf(submitClearMsg{}):       m.handleSubmitClearMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// forwardToForm passes widget internals such as cursor blinks to the
// active form.
func (m *Model) forwardToForm(msg tea.Msg) tea.Cmd {
	if f := m.activeForm(); f != nil {
		cmd, _ := f.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) activeForm() *form.Form {
	switch m.Route().Kind {
	case uistate.RouteDishDetail:
		if m.dish != nil {
			return m.dish.form
		}
	case uistate.RouteContact:
		if m.contact != nil {
			return m.contact.form
		}
	}
	return nil
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

func tickAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func batch(cmds ...tea.Cmd) tea.Cmd {
	filtered := cmds[:0]
	for _, cmd := range cmds {
		if cmd != nil {
			filtered = append(filtered, cmd)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	}
	return tea.Batch(filtered...)
}

func (m *Model) headerSegments() []string {
	routes := m.history.Routes()
	segments := make([]string, 0, len(routes))
	for _, r := range routes {
		title := r.Title()
		if r.Kind == uistate.RouteDishDetail && m.dish != nil && m.dish.state.Dish != nil && r == m.Route() {
			title = m.dish.state.Dish.Name
		}
		if n := len(segments); n > 0 && segments[n-1] == title {
			continue
		}
		segments = append(segments, strings.TrimSpace(title))
	}
	return segments
}
