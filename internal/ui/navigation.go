package ui

import (
	"github.com/atomicstack/confusion-tui/internal/logging/events"
	uistate "github.com/atomicstack/confusion-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func viewName(kind uistate.RouteKind) string {
	switch kind {
	case uistate.RouteDishDetail:
		return "dishdetail"
	case uistate.RouteContact:
		return "contact"
	default:
		return "menu"
	}
}

// mountCurrent discards the previous view instance and mounts a fresh one
// for the current route.
func (m *Model) mountCurrent() tea.Cmd {
	m.unmount()
	m.mounts++
	m.mount = m.mounts
	m.errMsg = ""
	m.forceClearInfo()
	route := m.Route()
	events.UI.Mount(viewName(route.Kind), m.mount)
	switch route.Kind {
	case uistate.RouteDishDetail:
		m.dish = &dishView{
			state: uistate.NewDishDetail(m.mount, m.persist),
			form:  newCommentForm(),
		}
		m.dish.form.SetWidth(m.formWidth())
		return batch(
			m.fetchDishIDsCmd(m.mount),
			m.beginDishFetch(route.DishID),
			m.dish.form.SetCursorMode(m.cursorMode),
			m.dish.form.Focus(),
		)
	case uistate.RouteContact:
		m.contact = &contactView{
			state: uistate.NewContact(m.mount),
			form:  newFeedbackForm(),
		}
		m.contact.form.SetWidth(m.formWidth())
		return batch(m.contact.form.SetCursorMode(m.cursorMode), m.contact.form.Focus())
	default:
		m.list = uistate.NewList()
		return m.fetchDishesCmd(m.mount)
	}
}

func (m *Model) unmount() {
	if m.mount == 0 {
		return
	}
	switch {
	case m.list != nil:
		events.UI.Unmount("menu", m.mount)
	case m.dish != nil:
		events.UI.Unmount("dishdetail", m.mount)
	case m.contact != nil:
		events.UI.Unmount("contact", m.mount)
	}
	m.list = nil
	m.dish = nil
	m.contact = nil
}

// mounted reports whether mount still identifies the view on screen.
func (m *Model) mounted(mount int, kind string) bool {
	if mount == m.mount && mount != 0 {
		return true
	}
	events.UI.Stale(kind, mount)
	return false
}

func (m *Model) navigate(to uistate.Route) tea.Cmd {
	from := m.Route()
	if !m.history.Navigate(to) {
		return nil
	}
	events.Route.Navigate(from.String(), to.String())
	return m.enterRoute(from)
}

// back pops the history. At the root it quits.
func (m *Model) back() tea.Cmd {
	from := m.Route()
	to, ok := m.history.Back()
	if !ok {
		return m.quit()
	}
	events.Route.Back(from.String(), to.String())
	return m.enterRoute(from)
}

// enterRoute activates the current route after leaving from. Moving between
// dishes keeps the mounted detail view and only changes its route
// parameter.
func (m *Model) enterRoute(from uistate.Route) tea.Cmd {
	to := m.Route()
	if from.Kind == uistate.RouteDishDetail && to.Kind == uistate.RouteDishDetail && m.dish != nil {
		m.errMsg = ""
		return m.beginDishFetch(to.DishID)
	}
	return m.mountCurrent()
}

func (m *Model) quit() tea.Cmd {
	m.unmount()
	m.mount = 0
	m.bus.Close()
	return tea.Quit
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return m.quit()
	case "alt+m", "f1":
		return m.navigate(uistate.MenuRoute())
	case "alt+c", "f2":
		return m.navigate(uistate.ContactRoute())
	}
	switch m.Route().Kind {
	case uistate.RouteDishDetail:
		return m.handleDishKey(keyMsg)
	case uistate.RouteContact:
		return m.handleContactKey(keyMsg)
	default:
		return m.handleMenuKey(keyMsg)
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if f := m.activeForm(); f != nil {
		f.SetWidth(m.formWidth())
	}
	m.syncViewport()
	return nil
}
