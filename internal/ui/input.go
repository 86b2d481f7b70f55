package ui

import (
	"unicode"

	"github.com/atomicstack/confusion-tui/internal/logging/events"
	uistate "github.com/atomicstack/confusion-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	if m.list == nil {
		if msg.String() == "esc" {
			return m.back()
		}
		return nil
	}
	if m.handleFilterInput(msg) {
		return nil
	}
	switch msg.String() {
	case "esc":
		if m.list.ClearFilter() {
			events.Filter.Cleared()
			m.syncViewport()
			return nil
		}
		return m.back()
	case "enter":
		if dish, ok := m.list.Selected(); ok {
			return m.navigate(uistate.DishRoute(dish.ID))
		}
	case "ctrl+r":
		m.list.ErrMess = ""
		return m.fetchDishesCmd(m.mount)
	case "up":
		m.moveCursorWrapped(-1)
	case "down":
		m.moveCursorWrapped(1)
	case "pgup":
		m.moveCursor(func() bool { return m.list.MoveCursorPage(-1, m.maxVisibleItems()) })
	case "pgdown":
		m.moveCursor(func() bool { return m.list.MoveCursorPage(1, m.maxVisibleItems()) })
	case "home":
		m.moveCursor(m.list.MoveCursorHome)
	case "end":
		m.moveCursor(m.list.MoveCursorEnd)
	}
	return nil
}

// handleFilterInput applies type-to-filter editing keys to the dish list.
func (m *Model) handleFilterInput(msg tea.KeyMsg) bool {
	l := m.list
	changed := false
	switch msg.String() {
	case "ctrl+u":
		changed = l.ClearFilter()
	case "ctrl+w":
		changed = l.DeleteFilterWordBackward()
	}
	if !changed {
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyCtrlH:
			changed = l.DeleteFilterRuneBackward()
		case tea.KeySpace:
			changed = l.Filter != "" && l.InsertFilterText(" ")
		case tea.KeyRunes:
			if msg.Alt || len(msg.Runes) == 0 {
				return false
			}
			for _, r := range msg.Runes {
				if unicode.IsControl(r) {
					return false
				}
			}
			changed = l.InsertFilterText(string(msg.Runes))
		}
	}
	if !changed {
		return false
	}
	if l.Filter == "" {
		events.Filter.Cleared()
	} else {
		events.Filter.Set(l.Filter, len(l.Items))
	}
	m.errMsg = ""
	m.syncViewport()
	return true
}

func (m *Model) moveCursorWrapped(delta int) {
	n := len(m.list.Items)
	if n == 0 {
		return
	}
	m.list.Cursor = ((m.list.Cursor+delta)%n + n) % n
	events.UI.MenuCursor(m.list.Cursor)
	m.syncViewport()
}

func (m *Model) moveCursor(move func() bool) {
	if move() {
		events.UI.MenuCursor(m.list.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	if m.list != nil {
		m.list.EnsureCursorVisible(m.maxVisibleItems())
	}
}

func (m *Model) handleDishesLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(dishesLoadedMsg)
	if !ok {
		return nil
	}
	if !m.mounted(loaded.mount, "dishes") || m.list == nil {
		return nil
	}
	m.list.SetDishes(loaded.dishes, loaded.err)
	if loaded.err == nil && len(m.list.Full) == 0 {
		m.setInfo("The menu is empty.")
	}
	m.syncViewport()
	return nil
}
