package ui

import (
	"fmt"

	"github.com/atomicstack/confusion-tui/internal/api"
	"github.com/atomicstack/confusion-tui/internal/logging/events"
	uistate "github.com/atomicstack/confusion-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleDishKey(msg tea.KeyMsg) tea.Cmd {
	if m.dish == nil {
		return nil
	}
	switch msg.String() {
	case "esc":
		return m.back()
	case "ctrl+p", "pgup":
		if m.dish.state.Prev != "" {
			return m.navigate(uistate.DishRoute(m.dish.state.Prev))
		}
		return nil
	case "ctrl+n", "pgdown":
		if m.dish.state.Next != "" {
			return m.navigate(uistate.DishRoute(m.dish.state.Next))
		}
		return nil
	}
	cmd, submit := m.dish.form.Update(msg)
	if submit {
		return batch(cmd, m.submitComment())
	}
	return cmd
}

// beginDishFetch issues the fetch for id. Earlier fetches become stale.
func (m *Model) beginDishFetch(id string) tea.Cmd {
	seq := m.dish.state.BeginFetch(id)
	return m.fetchDishCmd(m.mount, seq, id)
}

// submitComment appends the form's comment to the dish and, when
// persisting, sends the dish upstream. The form is reset whatever happens.
func (m *Model) submitComment() tea.Cmd {
	v := m.dish
	if !v.form.Valid() {
		m.setInfo(incompleteNotice(v.form, "Complete the comment form before submitting."))
		return nil
	}
	comment := commentFromValues(v.form.Values())
	dish, err := v.state.PrepareComment(comment, m.now())
	v.form.Reset(commentDefaults())
	events.Comment.Reset()
	if err != nil {
		v.state.ErrMess = err.Error()
		return nil
	}
	last := dish.Comments[len(dish.Comments)-1]
	events.Comment.Submit(dish.ID, last.Author, last.Rating, last.Date)
	if !v.state.Persist {
		return nil
	}
	return m.putDishCmd(m.mount, v.state.Seq(), *dish)
}

func (m *Model) handleDishIDsLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(dishIDsLoadedMsg)
	if !ok {
		return nil
	}
	if !m.mounted(loaded.mount, "dish-ids") || m.dish == nil {
		return nil
	}
	m.dish.state.SetDishIDs(loaded.ids, loaded.err)
	if loaded.err == nil {
		events.Dish.IDsLoaded(len(loaded.ids))
	}
	return nil
}

func (m *Model) handleDishLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(dishLoadedMsg)
	if !ok {
		return nil
	}
	if !m.mounted(loaded.mount, "dish") || m.dish == nil {
		return nil
	}
	st := m.dish.state
	if !st.ApplyDish(loaded.seq, loaded.dish, loaded.err) {
		events.Dish.Stale(loaded.id, loaded.seq, st.Seq())
		return nil
	}
	if loaded.err != nil {
		events.Dish.FetchFailed(loaded.id, loaded.err)
		if api.IsNotFound(loaded.err) {
			m.setInfo(fmt.Sprintf("Dish %s is not on the menu.", loaded.id))
		}
		return nil
	}
	events.Dish.Loaded(loaded.id, loaded.seq, st.Prev, st.Next)
	return nil
}

func (m *Model) handleDishSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(dishSavedMsg)
	if !ok {
		return nil
	}
	if !m.mounted(saved.mount, "dish-save") || m.dish == nil {
		return nil
	}
	st := m.dish.state
	if !st.ApplySaved(saved.seq, saved.dish, saved.err) {
		events.Dish.Stale(st.RoutedID(), saved.seq, st.Seq())
		return nil
	}
	if saved.err != nil {
		events.Dish.SaveFailed(st.RoutedID(), saved.err)
		return nil
	}
	m.setInfo("Comment saved.")
	return nil
}
