package ui

import (
	"context"

	"github.com/atomicstack/confusion-tui/internal/logging"
	"github.com/atomicstack/confusion-tui/internal/logging/events"
	"github.com/atomicstack/confusion-tui/internal/menu"
	"github.com/atomicstack/confusion-tui/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// Every message produced on behalf of a view carries the mount id of the
// view instance that asked for it.

type dishesLoadedMsg struct {
	mount  int
	dishes []menu.Dish
	err    error
}

type dishIDsLoadedMsg struct {
	mount int
	ids   []string
	err   error
}

type dishLoadedMsg struct {
	mount int
	seq   int
	id    string
	dish  *menu.Dish
	err   error
}

type dishSavedMsg struct {
	mount int
	seq   int
	dish  *menu.Dish
	err   error
}

type feedbackSubmittedMsg struct {
	mount    int
	seq      int
	feedback *menu.Feedback
	err      error
}

type spinnerClearMsg struct {
	mount int
	seq   int
}

type submitClearMsg struct {
	mount int
	seq   int
}

func (m *Model) fetchDishesCmd(mount int) tea.Cmd {
	client := m.client
	return m.bus.Execute(command.Request{ID: "dishes:list", Run: func(ctx context.Context) tea.Msg {
		dishes, err := client.GetDishes(ctx)
		if err != nil {
			logging.Error(err)
		}
		return dishesLoadedMsg{mount: mount, dishes: dishes, err: err}
	}})
}

func (m *Model) fetchDishIDsCmd(mount int) tea.Cmd {
	client := m.client
	events.Dish.FetchIDs()
	return m.bus.Execute(command.Request{ID: "dishes:ids", Run: func(ctx context.Context) tea.Msg {
		ids, err := client.GetDishIDs(ctx)
		if err != nil {
			logging.Error(err)
		}
		return dishIDsLoadedMsg{mount: mount, ids: ids, err: err}
	}})
}

func (m *Model) fetchDishCmd(mount, seq int, id string) tea.Cmd {
	client := m.client
	events.Dish.Fetch(id, seq)
	return m.bus.Execute(command.Request{ID: "dish:get", Label: id, Run: func(ctx context.Context) tea.Msg {
		dish, err := client.GetDish(ctx, id)
		if err != nil {
			logging.Error(err)
		}
		return dishLoadedMsg{mount: mount, seq: seq, id: id, dish: dish, err: err}
	}})
}

func (m *Model) putDishCmd(mount, seq int, dish menu.Dish) tea.Cmd {
	client := m.client
	events.Dish.Save(dish.ID, len(dish.Comments))
	return m.bus.Execute(command.Request{ID: "dish:put", Label: dish.ID, Run: func(ctx context.Context) tea.Msg {
		saved, err := client.PutDish(ctx, dish)
		if err != nil {
			logging.Error(err)
		}
		return dishSavedMsg{mount: mount, seq: seq, dish: saved, err: err}
	}})
}

func (m *Model) submitFeedbackCmd(mount, seq int, fb menu.Feedback) tea.Cmd {
	client := m.client
	return m.bus.Execute(command.Request{ID: "feedback:post", Label: fb.FullName(), Run: func(ctx context.Context) tea.Msg {
		saved, err := client.SubmitFeedback(ctx, fb)
		if err != nil {
			logging.Error(err)
		}
		return feedbackSubmittedMsg{mount: mount, seq: seq, feedback: saved, err: err}
	}})
}
