package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/confusion-tui/internal/menu"
	uistate "github.com/atomicstack/confusion-tui/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDishNeighboursWrapAround(t *testing.T) {
	cases := []struct {
		id, prev, next string
	}{
		{"101", "103", "102"},
		{"102", "101", "103"},
		{"103", "102", "101"},
	}
	for _, tc := range cases {
		h := openDish(t, newFakeClient(), tc.id, false)
		st := h.Model().dish.state
		if st.Prev != tc.prev || st.Next != tc.next {
			t.Fatalf("dish %s: expected %s/%s, got %s/%s", tc.id, tc.prev, tc.next, st.Prev, st.Next)
		}
		if st.Visibility != uistate.VisibilityShown {
			t.Fatalf("dish %s: expected shown", tc.id)
		}
	}
}

func TestDishNextAndPrevKeepTheMount(t *testing.T) {
	client := newFakeClient()
	h := openDish(t, client, "101", false)
	mount := h.Model().mount
	h.Press(tea.KeyPgDown)
	if got := h.Model().Route(); got != uistate.DishRoute("102") {
		t.Fatalf("expected route 102, got %s", got)
	}
	st := h.Model().dish.state
	if st.Dish == nil || st.Dish.ID != "102" || st.Prev != "101" || st.Next != "103" {
		t.Fatalf("unexpected state after next: %#v prev=%s next=%s", st.Dish, st.Prev, st.Next)
	}
	if h.Model().mount != mount {
		t.Fatalf("expected dish to dish navigation to keep mount %d, got %d", mount, h.Model().mount)
	}
	h.Send(key(tea.KeyCtrlP))
	if got := h.Model().Route(); got != uistate.DishRoute("101") {
		t.Fatalf("expected route 101, got %s", got)
	}
	h.Press(tea.KeyEsc)
	if got := h.Model().Route(); got != uistate.DishRoute("102") {
		t.Fatalf("expected back to 102, got %s", got)
	}
	if h.Model().dish.state.Dish.ID != "102" {
		t.Fatalf("expected 102 refetched on back")
	}
	if got := strings.Join(client.gets, ","); got != "101,102,101,102" {
		t.Fatalf("unexpected fetch order %s", got)
	}
}

func TestDishOnlyLatestFetchApplies(t *testing.T) {
	h := openDish(t, newFakeClient(), "101", false)
	h.Press(tea.KeyPgDown)
	m := h.Model()
	stale := menu.Dish{ID: "101", Name: "Uthappizza"}
	h.Send(dishLoadedMsg{mount: m.mount, seq: 1, id: "101", dish: &stale})
	if got := m.dish.state.Dish.ID; got != "102" {
		t.Fatalf("expected stale result ignored, showing %s", got)
	}
	h.Send(dishLoadedMsg{mount: m.mount, seq: m.dish.state.Seq(), id: "102", err: errors.New("late")})
	if m.dish.state.Dish != nil || m.dish.state.ErrMess != "late" {
		t.Fatalf("expected latest failure applied")
	}
}

func TestDishMissingShowsError(t *testing.T) {
	h := newTestHarness(t, newFakeClient(), Options{InitialRoute: uistate.DishRoute("999")})
	st := h.Model().dish.state
	if st.Dish != nil || st.DishCopy != nil {
		t.Fatalf("expected no dish")
	}
	if st.ErrMess != "404 - Not Found" {
		t.Fatalf("unexpected error %q", st.ErrMess)
	}
	if st.Prev != "" || st.Next != "" {
		t.Fatalf("expected no neighbours, got %s/%s", st.Prev, st.Next)
	}
	if st.Visibility != uistate.VisibilityHidden {
		t.Fatalf("expected hidden after failure")
	}
	if !strings.Contains(h.View(), "404 - Not Found") {
		t.Fatalf("expected error in view:\n%s", h.View())
	}
	if got := h.Model().currentInfo(); got != "Dish 999 is not on the menu." {
		t.Fatalf("expected not-found notice, got %q", got)
	}
}

func TestDishIDsFailureStaysVisibleAfterDishLoads(t *testing.T) {
	client := newFakeClient()
	client.idsErr = errors.New("503 - Service Unavailable")
	h := openDish(t, client, "102", false)
	st := h.Model().dish.state
	if st.ErrMess != "" {
		t.Fatalf("expected dish load to clear the fetch error, got %q", st.ErrMess)
	}
	if st.HasNeighbors() {
		t.Fatalf("expected no neighbours without ids")
	}
	if !strings.Contains(h.View(), "Prev/next unavailable: 503 - Service Unavailable") {
		t.Fatalf("expected ids failure in view:\n%s", h.View())
	}
	h.Press(tea.KeyPgDown)
	if got := h.Model().Route(); got != uistate.DishRoute("102") {
		t.Fatalf("expected next ignored without neighbours, got %s", got)
	}
}

func fillComment(h *Harness, author, text string) {
	h.Keys(author)
	h.Press(tea.KeyTab)
	h.Press(tea.KeyLeft)
	h.Press(tea.KeyTab)
	h.Keys(text)
}

func TestCommentSubmitPersistsAndResets(t *testing.T) {
	client := newFakeClient()
	h := openDish(t, client, "102", true)
	fillComment(h, "Jane", "Tasty")
	if !strings.Contains(h.View(), "(preview)") {
		t.Fatalf("expected live preview:\n%s", h.View())
	}
	h.Press(tea.KeyCtrlS)

	if len(client.puts) != 1 {
		t.Fatalf("expected one PUT, got %d", len(client.puts))
	}
	put := client.puts[0]
	if len(put.Comments) != 1 {
		t.Fatalf("expected one comment in PUT body, got %d", len(put.Comments))
	}
	want := menu.Comment{Rating: 4, Comment: "Tasty", Author: "Jane", Date: "2024-03-09T12:00:00.000Z"}
	if put.Comments[0] != want {
		t.Fatalf("unexpected comment %#v", put.Comments[0])
	}
	st := h.Model().dish.state
	if st.Dish == nil || len(st.Dish.Comments) != 1 {
		t.Fatalf("expected saved dish applied")
	}
	values := h.Model().dish.form.Values()
	if values["author"] != "" || values["rating"] != "5" || values["comment"] != "" {
		t.Fatalf("expected form reset, got %#v", values)
	}
	if h.Model().currentInfo() != "Comment saved." {
		t.Fatalf("expected saved notice, got %q", h.Model().currentInfo())
	}
}

func TestCommentSubmitWithoutPersistenceStaysLocal(t *testing.T) {
	client := newFakeClient()
	h := openDish(t, client, "101", false)
	fillComment(h, "Al", "Fine")
	h.Press(tea.KeyCtrlS)
	if len(client.puts) != 0 {
		t.Fatalf("expected no PUT, got %d", len(client.puts))
	}
	st := h.Model().dish.state
	if len(st.Dish.Comments) != 2 || len(st.DishCopy.Comments) != 2 {
		t.Fatalf("expected comment appended locally, got %d/%d", len(st.Dish.Comments), len(st.DishCopy.Comments))
	}
	if got := st.Dish.Comments[1].Author; got != "Al" {
		t.Fatalf("expected Al last, got %s", got)
	}
}

func TestCommentSubmitRejectedWhenInvalid(t *testing.T) {
	client := newFakeClient()
	h := openDish(t, client, "102", true)
	h.Keys("J")
	if got := h.Model().dish.form.Error("author"); got != "Author name must be at least 2 characters. " {
		t.Fatalf("unexpected author message %q", got)
	}
	h.Press(tea.KeyCtrlS)
	if len(client.puts) != 0 {
		t.Fatalf("expected no PUT for an invalid form")
	}
	if h.Model().dish.form.Value("author") != "J" {
		t.Fatalf("expected form kept when rejected")
	}
	if !strings.Contains(h.View(), "Author name must be at least 2 characters.") {
		t.Fatalf("expected field error in view:\n%s", h.View())
	}
	if got := h.Model().currentInfo(); got != "Complete the comment form before submitting. Check Name." {
		t.Fatalf("unexpected notice %q", got)
	}
}

func TestCommentSaveFailureClearsDish(t *testing.T) {
	client := newFakeClient()
	client.putErr = errors.New("500 - Internal Server Error")
	h := openDish(t, client, "102", true)
	fillComment(h, "Jane", "Tasty")
	h.Press(tea.KeyCtrlS)
	st := h.Model().dish.state
	if st.Dish != nil || st.DishCopy != nil {
		t.Fatalf("expected dish cleared after failed save")
	}
	if st.ErrMess != "500 - Internal Server Error" {
		t.Fatalf("unexpected error %q", st.ErrMess)
	}
	if h.Model().dish.form.Value("author") != "" {
		t.Fatalf("expected form reset even on failure")
	}
}
