package state

import (
	"errors"
	"testing"

	"github.com/atomicstack/confusion-tui/internal/menu"
)

func testDishes() []menu.Dish {
	return []menu.Dish{
		{ID: "0", Name: "Uthappizza", Category: "mains", Label: "Hot"},
		{ID: "1", Name: "Zucchipakoda", Category: "appetizer"},
		{ID: "2", Name: "Vadonut", Category: "appetizer", Label: "New"},
		{ID: "3", Name: "ElaiCheese Cake", Category: "dessert"},
	}
}

func loadedList() *List {
	l := NewList()
	l.SetDishes(testDishes(), nil)
	return l
}

func TestListFilterAndRestoreCursor(t *testing.T) {
	l := loadedList()
	l.Cursor = 3
	l.SetFilter("vad", 3)
	if len(l.Items) != 1 || l.Items[0].ID != "2" {
		t.Fatalf("expected only Vadonut, got %#v", l.Items)
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor on match, got %d", l.Cursor)
	}
	l.ClearFilter()
	if len(l.Items) != 4 || l.Cursor != 3 {
		t.Fatalf("expected full list with cursor restored, got %d items cursor %d", len(l.Items), l.Cursor)
	}
}

func TestListFilterEditing(t *testing.T) {
	l := loadedList()
	l.InsertFilterText("zu")
	if l.Filter != "zu" || l.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", l.Filter, l.FilterCursor)
	}
	if d, ok := l.Selected(); !ok || d.ID != "1" {
		t.Fatalf("expected Zucchipakoda selected, got %#v", d)
	}
	l.DeleteFilterRuneBackward()
	if l.Filter != "z" {
		t.Fatalf("expected rune removed, got %q", l.Filter)
	}
	l.InsertFilterText(" cake")
	l.DeleteFilterWordBackward()
	if l.Filter != "z " {
		t.Fatalf("expected word removed, got %q", l.Filter)
	}
	l.DeleteFilterRuneBackward()
	l.DeleteFilterRuneBackward()
	if l.Filter != "" {
		t.Fatalf("expected filter emptied, got %q", l.Filter)
	}
	if l.DeleteFilterRuneBackward() {
		t.Fatalf("expected nothing to delete")
	}
}

func TestListCursorMovement(t *testing.T) {
	l := loadedList()
	if l.MoveCursor(-1) {
		t.Fatalf("expected no movement above first row")
	}
	if !l.MoveCursorEnd() || l.Cursor != 3 {
		t.Fatalf("expected cursor at end, got %d", l.Cursor)
	}
	l.MoveCursorPage(-1, 2)
	if l.Cursor != 1 {
		t.Fatalf("expected page up to row 1, got %d", l.Cursor)
	}
	l.MoveCursorHome()
	if l.Cursor != 0 {
		t.Fatalf("expected home, got %d", l.Cursor)
	}
}

func TestListEnsureCursorVisible(t *testing.T) {
	l := loadedList()
	l.Cursor = 3
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 2 {
		t.Fatalf("expected offset 2, got %d", l.ViewportOffset)
	}
	l.Cursor = 0
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset 0, got %d", l.ViewportOffset)
	}
}

func TestListSetDishesKeepsSelection(t *testing.T) {
	l := loadedList()
	l.Cursor = 2
	reordered := testDishes()
	reordered[0], reordered[2] = reordered[2], reordered[0]
	l.SetDishes(reordered, nil)
	if d, _ := l.Selected(); d.ID != "2" {
		t.Fatalf("expected selection to follow dish 2, got %s", d.ID)
	}
	l.SetDishes(nil, errors.New("offline"))
	if l.ErrMess != "offline" || len(l.Items) != 4 {
		t.Fatalf("expected error recorded and dishes kept")
	}
}

func TestBestMatchIndexPrefersExactName(t *testing.T) {
	dishes := testDishes()
	if idx := BestMatchIndex(dishes, "vadonut"); idx != 2 {
		t.Fatalf("expected exact match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(dishes, "elai"); idx != 3 {
		t.Fatalf("expected prefix match index 3, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for empty list, got %d", idx)
	}
}
