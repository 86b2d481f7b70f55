package form

import (
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

func commentForm() *Form {
	fields := []Field{
		{Name: "author", Label: "Your Name", Kind: KindText},
		{Name: "rating", Label: "Rating", Kind: KindRating, Min: 1, Max: 5},
		{Name: "comment", Label: "Your Comment", Kind: KindTextArea},
	}
	rules := Rules{
		"author":  {Required("Author name is required."), MinLength(2, "Author name must be at least 2 characters."), MaxLength(30, "Author name must be <= to 30 characters.")},
		"comment": {Required("Comment is required."), MinLength(1, "Comment must be at least 1 characters.")},
	}
	return New(fields, rules, Values{"author": "", "rating": "5", "comment": ""})
}

func TestFormTypingMarksDirtyAndRecomputes(t *testing.T) {
	f := commentForm()
	f.Focus()
	if f.Error("author") != "" {
		t.Fatalf("expected pristine form without messages")
	}
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("A")})
	if !f.Dirty("author") {
		t.Fatalf("expected author dirty after typing")
	}
	if got := f.Error("author"); got != "Author name must be at least 2 characters. " {
		t.Fatalf("unexpected author message %q", got)
	}
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if got := f.Error("author"); got != "" {
		t.Fatalf("expected message cleared, got %q", got)
	}
	if f.Value("author") != "Al" {
		t.Fatalf("expected typed value, got %q", f.Value("author"))
	}
}

func TestFormResetRestoresDefaults(t *testing.T) {
	f := commentForm()
	f.Set("author", "Jane")
	f.Set("rating", "2")
	f.Set("comment", "so-so")
	f.Set("author", "")
	if f.Error("author") == "" {
		t.Fatalf("expected required message before reset")
	}
	for i := 0; i < 2; i++ {
		f.Reset(Values{"author": "", "rating": "5", "comment": ""})
		got := f.Values()
		if got["author"] != "" || got["rating"] != "5" || got["comment"] != "" {
			t.Fatalf("reset %d: unexpected values %#v", i, got)
		}
		if f.Dirty("author") || f.Error("author") != "" {
			t.Fatalf("reset %d: expected pristine state", i)
		}
	}
}

func TestFormFocusCyclesAndEnterSubmits(t *testing.T) {
	f := commentForm()
	f.Focus()
	if f.FocusedName() != "author" {
		t.Fatalf("expected author focused, got %s", f.FocusedName())
	}
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.FocusedName() != "rating" {
		t.Fatalf("expected rating focused, got %s", f.FocusedName())
	}
	f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if f.Value("rating") != "4" {
		t.Fatalf("expected rating 4, got %s", f.Value("rating"))
	}
	if _, submit := f.Update(tea.KeyMsg{Type: tea.KeyEnter}); !submit {
		t.Fatalf("expected enter on rating to submit")
	}
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.FocusedName() != "comment" {
		t.Fatalf("expected comment focused, got %s", f.FocusedName())
	}
	if _, submit := f.Update(tea.KeyMsg{Type: tea.KeyEnter}); submit {
		t.Fatalf("expected enter inside textarea to insert a newline")
	}
	if _, submit := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); !submit {
		t.Fatalf("expected ctrl+s to submit")
	}
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.FocusedName() != "comment" {
		t.Fatalf("expected focus to wrap backwards to comment, got %s", f.FocusedName())
	}
}

func TestRatingIsBounded(t *testing.T) {
	f := commentForm()
	f.Set("rating", "9")
	if f.Value("rating") != "5" {
		t.Fatalf("expected rating clamped to 5, got %s", f.Value("rating"))
	}
	f.Set("rating", "0")
	if f.Value("rating") != "1" {
		t.Fatalf("expected rating clamped to 1, got %s", f.Value("rating"))
	}
}

func TestChoiceAndToggle(t *testing.T) {
	f := New([]Field{
		{Name: "agree", Kind: KindToggle},
		{Name: "contacttype", Kind: KindChoice, Options: []Option{{Value: "None"}, {Value: "Tel", Label: "By Phone"}, {Value: "Email", Label: "By Email"}}},
	}, nil, Values{"agree": "false", "contacttype": "None"})
	f.Focus()
	f.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if !f.Values().Bool("agree") {
		t.Fatalf("expected agree toggled on")
	}
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if f.Value("contacttype") != "Email" {
		t.Fatalf("expected choice to wrap to Email, got %s", f.Value("contacttype"))
	}
}

func TestSetCursorModeAppliesToTextControls(t *testing.T) {
	f := commentForm()
	f.SetCursorMode(cursor.CursorStatic)
	for _, c := range f.controls {
		switch {
		case c.hasInput:
			if c.input.Cursor.Mode() != cursor.CursorStatic {
				t.Fatalf("expected static cursor on %s", c.field.Name)
			}
		case c.hasArea:
			if c.area.Cursor.Mode() != cursor.CursorStatic {
				t.Fatalf("expected static cursor on %s", c.field.Name)
			}
		}
	}
}
