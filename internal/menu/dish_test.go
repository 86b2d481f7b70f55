package menu

import (
	"testing"
	"time"
)

func TestNeighborsWrapAround(t *testing.T) {
	ids := []string{"101", "102", "103"}
	cases := []struct {
		id         string
		prev, next string
	}{
		{"101", "103", "102"},
		{"102", "101", "103"},
		{"103", "102", "101"},
	}
	for _, tc := range cases {
		prev, next, ok := Neighbors(ids, tc.id)
		if !ok {
			t.Fatalf("expected neighbours for %s", tc.id)
		}
		if prev != tc.prev || next != tc.next {
			t.Fatalf("id %s: expected %s/%s, got %s/%s", tc.id, tc.prev, tc.next, prev, next)
		}
	}
}

func TestNeighborsMatchesModuloFormula(t *testing.T) {
	for n := 1; n <= 6; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		for i, id := range ids {
			prev, next, ok := Neighbors(ids, id)
			if !ok {
				t.Fatalf("n=%d i=%d: expected ok", n, i)
			}
			if want := ids[(n+i-1)%n]; prev != want {
				t.Fatalf("n=%d i=%d: prev %s, want %s", n, i, prev, want)
			}
			if want := ids[(n+i+1)%n]; next != want {
				t.Fatalf("n=%d i=%d: next %s, want %s", n, i, next, want)
			}
		}
	}
}

func TestNeighborsSingleDishPointsAtItself(t *testing.T) {
	prev, next, ok := Neighbors([]string{"only"}, "only")
	if !ok || prev != "only" || next != "only" {
		t.Fatalf("expected self neighbours, got %q/%q ok=%v", prev, next, ok)
	}
}

func TestNeighborsMissingIDHasNoNeighbours(t *testing.T) {
	prev, next, ok := Neighbors([]string{"101", "102", "103"}, "999")
	if ok || prev != "" || next != "" {
		t.Fatalf("expected no neighbours, got %q/%q ok=%v", prev, next, ok)
	}
	prev, next, ok = Neighbors(nil, "101")
	if ok || prev != "" || next != "" {
		t.Fatalf("expected no neighbours for empty list, got %q/%q ok=%v", prev, next, ok)
	}
}

func TestStampCommentUsesISOUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	now := time.Date(2024, 3, 9, 13, 4, 5, 678_000_000, loc)
	c := StampComment(Comment{Author: "al", Rating: 4, Comment: "ok"}, now)
	if c.Date != "2024-03-09T12:04:05.678Z" {
		t.Fatalf("unexpected date %q", c.Date)
	}
	parsed, err := time.Parse(time.RFC3339, c.Date)
	if err != nil {
		t.Fatalf("date is not RFC 3339: %v", err)
	}
	if !parsed.Equal(now) {
		t.Fatalf("expected %v, got %v", now, parsed)
	}
}

func TestCloneDoesNotShareComments(t *testing.T) {
	d := Dish{ID: "1", Comments: []Comment{{Author: "a"}}}
	dup := d.Clone()
	dup.AppendComment(Comment{Author: "b"})
	dup.Comments[0].Author = "z"
	if len(d.Comments) != 1 || d.Comments[0].Author != "a" {
		t.Fatalf("original mutated: %#v", d.Comments)
	}
}

func TestAverageRating(t *testing.T) {
	d := Dish{Comments: []Comment{{Rating: 5}, {Rating: 4}, {Rating: 3}}}
	if got := d.AverageRating(); got != 4 {
		t.Fatalf("expected 4, got %v", got)
	}
	if got := (Dish{}).AverageRating(); got != 0 {
		t.Fatalf("expected 0 for no comments, got %v", got)
	}
}

func TestParseContactType(t *testing.T) {
	for _, in := range []string{"Tel", "By Phone"} {
		ct, err := ParseContactType(in)
		if err != nil || ct != ContactTel {
			t.Fatalf("%q: expected Tel, got %v err=%v", in, ct, err)
		}
	}
	if _, err := ParseContactType("Carrier pigeon"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
