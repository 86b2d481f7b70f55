package state

import "testing"

func TestParseRoute(t *testing.T) {
	cases := map[string]Route{
		"":                MenuRoute(),
		"menu":            MenuRoute(),
		"/contact":        ContactRoute(),
		"dishdetail/3":    DishRoute("3"),
		"/dishdetail/101": DishRoute("101"),
	}
	for input, want := range cases {
		got, err := ParseRoute(input)
		if err != nil {
			t.Fatalf("ParseRoute(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseRoute(%q) = %#v, want %#v", input, got, want)
		}
	}
	for _, bad := range []string{"about", "dishdetail/", "dishdetail/1/2"} {
		if _, err := ParseRoute(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRouteStringRoundTrip(t *testing.T) {
	for _, r := range []Route{MenuRoute(), ContactRoute(), DishRoute("0")} {
		got, err := ParseRoute(r.String())
		if err != nil || got != r {
			t.Fatalf("round trip of %v gave %#v, %v", r, got, err)
		}
	}
}

func TestHistoryBackStopsAtRoot(t *testing.T) {
	h := NewHistory(MenuRoute())
	if !h.Navigate(DishRoute("1")) {
		t.Fatalf("expected navigation to push")
	}
	if h.Navigate(DishRoute("1")) {
		t.Fatalf("expected navigation to the current route to be ignored")
	}
	h.Navigate(DishRoute("2"))
	if h.Depth() != 3 {
		t.Fatalf("expected depth 3, got %d", h.Depth())
	}
	if r, ok := h.Back(); !ok || r != DishRoute("1") {
		t.Fatalf("expected back to dish 1, got %v %v", r, ok)
	}
	if r, ok := h.Back(); !ok || r != MenuRoute() {
		t.Fatalf("expected back to menu, got %v %v", r, ok)
	}
	if _, ok := h.Back(); ok {
		t.Fatalf("expected back at root to report false")
	}
	if h.Current() != MenuRoute() {
		t.Fatalf("expected root to remain current")
	}
}
