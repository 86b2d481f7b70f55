package state

import (
	"fmt"
	"strings"
)

// RouteKind identifies a top-level view.
type RouteKind int

const (
	RouteMenu RouteKind = iota
	RouteDishDetail
	RouteContact
)

const dishDetailPrefix = "dishdetail/"

// Route is a view plus its parameter.
type Route struct {
	Kind   RouteKind
	DishID string
}

func MenuRoute() Route    { return Route{Kind: RouteMenu} }
func ContactRoute() Route { return Route{Kind: RouteContact} }

// DishRoute routes to the detail view of id.
func DishRoute(id string) Route {
	return Route{Kind: RouteDishDetail, DishID: id}
}

// ParseRoute accepts "menu", "contact" and "dishdetail/<id>".
func ParseRoute(s string) (Route, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), "/")
	switch {
	case trimmed == "" || trimmed == "menu":
		return MenuRoute(), nil
	case trimmed == "contact":
		return ContactRoute(), nil
	case strings.HasPrefix(trimmed, dishDetailPrefix):
		id := strings.TrimSpace(strings.TrimPrefix(trimmed, dishDetailPrefix))
		if id == "" || strings.Contains(id, "/") {
			return Route{}, fmt.Errorf("invalid dish route %q", s)
		}
		return DishRoute(id), nil
	}
	return Route{}, fmt.Errorf("unknown view %q", s)
}

func (r Route) String() string {
	switch r.Kind {
	case RouteDishDetail:
		return dishDetailPrefix + r.DishID
	case RouteContact:
		return "contact"
	default:
		return "menu"
	}
}

// Title is the header label for the route.
func (r Route) Title() string {
	switch r.Kind {
	case RouteDishDetail:
		return "Dish Details"
	case RouteContact:
		return "Contact Us"
	default:
		return "Menu"
	}
}

// History is a stack of visited routes. The root is never popped.
type History struct {
	stack []Route
}

// NewHistory starts a history at root.
func NewHistory(root Route) *History {
	return &History{stack: []Route{root}}
}

// Current returns the route on top of the stack.
func (h *History) Current() Route {
	return h.stack[len(h.stack)-1]
}

// Navigate pushes r unless it is already current. It reports whether the
// current route changed.
func (h *History) Navigate(r Route) bool {
	if h.Current() == r {
		return false
	}
	h.stack = append(h.stack, r)
	return true
}

// Back pops the current route. ok is false at the root.
func (h *History) Back() (Route, bool) {
	if len(h.stack) <= 1 {
		return h.Current(), false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.Current(), true
}

// Routes returns the stack from root to current.
func (h *History) Routes() []Route {
	return append([]Route(nil), h.stack...)
}

// Depth returns the number of routes on the stack.
func (h *History) Depth() int {
	return len(h.stack)
}
