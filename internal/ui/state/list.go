package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/confusion-tui/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// List holds the menu view's dishes with cursor, filter, and viewport.
type List struct {
	Full           []menu.Dish
	Items          []menu.Dish
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
	Loaded         bool
	ErrMess        string
}

// NewList returns an empty list waiting for dishes.
func NewList() *List {
	return &List{LastCursor: -1}
}

// SetDishes replaces the dish set, keeping the filter and the cursor
// on the same dish when it is still present.
func (l *List) SetDishes(dishes []menu.Dish, err error) {
	if err != nil {
		l.ErrMess = err.Error()
		return
	}
	selected := ""
	if d, ok := l.Selected(); ok {
		selected = d.ID
	}
	l.Full = cloneDishes(dishes)
	l.Loaded = true
	l.ErrMess = ""
	l.applyFilter()
	if idx := l.IndexOf(selected); idx >= 0 {
		l.Cursor = idx
	}
}

// Selected returns the dish under the cursor.
func (l *List) Selected() (menu.Dish, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Dish{}, false
	}
	return l.Items[l.Cursor], true
}

// IndexOf returns the index of the dish id among the visible items.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, d := range l.Items {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// MoveCursor moves by delta, clamped to the visible items.
func (l *List) MoveCursor(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	return l.Cursor != old
}

// MoveCursorHome moves the cursor to the first dish.
func (l *List) MoveCursorHome() bool {
	return l.MoveCursor(-len(l.Items))
}

// MoveCursorEnd moves the cursor to the last dish.
func (l *List) MoveCursorEnd() bool {
	return l.MoveCursor(len(l.Items))
}

// MoveCursorPage moves a page of maxVisible rows up (pages < 0) or down.
func (l *List) MoveCursorPage(pages, maxVisible int) bool {
	size := maxVisible
	if size <= 0 || size > len(l.Items) {
		size = len(l.Items)
	}
	return l.MoveCursor(pages * size)
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *List) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if upper := l.ViewportOffset + maxVisible - 1; l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
	}
}

// SetFilter updates the filter query and its cursor. The list cursor jumps
// to the best match and returns to its previous row once the filter is
// cleared.
func (l *List) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter)
	restore := -1
	l.Filter = query
	if cursor < 0 {
		cursor = 0
	}
	if n := len([]rune(query)); cursor > n {
		cursor = n
	}
	l.FilterCursor = cursor
	if trimmed != "" && prevTrimmed == "" {
		l.LastCursor = l.Cursor
	} else if trimmed == "" && prevTrimmed != "" {
		restore = l.LastCursor
	}
	l.applyFilter()
	if trimmed != "" {
		l.Cursor = BestMatchIndex(l.Items, trimmed)
		if l.Cursor < 0 {
			l.Cursor = 0
		}
		return
	}
	if prevTrimmed != "" {
		if restore >= 0 && restore < len(l.Items) {
			l.Cursor = restore
		}
		l.LastCursor = -1
	}
}

// ClearFilter drops the filter entirely.
func (l *List) ClearFilter() bool {
	if l.Filter == "" {
		return false
	}
	l.SetFilter("", 0)
	return true
}

// InsertFilterText inserts text at the filter cursor.
func (l *List) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.filterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	l.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes the rune before the filter cursor.
func (l *List) DeleteFilterRuneBackward() bool {
	runes := []rune(l.Filter)
	pos := l.filterCursorPos()
	if pos == 0 {
		return false
	}
	updated := append(runes[:pos-1:pos-1], runes[pos:]...)
	l.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the filter cursor.
func (l *List) DeleteFilterWordBackward() bool {
	runes := []rune(l.Filter)
	pos := l.filterCursorPos()
	if pos == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i:i], runes[pos:]...)
	l.SetFilter(string(updated), i)
	return true
}

func (l *List) filterCursorPos() int {
	n := len([]rune(l.Filter))
	switch {
	case l.FilterCursor < 0:
		return 0
	case l.FilterCursor > n:
		return n
	}
	return l.FilterCursor
}

func (l *List) applyFilter() {
	l.Items = FilterDishes(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

func searchText(d menu.Dish) string {
	return strings.TrimSpace(d.Name + " " + d.Category + " " + d.Label)
}

// FilterDishes returns the dishes whose name, category, or label fuzzily
// match query, in their original order.
func FilterDishes(dishes []menu.Dish, query string) []menu.Dish {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return cloneDishes(dishes)
	}
	targets := make([]string, len(dishes))
	for i, d := range dishes {
		targets[i] = searchText(d)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, targets)
	matches := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		matches[rank.OriginalIndex] = struct{}{}
	}
	filtered := make([]menu.Dish, 0, len(matches))
	for i, d := range dishes {
		if _, ok := matches[i]; ok {
			filtered = append(filtered, d)
		}
	}
	return cloneDishes(filtered)
}

// BestMatchIndex picks the dish that best matches query: an exact name,
// then a name prefix, then the closest fuzzy match.
func BestMatchIndex(dishes []menu.Dish, query string) int {
	if len(dishes) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, d := range dishes {
		if strings.EqualFold(d.Name, trimmed) || strings.EqualFold(d.ID, trimmed) {
			return i
		}
	}
	for i, d := range dishes {
		if strings.HasPrefix(strings.ToLower(d.Name), lower) {
			return i
		}
	}
	targets := make([]string, len(dishes))
	for i, d := range dishes {
		targets[i] = searchText(d)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, targets)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}

func cloneDishes(dishes []menu.Dish) []menu.Dish {
	if len(dishes) == 0 {
		return nil
	}
	out := make([]menu.Dish, len(dishes))
	for i, d := range dishes {
		out[i] = d.Clone()
	}
	return out
}
