package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/confusion-tui/internal/format/table"
	"github.com/atomicstack/confusion-tui/internal/menu"
	"github.com/atomicstack/confusion-tui/internal/theme"
	uistate "github.com/atomicstack/confusion-tui/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	menuFooter    = "↑/↓ move  enter open  type to filter  esc back  f2 contact  ctrl+c quit"
	dishFooter    = "tab next field  ←/→ rating  ctrl+s submit  pgup/pgdn prev/next dish  esc back  f1 menu"
	contactFooter = "tab next field  space toggle  ←/→ choose  ctrl+s send  esc back  f1 menu"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 32)
	lines = append(lines, styledLine{text: brandTitle, style: styles.Brand})
	if header := m.menuHeader(); header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	lines = append(lines, styledLine{})
	switch m.Route().Kind {
	case uistate.RouteDishDetail:
		lines = append(lines, m.dishLines()...)
	case uistate.RouteContact:
		lines = append(lines, m.contactLines()...)
	default:
		lines = append(lines, m.menuLines()...)
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.footerText(), style: styles.Footer})
	}
	bottom := m.bottomBar()
	lines = limitHeight(lines, m.height-len(bottom), m.width)
	lines = applyWidth(lines, m.width)
	lines = append(lines, applyWidth(bottom, m.width)...)
	return renderLines(lines)
}

func (m *Model) footerText() string {
	switch m.Route().Kind {
	case uistate.RouteDishDetail:
		return dishFooter
	case uistate.RouteContact:
		return contactFooter
	default:
		return menuFooter
	}
}

func (m *Model) menuHeader() string {
	return strings.Join(m.headerSegments(), menuHeaderSeparator)
}

// bottomBar holds the status line and, on the menu, the filter prompt.
func (m *Model) bottomBar() []styledLine {
	var status styledLine
	if m.errMsg != "" {
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	if m.Route().Kind != uistate.RouteMenu || m.list == nil {
		if status.text == "" {
			return nil
		}
		return []styledLine{status}
	}
	return []styledLine{status, {text: m.filterPrompt(), raw: true}}
}

func (m *Model) menuLines() []styledLine {
	l := m.list
	if l == nil {
		return nil
	}
	if l.ErrMess != "" {
		return []styledLine{{text: l.ErrMess, style: styles.Error}}
	}
	if !l.Loaded {
		return []styledLine{{text: m.spinner.View() + " Loading . . . Please Wait", raw: true}}
	}
	if len(l.Items) == 0 {
		msg := "(no dishes)"
		if l.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", l.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	rows := make([][]string, 0, len(l.Items)+1)
	rows = append(rows, []string{"Dish", "Category", "", "Price", "Reviews", "Rating"})
	for _, d := range l.Items {
		rows = append(rows, dishRow(d))
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight, table.AlignLeft})
	lines := make([]styledLine, 0, len(formatted))
	lines = append(lines, styledLine{text: "  " + formatted[0], style: styles.ColumnHeader})

	start, end := 0, len(l.Items)
	if maxItems := m.maxVisibleItems(); maxItems > 0 && end > maxItems {
		start = l.ViewportOffset
		if start+maxItems > end {
			start = end - maxItems
		}
		end = start + maxItems
	}
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.buildItemLine(formatted[idx+1], idx == l.Cursor))
	}
	return lines
}

func dishRow(d menu.Dish) []string {
	rating := "-"
	if len(d.Comments) > 0 {
		rating = fmt.Sprintf("%.1f", d.AverageRating())
	}
	price := d.Price
	if price != "" {
		price = "$" + strings.TrimPrefix(price, "$")
	}
	return []string{d.Name, d.Category, d.Label, price, strconv.Itoa(len(d.Comments)), rating}
}

func (m *Model) buildItemLine(label string, selected bool) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := "▌ " + label
	if m.width > 0 {
		if pad := m.width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) filterPrompt() string {
	prompt := theme.Render(styles.FilterPrompt, "» ")
	l := m.list
	if l.Filter == "" {
		return prompt + theme.Render(styles.Cursor, "(") + theme.Render(styles.FilterPlaceholder, "type to search)")
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursor
	if pos < 0 || pos > len(runes) {
		pos = len(runes)
	}
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + theme.Render(styles.Filter, string(runes[:pos])) + theme.Render(styles.Cursor, caret) + theme.Render(styles.Filter, after)
}

func (m *Model) dishLines() []styledLine {
	v := m.dish
	if v == nil {
		return nil
	}
	st := v.state
	if st.Dish == nil {
		if st.ErrMess != "" {
			return []styledLine{{text: st.ErrMess, style: styles.Error}}
		}
		return []styledLine{{text: m.spinner.View() + " Loading . . . Please Wait", raw: true}}
	}
	if st.Visibility == uistate.VisibilityHidden {
		return []styledLine{{text: m.spinner.View() + " Loading . . . Please Wait", raw: true}}
	}
	d := st.Dish
	lines := make([]styledLine, 0, 24)
	title := theme.Render(styles.DishName, strings.ToUpper(d.Name))
	if d.Label != "" {
		title += " " + theme.Render(styles.DishLabel, d.Label)
	}
	if d.Price != "" {
		title += "  " + theme.Render(styles.Price, "$"+strings.TrimPrefix(d.Price, "$"))
	}
	lines = append(lines, styledLine{text: title, raw: true})
	if d.Category != "" {
		lines = append(lines, styledLine{text: d.Category, style: styles.CommentMeta})
	}
	if d.Description != "" {
		lines = append(lines, styledLine{text: d.Description, style: styles.Description})
	}
	if st.HasNeighbors() {
		lines = append(lines, styledLine{text: fmt.Sprintf("‹ %s   %s ›", st.Prev, st.Next), style: styles.Neighbor})
	}
	if st.IDsErr != "" {
		lines = append(lines, styledLine{text: "Prev/next unavailable: " + st.IDsErr, style: styles.Error})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "Comments", style: styles.Section})
	if len(d.Comments) == 0 {
		lines = append(lines, styledLine{text: "No comments yet.", style: styles.Info})
	}
	for _, c := range d.Comments {
		lines = append(lines, commentLines(c, "")...)
	}
	if v.form.Valid() {
		pending := commentFromValues(v.form.Values())
		lines = append(lines, commentLines(pending, "preview")...)
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: "Leave a comment", style: styles.Section})
	lines = append(lines, formLines(v.form)...)
	if st.ErrMess != "" {
		lines = append(lines, styledLine{text: st.ErrMess, style: styles.Error})
	}
	return lines
}

func commentLines(c menu.Comment, note string) []styledLine {
	stars := theme.Render(styles.Rating, ratingStars(c.Rating))
	text := c.Comment
	if note != "" {
		text = theme.Render(styles.Preview, text+"  ("+note+")")
	} else {
		text = theme.Render(styles.CommentText, text)
	}
	meta := "-- " + c.Author
	if c.Date != "" {
		meta += ", " + displayDate(c.Date)
	}
	return []styledLine{
		{text: "  " + stars + " " + text, raw: true},
		{text: "    " + meta, style: styles.CommentMeta},
	}
}

func ratingStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > menu.MaxRating {
		rating = menu.MaxRating
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", menu.MaxRating-rating)
}

func displayDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}

func (m *Model) contactLines() []styledLine {
	v := m.contact
	if v == nil {
		return nil
	}
	st := v.state
	lines := []styledLine{
		{text: "Send us your Feedback", style: styles.Section},
	}
	if !st.FormSubmit {
		lines = append(lines, formLines(v.form)...)
		return lines
	}
	if st.FbSpinner {
		return append(lines, styledLine{text: m.spinner.View() + " Submitting Form", raw: true})
	}
	if st.Feedback == nil {
		msg := st.ErrMess
		if msg == "" {
			msg = "Feedback could not be sent."
		}
		return append(lines, styledLine{text: msg, style: styles.Error})
	}
	fb := st.Feedback
	lines = append(lines, styledLine{text: "Thank you! We received your feedback:", style: styles.Success})
	rows := table.Format([][]string{
		{"First Name", fb.FirstName},
		{"Last Name", fb.LastName},
		{"Tel. Number", fb.TelNum},
		{"Email", fb.Email},
		{"Contact You?", strconv.FormatBool(fb.Agree)},
		{"How?", fb.ContactType.Label()},
		{"Feedback", fb.Message},
	}, nil)
	for _, row := range rows {
		lines = append(lines, styledLine{text: "  " + row, style: styles.Info})
	}
	return lines
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 4 // brand, breadcrumb, blank, column header
	used += 2 // status line and filter prompt
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = m.now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if lipgloss.Width(line.text) > width {
				line.text = truncate.StringWithTail(line.text, uint(width-1), "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
