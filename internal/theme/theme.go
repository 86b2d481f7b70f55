package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Brand                 *lipgloss.Style
	Header                *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	ColumnHeader          *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Success               *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
	Spinner               *lipgloss.Style

	DishName    *lipgloss.Style
	DishLabel   *lipgloss.Style
	Price       *lipgloss.Style
	Description *lipgloss.Style
	Section     *lipgloss.Style
	Rating      *lipgloss.Style
	CommentText *lipgloss.Style
	CommentMeta *lipgloss.Style
	Neighbor    *lipgloss.Style

	FieldLabel        *lipgloss.Style
	FocusedFieldLabel *lipgloss.Style
	FieldError        *lipgloss.Style
	Preview           *lipgloss.Style
}

var defaultStyles = Styles{
	Brand: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	ColumnHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Underline(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Success: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")),
	),
	Spinner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	DishName: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	DishLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("160")).Padding(0, 1),
	),
	Price: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Description: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Section: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Rating: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	),
	CommentText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	CommentMeta: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
	),
	Neighbor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	FieldLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	FocusedFieldLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	FieldError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	),
	Preview: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Render applies style to text, tolerating a nil style.
func Render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
