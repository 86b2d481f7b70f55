package ui

import (
	"strconv"
	"strings"

	"github.com/atomicstack/confusion-tui/internal/form"
	"github.com/atomicstack/confusion-tui/internal/menu"
	"github.com/atomicstack/confusion-tui/internal/theme"
)

const (
	formLabelWidth  = 14
	minFormWidth    = 20
	defaultFormWide = 48
)

var commentRules = form.Rules{
	"author": {
		form.Required("Author name is required."),
		form.MinLength(2, "Author name must be at least 2 characters."),
		form.MaxLength(30, "Author name must be <= to 30 characters."),
	},
	"comment": {
		form.Required("Comment is required."),
		form.MinLength(1, "Comment must be at least 1 characters."),
	},
}

var feedbackRules = form.Rules{
	"firstname": {
		form.Required("First Name is required."),
		form.MinLength(2, "First Name must be at least 2 characters long."),
		form.MaxLength(25, "FirstName cannot be more than 25 characters long."),
	},
	"lastname": {
		form.Required("Last Name is required."),
		form.MinLength(2, "Last Name must be at least 2 characters long."),
		form.MaxLength(25, "Last Name cannot be more than 25 characters long."),
	},
	"telnum": {
		form.Required("Tel. number is required."),
		form.Numeric("Tel. number must contain only numbers."),
	},
	"email": {
		form.Required("Email is required."),
		form.Email("Email not in valid format."),
	},
}

func commentDefaults() form.Values {
	return form.Values{"author": "", "rating": strconv.Itoa(menu.DefaultRating), "comment": ""}
}

func feedbackDefaults() form.Values {
	return form.Values{
		"firstname":   "",
		"lastname":    "",
		"telnum":      "",
		"email":       "",
		"agree":       strconv.FormatBool(false),
		"contacttype": string(menu.ContactNone),
		"message":     "",
	}
}

func newCommentForm() *form.Form {
	fields := []form.Field{
		{Name: "author", Label: "Name", Kind: form.KindText, Placeholder: "Your name", CharLimit: 64},
		{Name: "rating", Label: "Rating", Kind: form.KindRating, Min: menu.MinRating, Max: menu.MaxRating},
		{Name: "comment", Label: "Comment", Kind: form.KindTextArea, Placeholder: "Your comment"},
	}
	return form.New(fields, commentRules, commentDefaults())
}

func newFeedbackForm() *form.Form {
	options := make([]form.Option, 0, len(menu.ContactTypes()))
	for _, ct := range menu.ContactTypes() {
		options = append(options, form.Option{Value: string(ct), Label: ct.Label()})
	}
	fields := []form.Field{
		{Name: "firstname", Label: "First Name", Kind: form.KindText, Placeholder: "First Name", CharLimit: 64},
		{Name: "lastname", Label: "Last Name", Kind: form.KindText, Placeholder: "Last Name", CharLimit: 64},
		{Name: "telnum", Label: "Tel. Number", Kind: form.KindText, Placeholder: "Tel. Number", CharLimit: 32},
		{Name: "email", Label: "Email", Kind: form.KindText, Placeholder: "Email", CharLimit: 128},
		{Name: "agree", Label: "Contact you?", Kind: form.KindToggle},
		{Name: "contacttype", Label: "How?", Kind: form.KindChoice, Options: options},
		{Name: "message", Label: "Your Feedback", Kind: form.KindTextArea, Placeholder: "Tell us"},
	}
	return form.New(fields, feedbackRules, feedbackDefaults())
}

func commentFromValues(values form.Values) menu.Comment {
	return menu.Comment{
		Author:  values["author"],
		Rating:  values.Int("rating"),
		Comment: values["comment"],
	}
}

func feedbackFromValues(values form.Values) menu.Feedback {
	ct, err := menu.ParseContactType(values["contacttype"])
	if err != nil {
		ct = menu.ContactNone
	}
	return menu.Feedback{
		FirstName:   values["firstname"],
		LastName:    values["lastname"],
		TelNum:      values["telnum"],
		Email:       values["email"],
		Agree:       values.Bool("agree"),
		ContactType: ct,
		Message:     values["message"],
	}
}

func (m *Model) formWidth() int {
	if m.width <= 0 {
		return defaultFormWide
	}
	w := m.width - formLabelWidth - 4
	if w < minFormWidth {
		return minFormWidth
	}
	return w
}

// formLines renders every field as a label column and its control, with
// the validation message underneath.
func formLines(f *form.Form) []styledLine {
	lines := make([]styledLine, 0, len(f.Fields())*2)
	indent := strings.Repeat(" ", formLabelWidth+2)
	for _, field := range f.Fields() {
		labelStyle := styles.FieldLabel
		if field.Name == f.FocusedName() {
			labelStyle = styles.FocusedFieldLabel
		}
		label := theme.Render(labelStyle, padRight(field.Label, formLabelWidth))
		for i, row := range strings.Split(f.ControlView(field.Name), "\n") {
			prefix := indent
			if i == 0 {
				prefix = label + "  "
			}
			lines = append(lines, styledLine{text: prefix + row, raw: true})
		}
		if msg := f.Error(field.Name); msg != "" {
			lines = append(lines, styledLine{text: indent + theme.Render(styles.FieldError, strings.TrimSpace(msg)), raw: true})
		}
	}
	return lines
}

func padRight(text string, width int) string {
	if n := len([]rune(text)); n < width {
		return text + strings.Repeat(" ", width-n)
	}
	return truncateText(text, width)
}

// incompleteNotice extends base with the labels of fields currently showing
// a validation message.
func incompleteNotice(f *form.Form, base string) string {
	names := f.ErrorFields()
	if len(names) == 0 {
		return base
	}
	labels := make(map[string]string, len(names))
	for _, field := range f.Fields() {
		labels[field.Name] = field.Label
	}
	for i, name := range names {
		if label := labels[name]; label != "" {
			names[i] = label
		}
	}
	return base + " Check " + strings.Join(names, ", ") + "."
}
