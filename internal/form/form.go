package form

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Kind selects the widget used for a field.
type Kind int

const (
	KindText Kind = iota
	KindTextArea
	KindToggle
	KindChoice
	KindRating
)

// Option is a selectable value of a KindChoice field.
type Option struct {
	Value string
	Label string
}

// Field describes one form control.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Placeholder string
	CharLimit   int
	Options     []Option
	Min, Max    int
}

// Values holds form values keyed by field name. Toggle fields use
// strconv.FormatBool, rating fields strconv.Itoa.
type Values map[string]string

// Clone returns an independent copy of v.
func (v Values) Clone() Values {
	dup := make(Values, len(v))
	for k, val := range v {
		dup[k] = val
	}
	return dup
}

// Bool parses a toggle value.
func (v Values) Bool(name string) bool {
	return parseBool(v[name])
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

// Int parses a rating value, returning 0 when unset.
func (v Values) Int(name string) int {
	n, _ := strconv.Atoi(v[name])
	return n
}

type control struct {
	field    Field
	input    textinput.Model
	area     textarea.Model
	value    string
	dirty    bool
	hasInput bool
	hasArea  bool
}

// Form is a focusable set of controls with live validation.
type Form struct {
	controls []*control
	index    map[string]int
	focus    int
	rules    Rules
	defaults Values
	errors   Errors
	width    int
}

// New builds a form from fields, validated by rules and reset to defaults.
func New(fields []Field, rules Rules, defaults Values) *Form {
	f := &Form{
		controls: make([]*control, 0, len(fields)),
		index:    make(map[string]int, len(fields)),
		rules:    rules,
		defaults: defaults.Clone(),
		width:    48,
	}
	for i, field := range fields {
		c := &control{field: field}
		switch field.Kind {
		case KindText:
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = field.Placeholder
			if field.CharLimit > 0 {
				ti.CharLimit = field.CharLimit
			}
			c.input = ti
			c.hasInput = true
		case KindTextArea:
			ta := textarea.New()
			ta.Placeholder = field.Placeholder
			ta.ShowLineNumbers = false
			ta.Prompt = ""
			ta.SetHeight(3)
			if field.CharLimit > 0 {
				ta.CharLimit = field.CharLimit
			}
			c.area = ta
			c.hasArea = true
		}
		f.controls = append(f.controls, c)
		f.index[field.Name] = i
	}
	f.Reset(nil)
	return f
}

// Reset restores every control to its default, or to the override when one
// is supplied for the field, and clears dirty state and messages.
func (f *Form) Reset(override Values) {
	for _, c := range f.controls {
		value, ok := override[c.field.Name]
		if !ok {
			value = f.defaults[c.field.Name]
		}
		c.setValue(value)
		c.dirty = false
	}
	f.recompute()
	f.focusControl(0)
}

// Focus gives keyboard focus to the current control.
func (f *Form) Focus() tea.Cmd {
	return f.focusControl(f.focus)
}

// Blur removes keyboard focus from all controls.
func (f *Form) Blur() {
	for _, c := range f.controls {
		c.blur()
	}
}

// SetWidth sets the rendering width of text controls.
func (f *Form) SetWidth(width int) {
	if width <= 0 {
		return
	}
	f.width = width
	for _, c := range f.controls {
		if c.hasInput {
			c.input.Width = width
		}
		if c.hasArea {
			c.area.SetWidth(width)
		}
	}
}

// SetCursorMode switches the cursor of every text control, for example to
// a static cursor when the terminal does not blink.
func (f *Form) SetCursorMode(mode cursor.Mode) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(f.controls))
	for _, c := range f.controls {
		switch {
		case c.hasInput:
			cmds = append(cmds, c.input.Cursor.SetMode(mode))
		case c.hasArea:
			cmds = append(cmds, c.area.Cursor.SetMode(mode))
		}
	}
	return tea.Batch(cmds...)
}

// Update routes msg to the focused control. submit is true when the user
// pressed enter on a single-line control or ctrl+s anywhere.
func (f *Form) Update(msg tea.Msg) (cmd tea.Cmd, submit bool) {
	key, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch key.String() {
		case "tab", "down":
			if key.String() == "down" && f.focusedKind() == KindTextArea {
				break
			}
			return f.focusControl(f.focus + 1), false
		case "shift+tab", "up":
			if key.String() == "up" && f.focusedKind() == KindTextArea {
				break
			}
			return f.focusControl(f.focus - 1), false
		case "ctrl+s":
			return nil, true
		case "enter":
			if f.focusedKind() != KindTextArea {
				return nil, true
			}
		}
	}
	c := f.focused()
	if c == nil {
		return nil, false
	}
	before := c.currentValue()
	switch c.field.Kind {
	case KindText:
		c.input, cmd = c.input.Update(msg)
	case KindTextArea:
		c.area, cmd = c.area.Update(msg)
	case KindToggle:
		if isKey && (key.String() == " " || key.String() == "x") {
			c.setValue(strconv.FormatBool(!parseBool(c.value)))
		}
	case KindChoice:
		if isKey {
			c.cycleOption(key.String())
		}
	case KindRating:
		if isKey {
			c.stepRating(key.String())
		}
	}
	if c.currentValue() != before {
		c.dirty = true
	}
	f.recompute()
	return cmd, false
}

// Set assigns a value programmatically as if the user had typed it.
func (f *Form) Set(name, value string) {
	i, ok := f.index[name]
	if !ok {
		return
	}
	c := f.controls[i]
	if c.currentValue() != value {
		c.dirty = true
	}
	c.setValue(value)
	f.recompute()
}

// Value returns the current value of a field.
func (f *Form) Value(name string) string {
	i, ok := f.index[name]
	if !ok {
		return ""
	}
	return f.controls[i].currentValue()
}

// Values snapshots all field values.
func (f *Form) Values() Values {
	out := make(Values, len(f.controls))
	for _, c := range f.controls {
		out[c.field.Name] = c.currentValue()
	}
	return out
}

// Dirty reports whether the user changed the named field since the last reset.
func (f *Form) Dirty(name string) bool {
	i, ok := f.index[name]
	return ok && f.controls[i].dirty
}

// Errors returns the current per-field validation messages.
func (f *Form) Errors() Errors {
	dup := make(Errors, len(f.errors))
	for k, v := range f.errors {
		dup[k] = v
	}
	return dup
}

// Error returns the validation message for one field.
func (f *Form) Error(name string) string {
	return f.errors[name]
}

// Valid reports whether all rules pass for the current values.
func (f *Form) Valid() bool {
	return Valid(f.Values(), f.rules)
}

// Fields returns the field definitions in display order.
func (f *Form) Fields() []Field {
	out := make([]Field, len(f.controls))
	for i, c := range f.controls {
		out[i] = c.field
	}
	return out
}

// FocusedName returns the name of the focused field.
func (f *Form) FocusedName() string {
	if c := f.focused(); c != nil {
		return c.field.Name
	}
	return ""
}

// ControlView renders the widget for one field without label or message.
func (f *Form) ControlView(name string) string {
	i, ok := f.index[name]
	if !ok {
		return ""
	}
	c := f.controls[i]
	focused := i == f.focus
	switch c.field.Kind {
	case KindText:
		return c.input.View()
	case KindTextArea:
		return c.area.View()
	case KindToggle:
		mark := "[ ]"
		if parseBool(c.value) {
			mark = "[x]"
		}
		return mark
	case KindChoice:
		parts := make([]string, 0, len(c.field.Options))
		for _, opt := range c.field.Options {
			label := opt.Label
			if label == "" {
				label = opt.Value
			}
			if opt.Value == c.value {
				label = "(" + label + ")"
			} else {
				label = " " + label + " "
			}
			parts = append(parts, label)
		}
		view := strings.Join(parts, " ")
		if focused {
			view = "‹ " + view + " ›"
		}
		return view
	case KindRating:
		n, _ := strconv.Atoi(c.value)
		max := c.field.Max
		if max <= 0 {
			max = 5
		}
		return strings.Repeat("★", n) + strings.Repeat("☆", max-n) + " " + strconv.Itoa(n)
	}
	return c.value
}

// ErrorFields returns the names of fields with a non-empty message, sorted.
func (f *Form) ErrorFields() []string {
	names := make([]string, 0, len(f.errors))
	for name, msg := range f.errors {
		if msg != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (f *Form) recompute() {
	values := make(map[string]string, len(f.controls))
	dirty := make(map[string]bool, len(f.controls))
	for _, c := range f.controls {
		values[c.field.Name] = c.currentValue()
		dirty[c.field.Name] = c.dirty
	}
	f.errors = RecomputeErrors(values, dirty, f.rules)
}

func (f *Form) focused() *control {
	if f.focus < 0 || f.focus >= len(f.controls) {
		return nil
	}
	return f.controls[f.focus]
}

func (f *Form) focusedKind() Kind {
	if c := f.focused(); c != nil {
		return c.field.Kind
	}
	return KindText
}

func (f *Form) focusControl(i int) tea.Cmd {
	n := len(f.controls)
	if n == 0 {
		return nil
	}
	i = ((i % n) + n) % n
	for _, c := range f.controls {
		c.blur()
	}
	f.focus = i
	return f.controls[i].focusCmd()
}

func (c *control) currentValue() string {
	switch {
	case c.hasInput:
		return c.input.Value()
	case c.hasArea:
		return c.area.Value()
	}
	return c.value
}

func (c *control) setValue(value string) {
	switch {
	case c.hasInput:
		c.input.SetValue(value)
		c.input.CursorEnd()
	case c.hasArea:
		c.area.SetValue(value)
	default:
		if c.field.Kind == KindRating {
			n, err := strconv.Atoi(value)
			if err != nil {
				n = c.field.Max
			}
			value = strconv.Itoa(clamp(n, c.field.Min, c.field.Max))
		}
		c.value = value
	}
}

func (c *control) focusCmd() tea.Cmd {
	switch {
	case c.hasInput:
		return c.input.Focus()
	case c.hasArea:
		return c.area.Focus()
	}
	return nil
}

func (c *control) blur() {
	switch {
	case c.hasInput:
		c.input.Blur()
	case c.hasArea:
		c.area.Blur()
	}
}

func (c *control) cycleOption(key string) {
	opts := c.field.Options
	if len(opts) == 0 {
		return
	}
	delta := 0
	switch key {
	case "right", "l", " ":
		delta = 1
	case "left", "h":
		delta = -1
	default:
		return
	}
	current := 0
	for i, opt := range opts {
		if opt.Value == c.value {
			current = i
			break
		}
	}
	next := ((current+delta)%len(opts) + len(opts)) % len(opts)
	c.value = opts[next].Value
}

func (c *control) stepRating(key string) {
	n, _ := strconv.Atoi(c.value)
	switch key {
	case "right", "l", "+":
		n++
	case "left", "h", "-":
		n--
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			n = int(key[0] - '0')
		} else {
			return
		}
	}
	c.value = strconv.Itoa(clamp(n, c.field.Min, c.field.Max))
}

func clamp(n, lo, hi int) int {
	if hi <= 0 {
		hi = 5
	}
	if lo <= 0 {
		lo = 1
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
