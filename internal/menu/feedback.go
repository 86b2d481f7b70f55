package menu

import "fmt"

// ContactType enumerates how the customer agrees to be contacted.
type ContactType string

const (
	ContactNone  ContactType = "None"
	ContactTel   ContactType = "Tel"
	ContactEmail ContactType = "Email"
)

// ContactTypes lists the selectable contact types in display order.
func ContactTypes() []ContactType {
	return []ContactType{ContactNone, ContactTel, ContactEmail}
}

// Label returns the human readable option text.
func (c ContactType) Label() string {
	switch c {
	case ContactTel:
		return "By Phone"
	case ContactEmail:
		return "By Email"
	default:
		return "None"
	}
}

// ParseContactType accepts either the wire value or the display label.
func ParseContactType(s string) (ContactType, error) {
	for _, ct := range ContactTypes() {
		if s == string(ct) || s == ct.Label() {
			return ct, nil
		}
	}
	return ContactNone, fmt.Errorf("unknown contact type %q", s)
}

// Feedback is a contact-form submission.
type Feedback struct {
	ID          string      `json:"id,omitempty"`
	FirstName   string      `json:"firstname"`
	LastName    string      `json:"lastname"`
	TelNum      string      `json:"telnum"`
	Email       string      `json:"email"`
	Agree       bool        `json:"agree"`
	ContactType ContactType `json:"contacttype"`
	Message     string      `json:"message"`
	Date        string      `json:"date,omitempty"`
}

// FullName joins first and last name for display.
func (f Feedback) FullName() string {
	switch {
	case f.FirstName == "":
		return f.LastName
	case f.LastName == "":
		return f.FirstName
	}
	return f.FirstName + " " + f.LastName
}
