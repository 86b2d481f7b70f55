package state

import "github.com/atomicstack/confusion-tui/internal/menu"

// Contact is the view-model of one mounted contact view.
type Contact struct {
	Mount        int
	FormSubmit   bool
	FbSpinner    bool
	Feedback     *menu.Feedback
	FeedbackCopy *menu.Feedback
	ErrMess      string

	seq int
}

// NewContact returns the state of a freshly mounted view.
func NewContact(mount int) *Contact {
	return &Contact{Mount: mount}
}

// BeginSubmit raises both flags, holds the snapshot and returns the
// submission sequence number.
func (c *Contact) BeginSubmit(snapshot menu.Feedback) int {
	c.seq++
	c.FormSubmit = true
	c.FbSpinner = true
	c.ErrMess = ""
	c.Feedback = &snapshot
	return c.seq
}

// Seq returns the latest submission sequence number.
func (c *Contact) Seq() int {
	return c.seq
}

// ApplyResult stores the backend result of submission seq. Results of an
// older submission are dropped.
func (c *Contact) ApplyResult(seq int, fb *menu.Feedback, err error) bool {
	if seq != c.seq {
		return false
	}
	if err != nil {
		c.Feedback = nil
		c.FeedbackCopy = nil
		c.ErrMess = err.Error()
		return true
	}
	c.Feedback = fb
	if fb != nil {
		dup := *fb
		c.FeedbackCopy = &dup
	} else {
		c.FeedbackCopy = nil
	}
	return true
}

// ClearSpinner lowers the spinner flag if seq is the latest submission.
func (c *Contact) ClearSpinner(seq int) bool {
	if seq != c.seq {
		return false
	}
	c.FbSpinner = false
	return true
}

// ClearSubmit lowers the submission flag if seq is the latest submission.
func (c *Contact) ClearSubmit(seq int) bool {
	if seq != c.seq {
		return false
	}
	c.FormSubmit = false
	return true
}
