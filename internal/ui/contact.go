package ui

import (
	"github.com/atomicstack/confusion-tui/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleContactKey(msg tea.KeyMsg) tea.Cmd {
	if m.contact == nil {
		return nil
	}
	if msg.String() == "esc" {
		return m.back()
	}
	if m.contact.state.FormSubmit {
		return nil
	}
	cmd, submit := m.contact.form.Update(msg)
	if submit {
		return batch(cmd, m.submitFeedback())
	}
	return cmd
}

// submitFeedback posts the form, resets it at once and schedules both flag
// resets regardless of the outcome of the call.
func (m *Model) submitFeedback() tea.Cmd {
	v := m.contact
	if !v.form.Valid() {
		m.setInfo(incompleteNotice(v.form, "Complete the highlighted fields before sending."))
		return nil
	}
	fb := feedbackFromValues(v.form.Values())
	seq := v.state.BeginSubmit(fb)
	events.Feedback.Submit(seq, string(fb.ContactType))
	v.form.Reset(feedbackDefaults())
	events.Feedback.Reset()
	events.Timer.Schedule("spinner", m.spinnerDelay.Milliseconds())
	events.Timer.Schedule("submit", m.submitDelay.Milliseconds())
	return batch(
		m.submitFeedbackCmd(m.mount, seq, fb),
		m.after(m.spinnerDelay, spinnerClearMsg{mount: m.mount, seq: seq}),
		m.after(m.submitDelay, submitClearMsg{mount: m.mount, seq: seq}),
	)
}

func (m *Model) handleFeedbackSubmittedMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(feedbackSubmittedMsg)
	if !ok {
		return nil
	}
	if !m.mounted(result.mount, "feedback") || m.contact == nil {
		return nil
	}
	if !m.contact.state.ApplyResult(result.seq, result.feedback, result.err) {
		return nil
	}
	if result.err != nil {
		events.Feedback.SubmitFailed(result.seq, result.err)
		return nil
	}
	id := ""
	if result.feedback != nil {
		id = result.feedback.ID
	}
	events.Feedback.Submitted(result.seq, id)
	return nil
}

func (m *Model) handleSpinnerClearMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinnerClearMsg)
	if !ok {
		return nil
	}
	if tick.mount != m.mount || m.contact == nil {
		events.Timer.Drop("spinner", tick.mount)
		return nil
	}
	if m.contact.state.ClearSpinner(tick.seq) {
		events.Timer.Fire("spinner")
	}
	return nil
}

func (m *Model) handleSubmitClearMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(submitClearMsg)
	if !ok {
		return nil
	}
	if tick.mount != m.mount || m.contact == nil {
		events.Timer.Drop("submit", tick.mount)
		return nil
	}
	if m.contact.state.ClearSubmit(tick.seq) {
		events.Timer.Fire("submit")
		return m.contact.form.Focus()
	}
	return nil
}
