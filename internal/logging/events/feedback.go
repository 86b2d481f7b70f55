package events

import "github.com/atomicstack/confusion-tui/internal/logging"

type FeedbackTracer struct{}

var Feedback = FeedbackTracer{}

func (FeedbackTracer) Submit(seq int, contactType string) {
	logging.Trace("feedback.submit", map[string]interface{}{"seq": seq, "contacttype": contactType})
}

func (FeedbackTracer) Submitted(seq int, id string) {
	logging.Trace("feedback.submitted", map[string]interface{}{"seq": seq, "id": id})
}

func (FeedbackTracer) SubmitFailed(seq int, err error) {
	logging.Trace("feedback.submit.error", map[string]interface{}{"seq": seq, "error": errString(err)})
}

func (FeedbackTracer) Reset() {
	logging.Trace("feedback.reset", nil)
}
