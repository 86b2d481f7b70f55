package events

import "github.com/atomicstack/confusion-tui/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type RouteTracer struct{}

type CommandTracer struct{}

type TimerTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Route   = RouteTracer{}
	Command = CommandTracer{}
	Timer   = TimerTracer{}
)

func (UITracer) Mount(view string, mount int) {
	logging.Trace("view.mount", map[string]interface{}{"view": view, "mount": mount})
}

func (UITracer) Unmount(view string, mount int) {
	logging.Trace("view.unmount", map[string]interface{}{"view": view, "mount": mount})
}

func (UITracer) MenuCursor(cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"cursor": cursor})
}

func (UITracer) Stale(kind string, mount int) {
	logging.Trace("view.stale", map[string]interface{}{"kind": kind, "mount": mount})
}

func (FilterTracer) Set(filter string, matches int) {
	logging.Trace("filter.set", map[string]interface{}{"filter": filter, "matches": matches})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (RouteTracer) Navigate(from, to string) {
	logging.Trace("route.navigate", map[string]interface{}{"from": from, "to": to})
}

func (RouteTracer) Back(from, to string) {
	logging.Trace("route.back", map[string]interface{}{"from": from, "to": to})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (TimerTracer) Schedule(name string, delayMillis int64) {
	logging.Trace("timer.schedule", map[string]interface{}{"name": name, "delay_ms": delayMillis})
}

func (TimerTracer) Fire(name string) {
	logging.Trace("timer.fire", map[string]interface{}{"name": name})
}

func (TimerTracer) Drop(name string, mount int) {
	logging.Trace("timer.drop", map[string]interface{}{"name": name, "mount": mount})
}
