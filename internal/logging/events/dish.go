package events

import "github.com/atomicstack/confusion-tui/internal/logging"

type DishTracer struct{}

type CommentTracer struct{}

var (
	Dish    = DishTracer{}
	Comment = CommentTracer{}
)

func (DishTracer) FetchIDs() {
	logging.Trace("dish.ids.fetch", nil)
}

func (DishTracer) IDsLoaded(count int) {
	logging.Trace("dish.ids.loaded", map[string]interface{}{"count": count})
}

func (DishTracer) Fetch(id string, seq int) {
	logging.Trace("dish.fetch", map[string]interface{}{"id": id, "seq": seq})
}

func (DishTracer) Loaded(id string, seq int, prev, next string) {
	logging.Trace("dish.loaded", map[string]interface{}{"id": id, "seq": seq, "prev": prev, "next": next})
}

func (DishTracer) FetchFailed(id string, err error) {
	logging.Trace("dish.fetch.error", map[string]interface{}{"id": id, "error": errString(err)})
}

func (DishTracer) Stale(id string, seq, latest int) {
	logging.Trace("dish.stale", map[string]interface{}{"id": id, "seq": seq, "latest": latest})
}

func (DishTracer) Save(id string, comments int) {
	logging.Trace("dish.save", map[string]interface{}{"id": id, "comments": comments})
}

func (DishTracer) SaveFailed(id string, err error) {
	logging.Trace("dish.save.error", map[string]interface{}{"id": id, "error": errString(err)})
}

func (CommentTracer) Submit(dishID, author string, rating int, date string) {
	logging.Trace("comment.submit", map[string]interface{}{"dish": dishID, "author": author, "rating": rating, "date": date})
}

func (CommentTracer) Reset() {
	logging.Trace("comment.reset", nil)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
