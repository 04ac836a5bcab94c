package events

import "github.com/atomicstack/session-tree/internal/logging"

type AppTracer struct{}

type LoaderTracer struct{}

type NavTracer struct{}

type FilterTracer struct{}

type TreeTracer struct{}

var (
	App    = AppTracer{}
	Loader = LoaderTracer{}
	Nav    = NavTracer{}
	Filter = FilterTracer{}
	Tree   = TreeTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (LoaderTracer) Listed(scope string, count int) {
	logging.Trace("loader.listed", map[string]interface{}{"scope": scope, "count": count})
}

func (LoaderTracer) Progress(loaded, total int) {
	logging.Trace("loader.progress", map[string]interface{}{"loaded": loaded, "total": total})
}

func (LoaderTracer) Discarded(path string) {
	logging.Trace("loader.discarded", map[string]interface{}{"path": path})
}

func (LoaderTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("loader.error", map[string]interface{}{"error": err.Error()})
}

func (NavTracer) Cursor(cursor int) {
	logging.Trace("nav.cursor", map[string]interface{}{"cursor": cursor})
}

func (NavTracer) Select(path string) {
	logging.Trace("nav.select", map[string]interface{}{"path": path})
}

func (NavTracer) Cancel() {
	logging.Trace("nav.cancel", nil)
}

func (FilterTracer) Query(query string, matches int) {
	logging.Trace("filter.query", map[string]interface{}{"query": query, "matches": matches})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Committed(query string, cursor int) {
	logging.Trace("filter.commit", map[string]interface{}{"query": query, "cursor": cursor})
}

func (TreeTracer) Collision(path string) {
	logging.Trace("tree.collision", map[string]interface{}{"path": path})
}

func (TreeTracer) Built(roots, total int) {
	logging.Trace("tree.built", map[string]interface{}{"roots": roots, "total": total})
}
