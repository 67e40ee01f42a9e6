// Package preview is the session engine behind the JSON preview pane: it
// owns the parsed document, turns filter expressions into highlight/expand
// state off the interactive thread, and delivers each result as a single
// coherent visual update.
package preview

import (
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/jasondoong/formiko/internal/errors"
	"github.com/jasondoong/formiko/internal/models"
	"github.com/jasondoong/formiko/internal/parser"
	"github.com/jasondoong/formiko/internal/render"
)

// workerCount is the size of the evaluation pool. Evaluation is CPU-light;
// two workers cover overlapping requests during fast typing.
const workerCount = 2

// ResultFunc reports a completed filter request: the effective expression
// and how many nodes matched. Fired after presentation is applied.
type ResultFunc func(expression string, matchCount int)

// ErrorFunc receives the human-readable message of a failed filter request,
// for modal-dialog style display.
type ErrorFunc func(message string)

// Options configure an Engine.
type Options struct {
	// TabWidth is the indentation width for the collapse-decision dump.
	// Zero means render.DefaultTabWidth.
	TabWidth int
	// CollapseLines is the line-count threshold above which a freshly
	// rendered document starts collapsed. Zero means
	// render.DefaultCollapseLines.
	CollapseLines int
	// Surface is the presentation target. May be nil; presentation is then
	// skipped.
	Surface Surface
	// Dispatcher marshals presentation onto the interactive thread.
	// Nil means InlineDispatcher.
	Dispatcher Dispatcher
	// OnResult, if set, receives (expression, matchCount) per request.
	OnResult ResultFunc
	// OnQueryError, if set, receives the message of malformed expressions.
	OnQueryError ErrorFunc
}

// Engine is one preview session. All exported methods are safe to call from
// the interactive thread; ApplyFilter never blocks it.
type Engine struct {
	mu       sync.Mutex
	doc      models.Value
	renderer *render.Renderer

	// generation identifies the most recent request. Results carrying an
	// older generation are discarded unseen, so out-of-order completions
	// can never present stale state.
	generation atomic.Uint64

	workers   *pool.Pool
	closeOnce sync.Once

	surface    Surface
	dispatcher Dispatcher

	onResult     ResultFunc
	onQueryError ErrorFunc
}

// NewEngine creates an idle engine; call LoadDocument before filtering.
func NewEngine(opts Options) *Engine {
	r := render.New()
	if opts.TabWidth > 0 {
		r.TabWidth = opts.TabWidth
	}
	if opts.CollapseLines > 0 {
		r.CollapseLines = opts.CollapseLines
	}
	d := opts.Dispatcher
	if d == nil {
		d = InlineDispatcher{}
	}
	return &Engine{
		renderer:     r,
		workers:      pool.New().WithMaxGoroutines(workerCount),
		surface:      opts.Surface,
		dispatcher:   d,
		onResult:     opts.OnResult,
		onQueryError: opts.OnQueryError,
	}
}

// Close waits for in-flight evaluations to finish. Their results are
// discarded if superseded, as usual. Safe to call more than once; no new
// filters may be submitted afterwards.
func (e *Engine) Close() {
	e.closeOnce.Do(func() { e.workers.Wait() })
}

// Document returns the cached parsed document, or nil before the first
// successful LoadDocument.
func (e *Engine) Document() models.Value {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

// LoadDocument parses text, caches the tree for later filtering, and
// returns the initial full HTML. On a parse failure the returned HTML is a
// rendered error document (not a dialog) and the cached tree is left as it
// was. Either page is also loaded into the surface when one is attached.
//
// The previous tree is replaced, never mutated, so an in-flight evaluation
// still holding it keeps reading a valid value. Loading also supersedes all
// in-flight filter requests: their results can no longer present.
func (e *Engine) LoadDocument(text string) (string, error) {
	doc, err := parser.ParseString(text)
	if err != nil {
		html := e.renderer.RenderError(errors.UserFriendlyError(err))
		e.show(html)
		return html, err
	}

	e.mu.Lock()
	e.doc = doc
	e.mu.Unlock()
	e.generation.Add(1)

	html := e.renderer.Render(doc)
	e.show(html)
	return html, nil
}

func (e *Engine) show(html string) {
	if e.surface == nil {
		return
	}
	e.dispatcher.Dispatch(func() {
		e.surface.LoadHTML(html, nil)
	})
}

// ApplyFilter submits a filter request and returns without waiting for it.
// Evaluation runs on the worker pool against the document as cached at
// submission time; the result is marshalled back through the dispatcher and
// applied only if no newer request or document load has happened since.
func (e *Engine) ApplyFilter(expression string) {
	e.mu.Lock()
	doc := e.doc
	e.mu.Unlock()
	gen := e.generation.Add(1)

	e.workers.Go(func() {
		res, err := Filter(doc, expression)
		e.dispatcher.Dispatch(func() {
			if gen != e.generation.Load() {
				// Superseded while evaluating.
				return
			}
			if err != nil {
				if e.onQueryError != nil {
					e.onQueryError(errors.UserFriendlyError(err))
				}
				res = resetState(doc)
			}
			e.present(doc, res)
		})
	})
}

// present applies one coherent visual update. Runs on the dispatcher
// goroutine only.
func (e *Engine) present(doc models.Value, res *FilterResult) {
	if e.surface == nil {
		// Presentation target gone; nothing to update.
		return
	}

	html := e.renderer.Render(doc)
	e.surface.LoadHTML(html, func() {
		if res.Expression == "" {
			e.surface.RunScript(render.ResetScript())
		} else {
			e.surface.RunScript(render.ApplyScript(res.Highlights, res.ExpandPaths()))
		}
	})

	if e.onResult != nil {
		e.onResult(res.Expression, res.MatchCount())
	}
}
