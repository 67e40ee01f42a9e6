package preview

import (
	"strings"
	"sync"
)

// Surface is the presentation target: something that can load an HTML
// document and run script against it after the load completes. The engine
// only ever touches a Surface from the dispatcher's goroutine.
type Surface interface {
	// LoadHTML replaces the displayed document. onLoaded, if non-nil, must
	// be invoked once the document has finished loading; script that
	// depends on the new DOM is only safe from inside that callback.
	LoadHTML(html string, onLoaded func())
	// RunScript executes script against the currently loaded document.
	RunScript(script string)
}

// Dispatcher marshals callbacks onto the interactive thread. Everything the
// engine does to a Surface goes through one of these.
type Dispatcher interface {
	Dispatch(fn func())
}

// InlineDispatcher runs callbacks immediately on the delivering goroutine.
// Suitable for one-shot CLI flows and tests where no UI loop exists.
type InlineDispatcher struct{}

func (InlineDispatcher) Dispatch(fn func()) { fn() }

// LoopDispatcher owns a serial run loop. Dispatch enqueues from any
// goroutine; Run consumes on the caller's goroutine until Stop is called,
// giving that goroutine the "interactive thread" role.
type LoopDispatcher struct {
	ch       chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoopDispatcher returns a dispatcher ready for Run.
func NewLoopDispatcher() *LoopDispatcher {
	return &LoopDispatcher{
		ch:   make(chan func(), 16),
		done: make(chan struct{}),
	}
}

// Dispatch enqueues fn. After Stop, callbacks are dropped.
func (d *LoopDispatcher) Dispatch(fn func()) {
	select {
	case d.ch <- fn:
	case <-d.done:
	}
}

// Run consumes callbacks until Stop. It blocks the calling goroutine.
func (d *LoopDispatcher) Run() {
	for {
		select {
		case fn := <-d.ch:
			fn()
		case <-d.done:
			return
		}
	}
}

// Stop ends the run loop. Safe to call more than once.
func (d *LoopDispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.done) })
}

// PageSurface assembles a static page instead of driving a live view:
// scripts handed to RunScript are injected before </body>, so a browser
// opening the page executes the same post-load pass a live surface would
// have run. This is the surface behind the CLI's file output.
type PageSurface struct {
	mu      sync.Mutex
	html    string
	scripts []string
}

func (s *PageSurface) LoadHTML(html string, onLoaded func()) {
	s.mu.Lock()
	s.html = html
	s.scripts = nil
	s.mu.Unlock()
	if onLoaded != nil {
		onLoaded()
	}
}

func (s *PageSurface) RunScript(script string) {
	s.mu.Lock()
	s.scripts = append(s.scripts, script)
	s.mu.Unlock()
}

// HTML returns the assembled page: the last loaded document with every
// post-load script injected at the end of the body.
func (s *PageSurface) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scripts) == 0 {
		return s.html
	}
	var b strings.Builder
	b.WriteString("<script>")
	for _, script := range s.scripts {
		b.WriteString(script)
		b.WriteString("\n")
	}
	b.WriteString("</script></body>")
	return strings.Replace(s.html, "</body>", b.String(), 1)
}
