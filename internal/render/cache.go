package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderers hands out glamour renderers keyed by Options. A TermRenderer
// must not be used by two goroutines at once, so each key gets a sync.Pool
// rather than a single shared instance.
type renderers struct {
	mu    sync.RWMutex
	pools map[string]*sync.Pool
}

var shared = &renderers{pools: make(map[string]*sync.Pool)}

func (o Options) key() string {
	return fmt.Sprintf("%s|%d|%t|%t|%t|%t",
		o.Style, o.Width, o.EnableEmoji, o.PreserveNewLines, o.TableWrap, o.InlineTableLinks)
}

func (r *renderers) pool(opts Options) *sync.Pool {
	key := opts.key()

	r.mu.RLock()
	p, ok := r.pools[key]
	r.mu.RUnlock()
	if ok {
		return p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pools[key]; ok {
		return p
	}
	p = &sync.Pool{}
	r.pools[key] = p
	return p
}

func (r *renderers) get(opts Options) (*glamour.TermRenderer, error) {
	if tr, ok := r.pool(opts).Get().(*glamour.TermRenderer); ok {
		return tr, nil
	}
	return newRenderer(opts)
}

func (r *renderers) put(opts Options, tr *glamour.TermRenderer) {
	if tr != nil {
		r.pool(opts).Put(tr)
	}
}

func (r *renderers) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pools)
}

func (r *renderers) reset() {
	r.mu.Lock()
	r.pools = make(map[string]*sync.Pool)
	r.mu.Unlock()
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	style := opts.Style
	if style == "" {
		style = DefaultOptions().Style
	}

	ropts := []glamour.TermRendererOption{
		glamour.WithStylePath(style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		ropts = append(ropts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(ropts...)
}
