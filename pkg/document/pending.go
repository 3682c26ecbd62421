package document

import (
	"context"
	"image"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/podium/pkg/geometry"
)

// Pending is a document that is still being opened in the background.
// Until the loader finishes it reports [StatusLoading] and renders nothing.
type Pending struct {
	mu     sync.RWMutex
	doc    Document
	err    error
	status Status
	name   string
	done   chan struct{}
}

// Load starts open in a new goroutine and returns immediately.
func Load(ctx context.Context, name string, open func(context.Context) (Document, error)) *Pending {
	p := &Pending{status: StatusLoading, name: name, done: make(chan struct{})}
	go func() {
		doc, err := open(ctx)
		p.mu.Lock()
		if err != nil {
			p.status, p.err = StatusError, err
		} else {
			p.status, p.doc = StatusReady, doc
		}
		p.mu.Unlock()
		close(p.done)
	}()
	return p
}

// Done is closed once loading has finished, successfully or not.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until loading finishes or ctx is done.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the loading error, if any.
func (p *Pending) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// Document returns the loaded document, or nil while loading.
func (p *Pending) Document() Document {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.doc
}

func (p *Pending) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *Pending) PageCount() int {
	if d := p.Document(); d != nil {
		return d.PageCount()
	}
	return 0
}

func (p *Pending) PageSize(page int) (geometry.Size, error) {
	if d := p.Document(); d != nil {
		return d.PageSize(page)
	}
	return geometry.Size{}, ErrNotReady
}

func (p *Pending) Render(ctx context.Context, page int, px image.Point) (*image.RGBA, error) {
	if d := p.Document(); d != nil {
		return d.Render(ctx, page, px)
	}
	return nil, ErrNotReady
}

func (p *Pending) Title() string {
	if d := p.Document(); d != nil {
		return d.Title()
	}
	return p.name
}

func (p *Pending) Chapters() []Chapter {
	if d := p.Document(); d != nil {
		return d.Chapters()
	}
	return nil
}

// SplitHint forwards to the loaded document when it has one.
func (p *Pending) SplitHint() bool {
	if h, ok := p.Document().(interface{ SplitHint() bool }); ok {
		return h.SplitHint()
	}
	return false
}

// Notes forwards to the loaded document when it carries text notes.
func (p *Pending) Notes(page int) string {
	if n, ok := p.Document().(interface{ Notes(int) string }); ok {
		return n.Notes(page)
	}
	return ""
}

func (p *Pending) Close() error {
	<-p.done
	if d := p.Document(); d != nil {
		return d.Close()
	}
	return nil
}

// Open picks a backend by file extension.
func Open(path string, opts Options) (Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return OpenDeck(path)
	default:
		return OpenPDF(path, opts)
	}
}
