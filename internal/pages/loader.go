package pages

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

var loaderSeq atomic.Uint64

type loadedMsg[T any] struct {
	id   uint64
	data T
	err  error
}

// Loader fetches one value in a command and tracks loading, error and data.
// Results addressed to another loader are ignored, so a page that was
// navigated away from cannot write into its replacement.
type Loader[T any] struct {
	id    uint64
	ctx   context.Context
	fetch func(ctx context.Context) (T, error)

	loading bool
	loaded  bool
	data    T
	err     error
}

func NewLoader[T any](ctx context.Context, fetch func(ctx context.Context) (T, error)) *Loader[T] {
	return &Loader[T]{id: loaderSeq.Add(1), ctx: ctx, fetch: fetch}
}

// Load starts a fetch.
func (l *Loader[T]) Load() tea.Cmd {
	l.loading = true
	id, ctx, fetch := l.id, l.ctx, l.fetch
	return func() tea.Msg {
		data, err := fetch(ctx)
		return loadedMsg[T]{id: id, data: data, err: err}
	}
}

// Update applies msg if it is this loader's result.
func (l *Loader[T]) Update(msg tea.Msg) bool {
	result, ok := msg.(loadedMsg[T])
	if !ok || result.id != l.id {
		return false
	}
	l.loading = false
	l.loaded = true
	l.err = result.err
	if result.err == nil {
		l.data = result.data
	}
	return true
}

func (l *Loader[T]) Loading() bool { return l.loading }
func (l *Loader[T]) Err() error    { return l.err }
func (l *Loader[T]) Data() T       { return l.data }

// Ready is true once data arrived without error.
func (l *Loader[T]) Ready() bool {
	return l.loaded && l.err == nil
}

// Set replaces the loaded data in place.
func (l *Loader[T]) Set(data T) {
	l.data = data
}

// View renders the loading and error states, or data through render.
func (l *Loader[T]) View(render func(T) string) string {
	switch {
	case l.loading && !l.loaded:
		return mutedStyle.Render("Loading…")
	case l.err != nil:
		return errorStyle.Render("Couldn't load: "+errorText(l.err)) + "\n" + mutedStyle.Render("r to retry")
	case !l.loaded:
		return ""
	}
	return render(l.data)
}
