package writequeue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// LoadFunc reads the current document for key.
type LoadFunc[T any] func(ctx context.Context, key string) (T, error)

// StoreFunc persists doc and returns the stored version of it.
type StoreFunc[T any] func(ctx context.Context, key string, doc T) (T, error)

// MutateFunc derives the next document. Returning an error discards the
// mutation; doc is a private copy and may be modified in place.
type MutateFunc[T any] func(doc T) (T, error)

type Config struct {
	Window  time.Duration
	Timeout time.Duration
	// MaxRetries bounds background re-flushes after a timed out store.
	// Zero selects the default, a negative value disables retries. A timed
	// out document stays cached either way.
	MaxRetries int
}

const (
	DefaultWindow     = 500 * time.Millisecond
	DefaultTimeout    = 15 * time.Second
	DefaultMaxRetries = 3
)

// Queue coalesces mutations per key into a single store call. Mutations
// arriving within Window of the first pending one are flushed together and
// all callers of a batch receive the same outcome. At most one store call
// per key is in flight. A key is forgotten once nothing unstored is held
// for it.
type Queue[T any] struct {
	cfg   Config
	load  LoadFunc[T]
	store StoreFunc[T]
	clone func(T) T

	mu      sync.Mutex
	entries map[string]*entry[T]
}

type entry[T any] struct {
	refs int // Apply calls holding the entry, guarded by Queue.mu

	mu       sync.Mutex // guards the fields below
	doc      T
	loaded   bool
	dirty    bool // doc holds mutations not yet stored
	flushing bool
	pending  *batch[T]

	writeMu sync.Mutex // serializes store calls for the key
}

type op[T any] struct {
	mutate MutateFunc[T]
	result T
	err    error
}

type batch[T any] struct {
	ops  []*op[T]
	done chan struct{}
	err  error
}

func New[T any](cfg Config, load LoadFunc[T], store StoreFunc[T], clone func(T) T) *Queue[T] {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	switch {
	case cfg.MaxRetries == 0:
		cfg.MaxRetries = DefaultMaxRetries
	case cfg.MaxRetries < 0:
		cfg.MaxRetries = 0
	}
	return &Queue[T]{
		cfg:     cfg,
		load:    load,
		store:   store,
		clone:   clone,
		entries: make(map[string]*entry[T]),
	}
}

func (q *Queue[T]) acquire(key string) *entry[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[key]
	if !ok {
		e = &entry[T]{}
		q.entries[key] = e
	}
	e.refs++
	return e
}

func (q *Queue[T]) release(key string, e *entry[T]) {
	q.mu.Lock()
	e.refs--
	q.mu.Unlock()
	q.evict(key, e)
}

// evict drops the entry for key when no caller holds it and it carries no
// pending, in-flight or retained payload.
func (q *Queue[T]) evict(key string, e *entry[T]) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e.mu.Lock()
	idle := e.refs == 0 && e.pending == nil && !e.flushing && !e.dirty
	e.mu.Unlock()
	if idle && q.entries[key] == e {
		delete(q.entries, key)
	}
}

// Apply runs mutate against the latest document for key and waits for the
// batch holding it to be stored. A mutate error is returned immediately
// and nothing is queued. The returned document is the state after this
// mutation.
//
// When the store call of an earlier batch fails, mutate may run again
// against a freshly loaded document, so it must depend only on its input.
func (q *Queue[T]) Apply(ctx context.Context, key string, mutate MutateFunc[T]) (T, error) {
	var zero T
	e := q.acquire(key)
	defer q.release(key, e)

	e.mu.Lock()
	if !e.loaded {
		doc, err := q.load(ctx, key)
		if err != nil {
			e.mu.Unlock()
			return zero, err
		}
		e.doc = doc
		e.loaded = true
	}

	next, err := mutate(q.clone(e.doc))
	if err != nil {
		e.mu.Unlock()
		return zero, err
	}
	e.doc = next
	e.dirty = true
	o := &op[T]{mutate: mutate, result: q.clone(next)}

	b := e.pending
	if b == nil {
		b = &batch[T]{done: make(chan struct{})}
		e.pending = b
		time.AfterFunc(q.cfg.Window, func() { q.flush(key, e, 0) })
	}
	b.ops = append(b.ops, o)
	e.mu.Unlock()

	select {
	case <-b.done:
		if b.err != nil {
			return zero, b.err
		}
		if o.err != nil {
			return zero, o.err
		}
		return o.result, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Peek returns the cached document for key when one is held, including
// mutations not yet stored.
func (q *Queue[T]) Peek(key string) (T, bool) {
	q.mu.Lock()
	e, ok := q.entries[key]
	q.mu.Unlock()
	if !ok {
		var zero T
		return zero, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		var zero T
		return zero, false
	}
	return q.clone(e.doc), true
}

// Invalidate drops the cached document so the next Apply reloads it.
// A pending or in-flight batch keeps its payload.
func (q *Queue[T]) Invalidate(key string) {
	q.mu.Lock()
	e, ok := q.entries[key]
	q.mu.Unlock()
	if !ok {
		return
	}
	e.mu.Lock()
	if e.pending == nil && !e.flushing {
		q.reset(e)
	}
	e.mu.Unlock()
	q.evict(key, e)
}

func (q *Queue[T]) flush(key string, e *entry[T], attempt int) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.Lock()
	b := e.pending
	if b == nil {
		e.mu.Unlock()
		return
	}
	e.pending = nil
	e.flushing = true
	doc := q.clone(e.doc)
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), q.cfg.Timeout)
	stored, err := q.store(ctx, key, doc)
	cancel()

	e.mu.Lock()
	switch {
	case err == nil:
		if e.pending == nil {
			// Nothing new arrived; drop the cache so other writers are seen.
			q.reset(e)
		} else {
			e.doc = q.rebase(stored, e.doc)
		}
	case errors.Is(err, context.DeadlineExceeded):
		// The document is kept so the next write carries this payload. A
		// batch that is already pending carries it too.
		if e.pending == nil && attempt < q.cfg.MaxRetries {
			slog.Warn("write queue flush timed out, retrying", "key", key, "attempt", attempt+1, "timeout", q.cfg.Timeout)
			e.pending = &batch[T]{done: make(chan struct{})}
			delay := q.cfg.Window * time.Duration(attempt+2)
			time.AfterFunc(delay, func() { q.flush(key, e, attempt+1) })
		} else {
			slog.Error("write queue flush timed out", "key", key, "attempt", attempt+1, "timeout", q.cfg.Timeout)
		}
	default:
		slog.Error("write queue flush failed", "key", key, "attempt", attempt+1, "error", err)
		if e.pending == nil {
			q.reset(e)
		} else {
			q.replay(key, e)
		}
	}
	e.flushing = false
	e.mu.Unlock()

	b.err = err
	close(b.done)
	q.evict(key, e)
}

// replay rebuilds the document of a key whose store call failed while
// another batch was pending: the stored document is reloaded and only the
// pending batch's mutations are applied to it. A mutation that no longer
// applies fails alone. Called with e.mu held.
func (q *Queue[T]) replay(key string, e *entry[T]) {
	p := e.pending

	ctx, cancel := context.WithTimeout(context.Background(), q.cfg.Timeout)
	doc, err := q.load(ctx, key)
	cancel()
	if err != nil {
		slog.Error("write queue reload failed", "key", key, "error", err)
		e.pending = nil
		q.reset(e)
		p.err = err
		close(p.done)
		return
	}

	kept := p.ops[:0]
	for _, o := range p.ops {
		next, err := o.mutate(q.clone(doc))
		if err != nil {
			o.err = err
			continue
		}
		doc = next
		o.result = q.clone(next)
		kept = append(kept, o)
	}
	p.ops = kept

	if len(kept) == 0 {
		e.pending = nil
		q.reset(e)
		close(p.done)
		return
	}
	e.doc = doc
	e.loaded = true
	e.dirty = true
}

func (q *Queue[T]) reset(e *entry[T]) {
	var zero T
	e.doc = zero
	e.loaded = false
	e.dirty = false
}

// Versioned documents carry a store version that must follow the latest
// successful write.
type Versioned[T any] interface {
	WithVersionOf(stored T) T
}

func (q *Queue[T]) rebase(stored, current T) T {
	if v, ok := any(current).(Versioned[T]); ok {
		return v.WithVersionOf(stored)
	}
	return current
}
