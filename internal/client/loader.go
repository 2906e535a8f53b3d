package client

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by Load when a newer load started, or the loader
// was closed, before this one finished. Its result is dropped.
var ErrSuperseded = errors.New("load superseded")

// Loader runs one fetch at a time for a single view. Starting a load cancels
// the previous one and only the newest load may publish its value, so a slow
// stale response can never overwrite a fresh one.
type Loader[T any] struct {
	fetch func(context.Context) (T, error)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	value  T
	loaded bool
	closed bool
}

func NewLoader[T any](fetch func(context.Context) (T, error)) *Loader[T] {
	return &Loader[T]{fetch: fetch}
}

// Load fetches and stores a new value. It returns ErrSuperseded when its
// result was discarded.
func (l *Loader[T]) Load(ctx context.Context) (T, error) {
	var zero T

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return zero, ErrSuperseded
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	v, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || gen != l.gen {
		return zero, ErrSuperseded
	}
	cancel()
	l.cancel = nil
	if err != nil {
		return zero, err
	}
	l.value = v
	l.loaded = true
	return v, nil
}

// Value returns the last published value and whether there is one.
func (l *Loader[T]) Value() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.loaded
}

// Generation is the number of loads started so far.
func (l *Loader[T]) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Close cancels any in-flight load. Later loads return ErrSuperseded.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
