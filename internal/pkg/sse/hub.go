// Package sse fans server-sent events out to open client streams.
package sse

import "sync"

const DefaultBuffer = 16

// Hub routes values of T to the streams registered under a key. A key may
// hold several streams, one per browser tab.
type Hub[T any] struct {
	mu      sync.RWMutex
	streams map[string]map[chan T]struct{}
	buffer  int
}

func NewHub[T any](buffer int) *Hub[T] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub[T]{streams: make(map[string]map[chan T]struct{}), buffer: buffer}
}

// Subscribe opens a stream for key. The returned func unregisters and
// closes it and may be called more than once.
func (h *Hub[T]) Subscribe(key string) (<-chan T, func()) {
	ch := make(chan T, h.buffer)

	h.mu.Lock()
	set, ok := h.streams[key]
	if !ok {
		set = make(map[chan T]struct{})
		h.streams[key] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.streams[key], ch)
			if len(h.streams[key]) == 0 {
				delete(h.streams, key)
			}
			close(ch)
		})
	}
}

// Publish never blocks. Streams with a full buffer miss v; the number of
// streams that received it is returned.
func (h *Hub[T]) Publish(key string, v T) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.streams[key] {
		select {
		case ch <- v:
			delivered++
		default:
		}
	}
	return delivered
}

// Streams counts open streams for key.
func (h *Hub[T]) Streams(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams[key])
}
