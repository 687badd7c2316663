// Package event provides a small publish/subscribe primitive.
package event

import "sync"

// Handle identifies a registered handler.
type Handle uint64

// Source delivers values to registered handlers in registration order.
// The zero value is ready to use.
type Source[T any] struct {
	mu       sync.Mutex
	next     Handle
	order    []Handle
	handlers map[Handle]func(T)
}

// AddHandler registers fn and returns a handle for removing it.
func (s *Source[T]) AddHandler(fn func(T)) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handlers == nil {
		s.handlers = make(map[Handle]func(T))
	}
	s.next++
	h := s.next
	s.handlers[h] = fn
	s.order = append(s.order, h)
	return h
}

// RemoveHandler unregisters a handler. Once it returns, the handler is not
// called again, even by a Dispatch already in progress. Unknown handles are
// ignored.
func (s *Source[T]) RemoveHandler(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.handlers[h]; !ok {
		return
	}
	delete(s.handlers, h)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

// Dispatch calls every registered handler with v. Handlers may add or
// remove handlers while running; handlers added during a dispatch are not
// called until the next one.
func (s *Source[T]) Dispatch(v T) {
	s.mu.Lock()
	snapshot := append([]Handle(nil), s.order...)
	s.mu.Unlock()

	for _, h := range snapshot {
		s.mu.Lock()
		fn, ok := s.handlers[h]
		s.mu.Unlock()
		if ok {
			fn(v)
		}
	}
}

// HandlerCount returns the number of registered handlers.
func (s *Source[T]) HandlerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}
