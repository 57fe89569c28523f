package storage

import (
	"sync"

	"github.com/unscroll/unscroll/internal/logger"
)

type subscribers struct {
	mu   sync.RWMutex
	next int
	fns  map[int]ChangeFunc
}

func (s *subscribers) Subscribe(fn ChangeFunc) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]ChangeFunc)
	}
	id := s.next
	s.next++
	s.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.fns, id)
			s.mu.Unlock()
		})
	}
}

// publish calls every subscriber outside the lock; a panicking subscriber
// is logged and does not stop the others.
func (s *subscribers) publish(key string) {
	s.mu.RLock()
	fns := make([]ChangeFunc, 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Storage subscriber panicked", "key", key, "panic", r)
				}
			}()
			fn(key)
		}()
	}
}
