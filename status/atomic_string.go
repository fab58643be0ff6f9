package status

import "sync/atomic"

// AtomicString holds a string readable from any goroutine
// Zero value is the empty string
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store replaces the value
func (s *AtomicString) Store(val string) {
	s.ptr.Store(&val)
}

// Load returns the value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
