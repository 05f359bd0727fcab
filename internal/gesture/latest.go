package gesture

import "sync/atomic"

// Latest is a single-slot cell holding the most recent Sample. Stores
// overwrite, loads never block, and the zero value reads as undetected.
type Latest struct {
	p atomic.Pointer[Sample]
}

// Store replaces the held sample.
func (l *Latest) Store(s Sample) {
	if !s.Detected {
		s.Expansion = 0
	}
	l.p.Store(&s)
}

// Load returns the most recent sample.
func (l *Latest) Load() Sample {
	if s := l.p.Load(); s != nil {
		return *s
	}
	return Sample{}
}

// Reset clears the cell back to undetected.
func (l *Latest) Reset() {
	l.p.Store(nil)
}
