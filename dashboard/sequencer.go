package dashboard

import (
	"context"
	"sync"
)

// Sequencer orders overlapping requests for the same view. Acquiring a
// key cancels whoever held it before, so a slow, older filter request can
// never render over a newer one.
type Sequencer struct {
	mu       sync.Mutex
	next     uint64
	inflight map[string]holder
}

type holder struct {
	gen    uint64
	cancel context.CancelFunc
}

func NewSequencer() *Sequencer {
	return &Sequencer{inflight: make(map[string]holder)}
}

// Lease is one request's claim on a key.
type Lease struct {
	seq    *Sequencer
	key    string
	gen    uint64
	cancel context.CancelFunc
}

// Acquire claims key for a new request and returns a context that is
// cancelled as soon as a newer request claims the same key.
func (s *Sequencer) Acquire(ctx context.Context, key string) (context.Context, *Lease) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.inflight[key]; ok {
		prev.cancel()
	}
	s.next++
	s.inflight[key] = holder{gen: s.next, cancel: cancel}

	return ctx, &Lease{seq: s, key: key, gen: s.next, cancel: cancel}
}

// Current reports whether no newer request has claimed the key.
func (l *Lease) Current() bool {
	l.seq.mu.Lock()
	defer l.seq.mu.Unlock()
	h, ok := l.seq.inflight[l.key]
	return ok && h.gen == l.gen
}

// Release frees the key if this lease still holds it. Safe to call twice.
func (l *Lease) Release() {
	l.cancel()

	l.seq.mu.Lock()
	defer l.seq.mu.Unlock()
	if h, ok := l.seq.inflight[l.key]; ok && h.gen == l.gen {
		delete(l.seq.inflight, l.key)
	}
}

func (s *Sequencer) inFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight)
}
