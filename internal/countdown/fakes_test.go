package countdown

import (
	"context"
	"sync"

	"github.com/1dinos/desafio-cronometro/internal/domain"
)

// fakeStore is an in-memory SnapshotStore recording every write.
type fakeStore struct {
	mu       sync.Mutex
	timers   domain.TimerSet
	readErr  error
	writeErr error
	writes   []domain.TimerSet
}

func (s *fakeStore) ReadAll(_ context.Context) (domain.TimerSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.timers.Clone(), nil
}

func (s *fakeStore) ReplaceAll(_ context.Context, timers domain.TimerSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.timers = timers.Clone()
	s.writes = append(s.writes, timers.Clone())
	return nil
}

func (s *fakeStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}

func (s *fakeStore) writtenRemainings(id string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int
	for _, set := range s.writes {
		if i := set.IndexOf(id); i >= 0 {
			out = append(out, set[i].TimeRemaining)
		}
	}
	return out
}

// fakeChannel is an in-memory BroadcastChannel with synchronous loopback
// delivery to every attached handler, publisher included.
type fakeChannel struct {
	mu          sync.Mutex
	published   []domain.SetSnapshot
	subscribers []func(domain.SetSnapshot)
	publishErr  error
}

func (c *fakeChannel) Publish(_ context.Context, snapshot domain.SetSnapshot) error {
	c.mu.Lock()
	if c.publishErr != nil {
		c.mu.Unlock()
		return c.publishErr
	}
	c.published = append(c.published, snapshot)
	subscribers := make([]func(domain.SetSnapshot), len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	for _, deliver := range subscribers {
		deliver(snapshot)
	}
	return nil
}

func (c *fakeChannel) Subscribe(ctx context.Context, handler func(domain.SetSnapshot)) error {
	c.attach(handler)
	<-ctx.Done()
	return ctx.Err()
}

func (c *fakeChannel) attach(handler func(domain.SetSnapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, handler)
}

func (c *fakeChannel) Connected() bool { return true }

func (c *fakeChannel) publishCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.published)
}

// fakeCache is an in-memory FallbackCache.
type fakeCache struct {
	mu       sync.Mutex
	snapshot domain.SetSnapshot
	ok       bool
	writes   int
}

func (c *fakeCache) Write(snapshot domain.SetSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot
	c.ok = len(snapshot.Timers) > 0
	c.writes++
}

func (c *fakeCache) Read() (domain.SetSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot, c.ok
}

func (c *fakeCache) writeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}
