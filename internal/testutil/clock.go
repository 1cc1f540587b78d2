package testutil

import (
	"sync"
	"time"
)

// StubClock returns a fixed time. Safe for concurrent use.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewStubClock creates a StubClock set to the given time.
func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// FixedClock returns a StubClock set to 2024-01-15 10:30:00 UTC.
func FixedClock() *StubClock {
	return NewStubClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// StubIDGenerator returns sequential IDs starting at 1.
type StubIDGenerator struct {
	mu   sync.Mutex
	next int64
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

// NewStubIDGeneratorFrom returns a generator whose first ID is first.
func NewStubIDGeneratorFrom(first int64) *StubIDGenerator {
	return &StubIDGenerator{next: first - 1}
}

func (g *StubIDGenerator) New() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return g.next
}
