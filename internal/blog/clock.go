package blog

import "time"

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Today returns the clock's current calendar date in DateLayout.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// IDGenerator abstracts post identifier generation so tests are deterministic.
type IDGenerator interface {
	New() int64
}

// MillisIDGenerator derives identifiers from the clock in Unix milliseconds.
// Two calls within the same millisecond (or a clock that steps backwards)
// yield the previous identifier plus one, so identifiers issued by one
// generator never repeat.
type MillisIDGenerator struct {
	clock Clock
	last  int64
}

func NewMillisIDGenerator(clock Clock) *MillisIDGenerator {
	return &MillisIDGenerator{clock: clock}
}

func (g *MillisIDGenerator) New() int64 {
	id := g.clock.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
