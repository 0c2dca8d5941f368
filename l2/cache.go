package l2

// Stats aggregates the counters the final report printer summarizes:
// the base hit/miss/write counts spec.md requires plus the
// per-operation-kind breakdown the original implementation tracked and
// the distilled trace format otherwise loses.
type Stats struct {
	Hits             int
	Misses           int
	Writes           int
	DataReads        int
	InstructionReads int
	DataWrites       int
	SnoopReads       int
	SnoopWrites      int
	SnoopRwims       int
	SnoopInvalidates int
	ProtocolErrors   int
}

// Cache is the owned, threadable state of the simulated L2: the set
// array plus the bus it talks through and the sink it logs to. It
// replaces the reference implementation's process-wide globals with a
// single value handlers operate on, making multiple independent runs
// (and tests) trivial.
type Cache struct {
	sets  [NumSets]Set
	bus   *Bus
	sink  LogSink
	Stats Stats
}

// NewCache constructs an empty cache (every line Invalid, every PLRU
// zeroed) logging to sink.
func NewCache(sink LogSink) *Cache {
	return &Cache{
		bus:  NewBus(sink),
		sink: sink,
	}
}

// Reset returns every set to its initial empty state: every line
// Invalid, every PLRU tree zeroed. Statistics are untouched — a clear
// of the cache array is not a reset of the run's counters, matching the
// reference implementation's clear-cache handler.
func (c *Cache) Reset() {
	for i := range c.sets {
		c.sets[i].reset()
	}
}

// set returns the set addressed by index.
func (c *Cache) set(index uint32) *Set {
	return &c.sets[index]
}
