package l2

// This file holds the eight trace-driven operation handlers. Each one
// combines lookup, coherence-transition decision, eviction, and event
// emission into a single straight-line transaction over one trace entry,
// exactly as spec.md §4.6 enumerates case by case.

// logHeader emits the common header line every handler's log entry
// starts with, followed by the decomposed address line.
func (c *Cache) logHeader(op Op, addr uint32, a Address) {
	c.sink.Printf("Operation: %s (code %d), Address: 0x%08X\n", op, int(op), addr)
	c.sink.Printf("  Decomposed Address: ByteOffset=0x%X, Index=0x%X, Tag=0x%X\n", a.ByteOffset, a.Index, a.Tag)
}

// evictVictim runs the eviction side effects (write-back messaging for a
// Modified victim, plain eviction messaging otherwise) for the way the
// set's PLRU currently names as victim, without mutating set state. The
// caller invalidates and reinstalls the returned way once it has issued
// whatever bus operation the miss itself requires, matching the order
// spec.md §4.6.1 specifies: eviction messaging, then the miss's own
// bus_op, then invalidate.
func (c *Cache) evictVictim(set *Set, index uint32) int {
	way := set.plru.victim()
	victim := set.line(way)
	victimAddr := Aligned(victim.Tag, index)
	if victim.State == Modified {
		c.bus.MessageToCache(GetLine, victimAddr)
		c.bus.MessageToCache(InvalidateLine, victimAddr)
		c.bus.BusOperation(BusWrite, victimAddr, 0)
	} else {
		c.bus.MessageToCache(EvictLine, victimAddr)
	}
	return way
}

// snoopResultFor reports this cache's response to a peer-initiated bus
// transaction for a line it holds in state: Modified lines report Hitm
// (dirty data only this cache has), Exclusive/Shared lines report Hit,
// anything else reports NoHit.
func snoopResultFor(state State) SnoopResult {
	switch state {
	case Modified:
		return Hitm
	case Exclusive, Shared:
		return Hit
	default:
		return NoHit
	}
}

// missInstallState derives the state a newly installed line takes after
// a read-driven miss, from the snoop result of the read that fetched it:
// Shared if any other cache holds a copy, Exclusive otherwise.
func missInstallState(snoop SnoopResult) State {
	if snoop == Hit || snoop == Hitm {
		return Shared
	}
	return Exclusive
}

// readLike implements the shared semantics of L1 Data Read (code 0) and
// L1 Instruction Read (code 2); the two codes differ only in which
// per-kind counter they feed.
func (c *Cache) readLike(addr uint32, op Op) error {
	a := Decompose(addr)
	set := c.set(a.Index)
	aligned := Aligned(a.Tag, a.Index)
	c.logHeader(op, addr, a)

	if way, ok := set.lookup(a.Tag); ok {
		line := set.line(way)
		set.plru.touch(way)
		c.bus.MessageToCache(SendLine, aligned)
		c.Stats.Hits++
		c.sink.Printf("  Hit: way=%d, state=%s\n", way, line.State)
		return nil
	}

	var way int
	if w, ok := set.firstInvalid(); ok {
		way = w
		snoop := c.bus.BusOperation(BusRead, aligned, a.ByteOffset)
		set.install(way, a.Tag, missInstallState(snoop))
	} else {
		way = c.evictVictim(set, a.Index)
		snoop := c.bus.BusOperation(BusRead, aligned, a.ByteOffset)
		set.invalidate(way)
		set.install(way, a.Tag, missInstallState(snoop))
	}
	set.plru.touch(way)
	c.bus.MessageToCache(SendLine, aligned)
	c.Stats.Misses++
	c.sink.Printf("  Miss: installed way=%d, state=%s\n", way, set.line(way).State)
	return nil
}

// handleRead is the L1 Data Read handler (code 0).
func (c *Cache) handleRead(addr uint32) error {
	c.Stats.DataReads++
	return c.readLike(addr, DataRead)
}

// handleInstructionRead is the L1 Instruction Read handler (code 2).
func (c *Cache) handleInstructionRead(addr uint32) error {
	c.Stats.InstructionReads++
	return c.readLike(addr, InstRead)
}

// handleWrite is the L1 Data Write handler (code 1).
func (c *Cache) handleWrite(addr uint32) error {
	c.Stats.DataWrites++
	a := Decompose(addr)
	set := c.set(a.Index)
	aligned := Aligned(a.Tag, a.Index)
	c.logHeader(DataWrite, addr, a)

	if way, ok := set.lookup(a.Tag); ok {
		line := set.line(way)
		switch line.State {
		case Shared:
			c.bus.BusOperation(BusInvalidate, aligned, 0)
		case Exclusive, Modified:
			// already owned exclusively; no bus traffic required.
		case Invalid:
			err := &ProtocolError{Op: DataWrite, Addr: aligned, Message: "hit reported on Invalid line"}
			c.sink.Printf("  Error: %s\n", err)
			c.Stats.ProtocolErrors++
			return err
		}
		line.setState(Modified)
		set.plru.touch(way)
		c.bus.MessageToCache(SendLine, aligned)
		c.Stats.Writes++
		c.Stats.Hits++
		c.sink.Printf("  Hit: way=%d, state=%s, dirty=%t\n", way, line.State, line.Dirty)
		return nil
	}

	var way int
	if w, ok := set.firstInvalid(); ok {
		way = w
		c.bus.BusOperation(BusRwim, aligned, 0)
		set.install(way, a.Tag, Modified)
	} else {
		way = c.evictVictim(set, a.Index)
		c.bus.BusOperation(BusRwim, aligned, 0)
		set.invalidate(way)
		set.install(way, a.Tag, Modified)
	}
	set.plru.touch(way)
	c.bus.MessageToCache(SendLine, aligned)
	c.Stats.Writes++
	c.Stats.Misses++
	c.sink.Printf("  Miss: installed way=%d, state=%s, dirty=%t\n", way, set.line(way).State, set.line(way).Dirty)
	return nil
}

// handleSnoopedRead is the Snooped Read handler (code 3).
func (c *Cache) handleSnoopedRead(addr uint32) error {
	c.Stats.SnoopReads++
	a := Decompose(addr)
	set := c.set(a.Index)
	aligned := Aligned(a.Tag, a.Index)
	c.logHeader(SnoopRead, addr, a)

	way, ok := set.lookup(a.Tag)
	if !ok {
		c.bus.PutSnoopResult(aligned, NoHit)
		c.sink.Printf("  Not present; no action.\n")
		return nil
	}
	line := set.line(way)
	c.bus.PutSnoopResult(aligned, snoopResultFor(line.State))
	switch line.State {
	case Modified:
		c.bus.BusOperation(BusWrite, aligned, 0)
		c.bus.MessageToCache(GetLine, aligned)
		line.setState(Shared)
	case Exclusive:
		c.bus.MessageToCache(GetLine, aligned)
		line.setState(Shared)
	case Shared:
		// no change.
	case Invalid:
		// present() already excludes this; nothing to do.
	}
	c.sink.Printf("  way=%d, new state=%s\n", way, line.State)
	return nil
}

// handleSnoopedWrite is the Snooped Write handler (code 4). The
// reference implementation leaves this handler empty in every retrieved
// revision; this implements the real semantics: any present line,
// regardless of state, is invalidated, with a write-back first if it was
// Modified.
func (c *Cache) handleSnoopedWrite(addr uint32) error {
	c.Stats.SnoopWrites++
	a := Decompose(addr)
	set := c.set(a.Index)
	aligned := Aligned(a.Tag, a.Index)
	c.logHeader(SnoopWrite, addr, a)

	way, ok := set.lookup(a.Tag)
	if !ok {
		c.bus.PutSnoopResult(aligned, NoHit)
		c.sink.Printf("  Not present; no action.\n")
		return nil
	}
	line := set.line(way)
	c.bus.PutSnoopResult(aligned, snoopResultFor(line.State))
	if line.State == Modified {
		c.bus.BusOperation(BusWrite, aligned, 0)
	}
	set.invalidate(way)
	c.sink.Printf("  way=%d invalidated\n", way)
	return nil
}

// handleSnoopedRwim is the Snooped RWIM handler (code 5).
func (c *Cache) handleSnoopedRwim(addr uint32) error {
	c.Stats.SnoopRwims++
	a := Decompose(addr)
	set := c.set(a.Index)
	aligned := Aligned(a.Tag, a.Index)
	c.logHeader(SnoopRwim, addr, a)

	way, ok := set.lookup(a.Tag)
	if !ok {
		c.bus.PutSnoopResult(aligned, NoHit)
		c.sink.Printf("  Not present; no action.\n")
		return nil
	}
	line := set.line(way)
	c.bus.PutSnoopResult(aligned, snoopResultFor(line.State))
	switch line.State {
	case Modified:
		c.bus.MessageToCache(GetLine, aligned)
		c.bus.MessageToCache(InvalidateLine, aligned)
		c.bus.BusOperation(BusWrite, aligned, 0)
	case Exclusive, Shared:
		c.bus.MessageToCache(InvalidateLine, aligned)
	case Invalid:
		// present() already excludes this; nothing to do.
	}
	set.invalidate(way)
	c.sink.Printf("  way=%d invalidated\n", way)
	return nil
}

// handleSnoopedInvalidate is the Snooped Invalidate handler (code 6).
func (c *Cache) handleSnoopedInvalidate(addr uint32) error {
	c.Stats.SnoopInvalidates++
	a := Decompose(addr)
	set := c.set(a.Index)
	aligned := Aligned(a.Tag, a.Index)
	c.logHeader(SnoopInvalidate, addr, a)

	way, ok := set.lookup(a.Tag)
	if !ok {
		c.bus.PutSnoopResult(aligned, NoHit)
		c.sink.Printf("  Not present; no action.\n")
		return nil
	}
	line := set.line(way)
	c.bus.PutSnoopResult(aligned, snoopResultFor(line.State))
	switch line.State {
	case Shared:
		c.bus.MessageToCache(InvalidateLine, aligned)
		set.invalidate(way)
		c.sink.Printf("  way=%d invalidated\n", way)
		return nil
	case Modified, Exclusive:
		err := &ProtocolError{
			Op:      SnoopInvalidate,
			Addr:    aligned,
			Message: "snooped invalidate arrived at a line held " + line.State.String(),
		}
		c.sink.Printf("  Error: %s\n", err)
		c.Stats.ProtocolErrors++
		return err
	default: // Invalid
		c.sink.Printf("  Already Invalid; no action.\n")
		return nil
	}
}

// handleClearCache is the Clear Cache handler (code 8). It writes back
// every dirty line before resetting the entire array, the in-place
// equivalent of re-initialization spec.md §5 calls for.
func (c *Cache) handleClearCache(addr uint32) error {
	c.sink.Printf("Operation: %s (code %d)\n", ClearCache, int(ClearCache))
	for index := range c.sets {
		set := &c.sets[index]
		for way := range set.lines {
			line := &set.lines[way]
			if line.Dirty {
				c.bus.BusOperation(BusWrite, Aligned(line.Tag, uint32(index)), 0)
			}
		}
	}
	c.Reset()
	c.sink.Printf("  Cache successfully cleared.\n")
	return nil
}

// handlePrintState is the Print Cache State handler (code 9). It is a
// pure observer: no set, line, or PLRU state is mutated.
func (c *Cache) handlePrintState(addr uint32) error {
	c.sink.Printf("Operation: %s (code %d)\n", PrintState, int(PrintState))
	for index := range c.sets {
		set := &c.sets[index]
		printed := false
		set.iterValid(func(way int, line Line) {
			if !printed {
				c.sink.Printf("  Set 0x%X:\n", index)
				printed = true
			}
			c.sink.Printf("    way=%d tag=0x%X state=%s dirty=%t\n", way, line.Tag, line.State, line.Dirty)
		})
	}
	return nil
}
