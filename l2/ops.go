package l2

import (
	"fmt"

	"github.com/golang/glog"
)

// Op is a trace operation code, the authoritative set from the external
// trace format. Codes 8 and 9 carry no address.
type Op int

const (
	DataRead        Op = 0
	DataWrite       Op = 1
	InstRead        Op = 2
	SnoopRead       Op = 3
	SnoopWrite      Op = 4
	SnoopRwim       Op = 5
	SnoopInvalidate Op = 6
	ClearCache      Op = 8
	PrintState      Op = 9
)

// String names an operation the way the authoritative code table does.
func (op Op) String() string {
	switch op {
	case DataRead:
		return "L1 data read"
	case DataWrite:
		return "L1 data write"
	case InstRead:
		return "L1 instruction read"
	case SnoopRead:
		return "Snooped read"
	case SnoopWrite:
		return "Snooped write"
	case SnoopRwim:
		return "Snooped RWIM"
	case SnoopInvalidate:
		return "Snooped invalidate"
	case ClearCache:
		return "Clear cache"
	case PrintState:
		return "Print cache state"
	default:
		return "Unknown"
	}
}

// RequiresAddress reports whether op needs an address to process (every
// code except the two cache-wide operations).
func (op Op) RequiresAddress() bool {
	return op != ClearCache && op != PrintState
}

// operation is one entry of the dispatch table: a handler bound to its
// operation code, mirroring the teacher's instruction-table pattern of
// mapping a code to an execute function rather than a long switch spread
// across Apply.
type operation struct {
	code    Op
	execute func(c *Cache, addr uint32) error
}

// dispatch is the operation-code -> handler table. Built once at package
// init, the same shape as a 256-entry CPU instruction table but keyed by
// the trace format's sparse op codes instead of a dense byte range.
var dispatch = map[Op]operation{
	DataRead:        {DataRead, (*Cache).handleRead},
	DataWrite:       {DataWrite, (*Cache).handleWrite},
	InstRead:        {InstRead, (*Cache).handleInstructionRead},
	SnoopRead:       {SnoopRead, (*Cache).handleSnoopedRead},
	SnoopWrite:      {SnoopWrite, (*Cache).handleSnoopedWrite},
	SnoopRwim:       {SnoopRwim, (*Cache).handleSnoopedRwim},
	SnoopInvalidate: {SnoopInvalidate, (*Cache).handleSnoopedInvalidate},
	ClearCache:      {ClearCache, (*Cache).handleClearCache},
	PrintState:      {PrintState, (*Cache).handlePrintState},
}

// Apply dispatches addr (ignored by ClearCache and PrintState) to op's
// handler. The trace parser does not check op codes, so an unrecognized
// code reaches Apply, which reports it as an input error on stderr and
// the sink and returns it rather than silently ignoring it.
func (c *Cache) Apply(op Op, addr uint32) error {
	entry, ok := dispatch[op]
	if !ok {
		glog.Errorf("l2: no handler registered for op code %d", int(op))
		c.sink.Printf("Error: unrecognized operation code %d\n", int(op))
		return fmt.Errorf("unrecognized operation code %d", int(op))
	}
	return entry.execute(c, addr)
}
