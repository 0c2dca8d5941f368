package l2

// State is one of the four MESI coherence states a line may occupy.
type State int

const (
	// Invalid means the line holds no data; valid is false.
	Invalid State = iota
	// Modified means this cache holds the only copy and it is dirty.
	Modified
	// Exclusive means this cache holds the only clean copy.
	Exclusive
	// Shared means this cache holds a clean copy that may exist elsewhere.
	Shared
)

// String names a MESI state the way the simulation's log lines do.
func (s State) String() string {
	switch s {
	case Invalid:
		return "Invalid"
	case Modified:
		return "Modified"
	case Exclusive:
		return "Exclusive"
	case Shared:
		return "Shared"
	default:
		return "Unknown"
	}
}

// Line is a single way within a set: a tag plus MESI metadata. Valid and
// Dirty are tracked explicitly rather than derived purely from State, but
// every mutator in this package keeps them synchronized with it:
// valid iff state != Invalid, dirty only under Modified.
type Line struct {
	Tag   uint32
	State State
	Valid bool
	Dirty bool
}

// present reports whether the line currently holds a copy of some block.
func (l *Line) present() bool {
	return l.State != Invalid
}

// setState transitions the line to state, keeping Valid and Dirty in
// lockstep so no call site has to reason about the two bits separately.
func (l *Line) setState(s State) {
	l.State = s
	l.Valid = s != Invalid
	l.Dirty = s == Modified
}
