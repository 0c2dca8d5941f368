package l2

// Set is one row of the cache: Ways parallel lines plus the PLRU state
// that governs eviction among them. The set owns its PLRU state
// exclusively; no other component mutates it.
type Set struct {
	lines [Ways]Line
	plru  plruState
}

// lookup scans every way for a valid line matching tag and returns its
// way index. Ties are impossible if the one-valid-line-per-tag invariant
// holds; lookup returns the first match it finds.
func (s *Set) lookup(tag uint32) (way int, ok bool) {
	for w := range s.lines {
		if s.lines[w].present() && s.lines[w].Tag == tag {
			return w, true
		}
	}
	return 0, false
}

// firstInvalid returns the way index of the first line not currently
// present, for miss-fill before eviction becomes necessary.
func (s *Set) firstInvalid() (way int, ok bool) {
	for w := range s.lines {
		if !s.lines[w].present() {
			return w, true
		}
	}
	return 0, false
}

// install overwrites the line at way with tag and state. Dirty is reset
// to false unless state is Modified.
func (s *Set) install(way int, tag uint32, state State) {
	s.lines[way].Tag = tag
	s.lines[way].setState(state)
}

// invalidate returns the line at way to its initial Invalid state,
// zeroing its tag and clearing valid/dirty.
func (s *Set) invalidate(way int) {
	s.lines[way].Tag = 0
	s.lines[way].setState(Invalid)
}

// line returns a pointer to the line at way, for handlers that need to
// inspect or mutate state in place (e.g. a Modified->Shared transition
// that does not change the tag).
func (s *Set) line(way int) *Line {
	return &s.lines[way]
}

// iterValid calls fn for every present line in the set, in way order.
func (s *Set) iterValid(fn func(way int, line Line)) {
	for w := range s.lines {
		if s.lines[w].present() {
			fn(w, s.lines[w])
		}
	}
}

// reset returns every line in the set to Invalid and clears PLRU state,
// the in-place equivalent of re-initializing the set.
func (s *Set) reset() {
	for w := range s.lines {
		s.invalidate(w)
	}
	s.plru = 0
}
