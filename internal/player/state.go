// Package player is the control core: playback state, the input
// dispatcher, the animation driver and the main loop that ties them
// together once per tick.
package player

// WrapIndex maps any integer onto [0, total), wrapping negatives from a
// decrement at zero back to the last item.
func WrapIndex(i, total int) int {
	if total <= 0 {
		return 0
	}
	return ((i % total) + total) % total
}

// State is the playback state owned by the main loop. Only the dispatcher
// mutates it, and only the driver applies a staged pending index.
// Brightness changes never touch the index and vice versa.
type State struct {
	index      int
	pending    int // staged target index, -1 when none
	brightness int

	total     int
	maxBright int
}

// NewState returns playback state positioned at item 0.
func NewState(totalItems, initialBrightness, maxBrightness int) *State {
	return &State{
		pending:    -1,
		brightness: clamp(initialBrightness, 0, maxBrightness),
		total:      totalItems,
		maxBright:  maxBrightness,
	}
}

// Index returns the currently applied item index.
func (s *State) Index() int { return s.index }

// TotalItems returns the catalog size the state wraps over.
func (s *State) TotalItems() int { return s.total }

// Brightness returns the current brightness in [0, max].
func (s *State) Brightness() int { return s.brightness }

// Navigate applies delta to the index immediately, wrapping, and returns
// the new index.
func (s *State) Navigate(delta int) int {
	s.index = WrapIndex(s.index+delta, s.total)
	s.pending = -1
	return s.index
}

// RequestNavigate stages delta for the driver to apply on its next tick
// and returns the pending index. Repeated requests accumulate before the
// driver picks them up.
func (s *State) RequestNavigate(delta int) int {
	base := s.index
	if s.pending >= 0 {
		base = s.pending
	}
	s.pending = WrapIndex(base+delta, s.total)
	return s.pending
}

// TakePending applies and clears any staged index. The second return is
// false when nothing was staged.
func (s *State) TakePending() (int, bool) {
	if s.pending < 0 {
		return s.index, false
	}
	s.index = s.pending
	s.pending = -1
	return s.index, true
}

// AdjustBrightness applies delta clamped to [0, max] and returns the new
// brightness.
func (s *State) AdjustBrightness(delta int) int {
	s.brightness = clamp(s.brightness+delta, 0, s.maxBright)
	return s.brightness
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
