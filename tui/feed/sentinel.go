package feed

type sentinelState int

const (
	sentinelIdle sentinelState = iota
	sentinelAtThreshold
)

// Sentinel turns "the end of the list is on screen" observations into
// load-next-page events. It fires once each time the marker enters the
// viewport and re-arms when it leaves. There is no debounce: toggling
// visibility quickly fires once per entry.
type Sentinel struct {
	state sentinelState
}

// Observe records the marker's current visibility and reports whether
// this observation is a threshold crossing that should advance the page.
func (s *Sentinel) Observe(visible bool) bool {
	if !visible {
		s.state = sentinelIdle
		return false
	}
	if s.state == sentinelAtThreshold {
		return false
	}
	s.state = sentinelAtThreshold
	return true
}

// AtThreshold reports whether the marker is currently in view.
func (s Sentinel) AtThreshold() bool {
	return s.state == sentinelAtThreshold
}

// Reset re-arms the sentinel.
func (s *Sentinel) Reset() {
	s.state = sentinelIdle
}
