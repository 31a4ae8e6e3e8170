package view

// ZoomHistory stores the horizontal zoom steps per nucleus tab.
type ZoomHistory struct {
	steps map[string][]Domain
}

// NewZoomHistory returns an empty history.
func NewZoomHistory() *ZoomHistory {
	return &ZoomHistory{steps: map[string][]Domain{}}
}

// Push records a zoom step for tab.
func (z *ZoomHistory) Push(tab string, d Domain) {
	z.steps[tab] = append(z.steps[tab], d)
}

// Pop removes and returns the latest step for tab.
func (z *ZoomHistory) Pop(tab string) (Domain, bool) {
	s := z.steps[tab]
	if len(s) == 0 {
		return Domain{}, false
	}

	d := s[len(s)-1]
	z.steps[tab] = s[:len(s)-1]

	return d, true
}

// Last returns the latest step for tab without removing it.
func (z *ZoomHistory) Last(tab string) (Domain, bool) {
	s := z.steps[tab]
	if len(s) == 0 {
		return Domain{}, false
	}

	return s[len(s)-1], true
}

// Len returns the number of steps recorded for tab.
func (z *ZoomHistory) Len(tab string) int {
	return len(z.steps[tab])
}

// Clear drops the history of tab.
func (z *ZoomHistory) Clear(tab string) {
	delete(z.steps, tab)
}
