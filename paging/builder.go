package paging

// Builder can build simulators.
type Builder struct {
	ramSize      int
	maxPages     int
	policy       Policy
	victimFinder VictimFinder
	hooks        []Hook
}

// MakeBuilder returns a Builder for 3 frames, 10 pages and FIFO replacement.
func MakeBuilder() Builder {
	return Builder{
		ramSize:  3,
		maxPages: 10,
		policy:   PolicyFIFO,
	}
}

// WithRAMSize sets the number of physical frames.
func (b Builder) WithRAMSize(ramSize int) Builder {
	b.ramSize = ramSize
	return b
}

// WithMaxPages sets the size of the virtual address space in pages.
func (b Builder) WithMaxPages(maxPages int) Builder {
	b.maxPages = maxPages
	return b
}

// WithPolicy sets the replacement policy.
func (b Builder) WithPolicy(policy Policy) Builder {
	b.policy = policy
	return b
}

// WithVictimFinder replaces the victim finder the policy would select. The
// policy is still validated and reported.
func (b Builder) WithVictimFinder(victimFinder VictimFinder) Builder {
	b.victimFinder = victimFinder
	return b
}

// WithHook registers a hook on the built simulator.
func (b Builder) WithHook(hook Hook) Builder {
	b.hooks = append(append([]Hook(nil), b.hooks...), hook)
	return b
}

// Build creates a simulator in the Ready state.
func (b Builder) Build() *Simulator {
	s := &Simulator{
		ramSize:      b.ramSize,
		maxPages:     b.maxPages,
		policy:       b.policy,
		victimFinder: b.victimFinder,
		state:        StateReady,
	}

	for _, h := range b.hooks {
		s.AcceptHook(h)
	}

	return s
}
