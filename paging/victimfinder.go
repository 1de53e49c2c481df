package paging

import "fmt"

// A VictimFinder decides which frame should be evicted.
//
// FindVictim is only called on a miss when every frame is occupied. now is
// the timestep of the reference being serviced and remaining holds the
// references strictly after it.
type VictimFinder interface {
	FindVictim(table *FrameTable, now int, remaining []PageID) int
}

// NewVictimFinder returns the victim finder of a policy. The sequence is the
// full reference string of the run; only OPTIMAL reads it.
func NewVictimFinder(policy Policy, sequence []PageID) VictimFinder {
	switch policy {
	case PolicyFIFO:
		return NewFIFOVictimFinder()
	case PolicyLRU:
		return NewLRUVictimFinder()
	case PolicyMRU:
		return NewMRUVictimFinder()
	case PolicyOptimal:
		return NewIndexedOptimalVictimFinder(sequence)
	}

	panic(fmt.Sprintf("unknown policy %d", int(policy)))
}

// FIFOVictimFinder evicts the page that was loaded first.
type FIFOVictimFinder struct {
}

// NewFIFOVictimFinder returns a newly constructed FIFO victim finder.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return new(FIFOVictimFinder)
}

// FindVictim returns the slot with the smallest load order.
func (e *FIFOVictimFinder) FindVictim(
	table *FrameTable,
	_ int,
	_ []PageID,
) int {
	return selectSlot(table, func(candidate, best Frame) bool {
		return candidate.LoadOrder < best.LoadOrder
	})
}

// LRUVictimFinder evicts the least recently used page.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed LRU victim finder.
func NewLRUVictimFinder() *LRUVictimFinder {
	return new(LRUVictimFinder)
}

// FindVictim returns the slot with the smallest last-used stamp.
func (e *LRUVictimFinder) FindVictim(
	table *FrameTable,
	_ int,
	_ []PageID,
) int {
	return selectSlot(table, func(candidate, best Frame) bool {
		return candidate.LastUsed < best.LastUsed
	})
}

// MRUVictimFinder evicts the most recently used page, i.e. the page
// referenced right before the fault.
type MRUVictimFinder struct {
}

// NewMRUVictimFinder returns a newly constructed MRU victim finder.
func NewMRUVictimFinder() *MRUVictimFinder {
	return new(MRUVictimFinder)
}

// FindVictim returns the slot with the largest last-used stamp. Equal stamps
// resolve to the lowest slot.
func (e *MRUVictimFinder) FindVictim(
	table *FrameTable,
	_ int,
	_ []PageID,
) int {
	return selectSlot(table, func(candidate, best Frame) bool {
		return candidate.LastUsed > best.LastUsed
	})
}

// selectSlot walks the occupied frames in slot order and keeps the first
// frame that no later frame beats.
func selectSlot(table *FrameTable, beats func(candidate, best Frame) bool) int {
	victim := -1

	for i, f := range table.Frames {
		if !f.Occupied {
			continue
		}

		if victim < 0 || beats(f, table.Frames[victim]) {
			victim = i
		}
	}

	if victim < 0 {
		panic("no occupied frame to evict")
	}

	return victim
}
