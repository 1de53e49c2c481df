package paging

import "fmt"

// OptimalVictimFinder implements Bélády's algorithm by scanning the rest of
// the reference string on every fault.
type OptimalVictimFinder struct {
}

// NewOptimalVictimFinder returns a newly constructed scanning OPTIMAL victim
// finder.
func NewOptimalVictimFinder() *OptimalVictimFinder {
	return new(OptimalVictimFinder)
}

// FindVictim returns the slot whose page is referenced again furthest in the
// future. Pages that are never referenced again are furthest of all; among
// them the lowest slot wins.
func (e *OptimalVictimFinder) FindVictim(
	table *FrameTable,
	_ int,
	remaining []PageID,
) int {
	victim := -1
	farthest := -1

	for i, f := range table.Frames {
		if !f.Occupied {
			continue
		}

		next := nextOccurrence(f.PageID, remaining)
		if next > farthest {
			victim = i
			farthest = next
		}
	}

	if victim < 0 {
		panic("no occupied frame to evict")
	}

	return victim
}

// nextOccurrence returns the index of p in refs, or len(refs) when p does not
// occur.
func nextOccurrence(p PageID, refs []PageID) int {
	for i, r := range refs {
		if r == p {
			return i
		}
	}

	return len(refs)
}

// IndexedOptimalVictimFinder picks the same victims as OptimalVictimFinder
// but answers each fault in O(frames) from a next-use index built once per
// run.
//
// It relies on Frame.LastUsed being the sequence index of the last reference
// to the page, which is how the Simulator stamps frames.
type IndexedOptimalVictimFinder struct {
	nextUse []int
}

// NewIndexedOptimalVictimFinder builds the next-use index of a sequence.
func NewIndexedOptimalVictimFinder(sequence []PageID) *IndexedOptimalVictimFinder {
	e := &IndexedOptimalVictimFinder{
		nextUse: make([]int, len(sequence)),
	}

	lastSeen := make(map[PageID]int)
	for i := len(sequence) - 1; i >= 0; i-- {
		next, ok := lastSeen[sequence[i]]
		if !ok {
			next = len(sequence)
		}

		e.nextUse[i] = next
		lastSeen[sequence[i]] = i
	}

	return e
}

// NextUse returns the index of the next reference to the page referenced at
// position i, or the sequence length if there is none.
func (e *IndexedOptimalVictimFinder) NextUse(i int) int {
	return e.nextUse[i]
}

// FindVictim returns the slot whose page is referenced again furthest in the
// future, lowest slot first on ties.
func (e *IndexedOptimalVictimFinder) FindVictim(
	table *FrameTable,
	now int,
	_ []PageID,
) int {
	victim := -1
	farthest := -1

	for i, f := range table.Frames {
		if !f.Occupied {
			continue
		}

		if f.LastUsed < 0 || f.LastUsed >= len(e.nextUse) || f.LastUsed >= now {
			panic(fmt.Sprintf("slot %d has stamp %d outside the sequence before %d",
				i, f.LastUsed, now))
		}

		next := e.nextUse[f.LastUsed]
		if next > farthest {
			victim = i
			farthest = next
		}
	}

	if victim < 0 {
		panic("no occupied frame to evict")
	}

	return victim
}
