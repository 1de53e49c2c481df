package paging

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// minFaults explores every eviction choice and returns the smallest number
// of faults any replacement schedule can reach.
func minFaults(sequence []PageID, ramSize int, resident []PageID) int {
	if len(sequence) == 0 {
		return 0
	}

	p := sequence[0]
	for _, r := range resident {
		if r == p {
			return minFaults(sequence[1:], ramSize, resident)
		}
	}

	if len(resident) < ramSize {
		next := append(append([]PageID(nil), resident...), p)
		return 1 + minFaults(sequence[1:], ramSize, next)
	}

	best := -1
	for i := range resident {
		next := append([]PageID(nil), resident...)
		next[i] = p

		faults := minFaults(sequence[1:], ramSize, next)
		if best < 0 || faults < best {
			best = faults
		}
	}

	return 1 + best
}

func randomSequence(rng *rand.Rand, length, maxPages int) []PageID {
	s := make([]PageID, length)
	for i := range s {
		s[i] = PageID(rng.Intn(maxPages))
	}

	return s
}

// oppositeChecker evicts like LRU and checks that MRU would have chosen a
// different frame in the same state.
type oppositeChecker struct {
	lru       *LRUVictimFinder
	mru       *MRUVictimFinder
	decisions int
}

func (c *oppositeChecker) FindVictim(table *FrameTable, now int, remaining []PageID) int {
	lruVictim := c.lru.FindVictim(table, now, remaining)
	mruVictim := c.mru.FindVictim(table, now, remaining)

	if table.NumOccupied() > 1 {
		Expect(lruVictim).NotTo(Equal(mruVictim))
	}
	c.decisions++

	return lruVictim
}

// loadOrderHook follows loads and evictions and checks that evictions happen
// in load order.
type loadOrderHook struct {
	queue     []PageID
	evictions int
}

func (h *loadOrderHook) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosEvict:
		eviction := ctx.Item.(Eviction)
		Expect(eviction.Evicted).To(Equal(h.queue[0]))
		h.queue = append(h.queue[1:], eviction.Loaded)
		h.evictions++
	case HookPosStep:
		step := ctx.Item.(Step)
		if !step.IsHit && len(h.queue) < len(step.Frames) {
			h.queue = append(h.queue, step.PageID)
		}
	}
}

var _ = Describe("Trace properties", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(2024))
	})

	It("should count one step per reference", func() {
		for run := 0; run < 100; run++ {
			maxPages := 1 + rng.Intn(9)
			sequence := randomSequence(rng, 1+rng.Intn(50), maxPages)

			for _, policy := range AllPolicies() {
				result, err := Simulate(Request{
					Sequence:  sequence,
					RAMSize:   1 + rng.Intn(6),
					MaxPages:  maxPages,
					Algorithm: policy,
				})
				Expect(err).NotTo(HaveOccurred())

				Expect(result.Steps).To(HaveLen(len(sequence)))
				Expect(result.Hits + result.Faults).To(Equal(len(sequence)))
			}
		}
	})

	It("should mark a hit exactly when the page was resident before", func() {
		for run := 0; run < 100; run++ {
			maxPages := 1 + rng.Intn(9)
			ramSize := 1 + rng.Intn(6)
			sequence := randomSequence(rng, 1+rng.Intn(50), maxPages)

			for _, policy := range AllPolicies() {
				result, err := Simulate(Request{
					Sequence:  sequence,
					RAMSize:   ramSize,
					MaxPages:  maxPages,
					Algorithm: policy,
				})
				Expect(err).NotTo(HaveOccurred())

				before := make([]Slot, ramSize)
				for i := range before {
					before[i] = EmptySlot()
				}

				occupied := 0
				for _, step := range result.Steps {
					Expect(step.IsHit).To(Equal(containsPage(before, step.PageID)))
					Expect(step.Frames).To(HaveLen(ramSize))
					Expect(containsPage(step.Frames, step.PageID)).To(BeTrue())

					n := countOccupied(step.Frames)
					Expect(n).To(BeNumerically(">=", occupied))
					occupied = n

					before = step.Frames
				}
			}
		}
	})

	It("should evict in load order under FIFO", func() {
		for run := 0; run < 50; run++ {
			hook := &loadOrderHook{}
			s := MakeBuilder().
				WithRAMSize(1 + rng.Intn(4)).
				WithMaxPages(8).
				WithPolicy(PolicyFIFO).
				WithHook(hook).
				Build()

			_, err := s.Run(randomSequence(rng, 40, 8))
			Expect(err).NotTo(HaveOccurred())
		}
	})

	It("should make LRU and MRU pick different victims in the same state", func() {
		checker := &oppositeChecker{
			lru: NewLRUVictimFinder(),
			mru: NewMRUVictimFinder(),
		}

		for run := 0; run < 50; run++ {
			s := MakeBuilder().
				WithRAMSize(2 + rng.Intn(4)).
				WithMaxPages(9).
				WithPolicy(PolicyLRU).
				WithVictimFinder(checker).
				Build()

			_, err := s.Run(randomSequence(rng, 30, 9))
			Expect(err).NotTo(HaveOccurred())
		}

		Expect(checker.decisions).To(BeNumerically(">", 0))
	})

	It("should give OPTIMAL the fewest faults possible", func() {
		for run := 0; run < 60; run++ {
			maxPages := 2 + rng.Intn(4)
			ramSize := 1 + rng.Intn(3)
			sequence := randomSequence(rng, 1+rng.Intn(10), maxPages)

			faults := map[Policy]int{}
			for _, policy := range AllPolicies() {
				result, err := Simulate(Request{
					Sequence:  sequence,
					RAMSize:   ramSize,
					MaxPages:  maxPages,
					Algorithm: policy,
				})
				Expect(err).NotTo(HaveOccurred())
				faults[policy] = result.Faults
			}

			Expect(faults[PolicyOptimal]).To(Equal(minFaults(sequence, ramSize, nil)))
			for _, policy := range AllPolicies() {
				Expect(faults[PolicyOptimal]).To(BeNumerically("<=", faults[policy]))
			}
		}
	})
})

func containsPage(frames []Slot, p PageID) bool {
	for _, s := range frames {
		if !s.Empty && s.PageID == p {
			return true
		}
	}

	return false
}

func countOccupied(frames []Slot) int {
	n := 0
	for _, s := range frames {
		if !s.Empty {
			n++
		}
	}

	return n
}
