package paging

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FrameTable", func() {
	var table *FrameTable

	BeforeEach(func() {
		table = NewFrameTable(3)
	})

	It("should start empty", func() {
		Expect(table.Size()).To(Equal(3))
		Expect(table.NumOccupied()).To(Equal(0))
		Expect(table.IsFull()).To(BeFalse())
		Expect(table.Snapshot()).To(Equal([]Slot{
			EmptySlot(), EmptySlot(), EmptySlot(),
		}))
	})

	It("should not find a page that is not loaded", func() {
		_, found := table.Find(1)
		Expect(found).To(BeFalse())
	})

	It("should fill the lowest empty slot first", func() {
		slot, found := table.FirstEmptySlot()
		Expect(found).To(BeTrue())
		Expect(slot).To(Equal(0))

		table.Load(0, 7, 0)

		slot, found = table.FirstEmptySlot()
		Expect(found).To(BeTrue())
		Expect(slot).To(Equal(1))
	})

	It("should report no empty slot when full", func() {
		table.Load(0, 1, 0)
		table.Load(1, 2, 1)
		table.Load(2, 3, 2)

		_, found := table.FirstEmptySlot()
		Expect(found).To(BeFalse())
		Expect(table.IsFull()).To(BeTrue())
	})

	It("should stamp load order and last use on load", func() {
		table.Load(1, 4, 5)

		slot, found := table.Find(4)
		Expect(found).To(BeTrue())
		Expect(slot).To(Equal(1))
		Expect(table.Frame(1)).To(Equal(Frame{
			Occupied:  true,
			PageID:    4,
			LoadOrder: 5,
			LastUsed:  5,
		}))
	})

	It("should only refresh last use on touch", func() {
		table.Load(0, 4, 0)
		table.Touch(0, 3)

		Expect(table.Frame(0).LoadOrder).To(Equal(0))
		Expect(table.Frame(0).LastUsed).To(Equal(3))
	})

	It("should overwrite an occupied slot without changing occupancy", func() {
		table.Load(0, 1, 0)
		table.Load(0, 2, 1)

		Expect(table.NumOccupied()).To(Equal(1))
		_, found := table.Find(1)
		Expect(found).To(BeFalse())
	})

	It("should keep snapshots independent of later changes", func() {
		table.Load(0, 1, 0)
		snapshot := table.Snapshot()

		table.Load(0, 2, 1)
		table.Load(1, 3, 2)

		Expect(snapshot).To(Equal([]Slot{
			OccupiedSlot(1), EmptySlot(), EmptySlot(),
		}))
	})

	It("should panic when a page would occupy two slots", func() {
		table.Load(0, 1, 0)
		Expect(func() { table.Load(1, 1, 1) }).To(Panic())
	})

	It("should panic when touching an empty slot", func() {
		Expect(func() { table.Touch(2, 0) }).To(Panic())
	})

	It("should panic when time goes backwards", func() {
		table.Load(0, 1, 4)
		Expect(func() { table.Load(1, 2, 4) }).To(Panic())
		Expect(func() { table.Touch(0, 3) }).To(Panic())
	})

	It("should panic on a table without frames", func() {
		Expect(func() { NewFrameTable(0) }).To(Panic())
	})
})

var _ = Describe("Slot", func() {
	It("should encode empty slots as null", func() {
		data, err := json.Marshal([]Slot{OccupiedSlot(3), EmptySlot(), OccupiedSlot(0)})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("[3,null,0]"))
	})

	It("should decode null as an empty slot", func() {
		var slots []Slot
		Expect(json.Unmarshal([]byte("[null,2]"), &slots)).To(Succeed())
		Expect(slots).To(Equal([]Slot{EmptySlot(), OccupiedSlot(2)}))
	})

	It("should format empty slots as dashes", func() {
		Expect(FormatSlots([]Slot{OccupiedSlot(1), EmptySlot()})).To(Equal("1 -"))
	})
})
