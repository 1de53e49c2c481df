package monitoring

import (
	"bytes"

	"github.com/google/pprof/profile"
	"github.com/sarchlab/pagesim/paging"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Monitor", func() {
	It("should dump a frame table", func() {
		table := paging.NewFrameTable(2)
		table.Load(0, 3, 0)

		buf := new(bytes.Buffer)
		err := DumpState(buf, table, 2)

		Expect(err).NotTo(HaveOccurred())
		Expect(buf.Len()).To(BeNumerically(">", 0))
	})

	It("should measure the process", func() {
		resources, err := ResourceUsage()

		Expect(err).NotTo(HaveOccurred())
		Expect(resources.MemorySize).To(BeNumerically(">", 0))
		Expect(resources.CPUPercent).To(BeNumerically(">=", 0))
	})

	It("should profile a function", func() {
		called := false

		summary, err := ProfileCPU(func() {
			called = true
			sequence := make([]paging.PageID, 20000)
			for i := range sequence {
				sequence[i] = paging.PageID(i * 31 % 97)
			}
			_, _ = paging.Simulate(paging.Request{
				Sequence:  sequence,
				RAMSize:   16,
				MaxPages:  97,
				Algorithm: paging.PolicyOptimal,
			})
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(called).To(BeTrue())
		Expect(summary.Total).To(BeNumerically(">=", 0))
	})

	It("should rank functions by flat cost", func() {
		hot := &profile.Function{ID: 1, Name: "hot"}
		cold := &profile.Function{ID: 2, Name: "cold"}
		hotLoc := &profile.Location{ID: 1, Line: []profile.Line{{Function: hot}}}
		coldLoc := &profile.Location{ID: 2, Line: []profile.Line{{Function: cold}}}

		prof := &profile.Profile{
			SampleType: []*profile.ValueType{
				{Type: "samples", Unit: "count"},
				{Type: "cpu", Unit: "nanoseconds"},
			},
			Sample: []*profile.Sample{
				{Location: []*profile.Location{hotLoc, coldLoc}, Value: []int64{3, 30}},
				{Location: []*profile.Location{coldLoc}, Value: []int64{1, 10}},
				{Location: []*profile.Location{hotLoc}, Value: []int64{2, 20}},
				{Value: []int64{1, 5}},
			},
		}

		summary := summarize(prof)

		Expect(summary.SampleType).To(Equal("cpu"))
		Expect(summary.Unit).To(Equal("nanoseconds"))
		Expect(summary.Total).To(Equal(int64(65)))
		Expect(summary.Functions).To(Equal([]FunctionCost{
			{Name: "hot", Value: 50},
			{Name: "cold", Value: 10},
			{Name: "<unknown>", Value: 5},
		}))
		Expect(summary.Top(1)).To(Equal([]FunctionCost{{Name: "hot", Value: 50}}))
		Expect(summary.Top(10)).To(HaveLen(3))
	})

	It("should render progress", func() {
		bar := NewProgressBar("bench", 4)
		bar.IncrementInProgress(2)
		bar.MoveInProgressToFinished(2)

		Expect(bar.ID).NotTo(BeEmpty())
		Expect(bar.Render(8)).To(Equal("bench [####....] 2/4"))
		Expect(func() { bar.MoveInProgressToFinished(1) }).To(Panic())
	})
})
