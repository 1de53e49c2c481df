// Package tracing records and exports the traces of page replacement runs.
package tracing

import (
	"github.com/rs/xid"
	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/paging"
)

// Table names used by StepTracer.
const (
	RunTable      = "runs"
	StepTable     = "steps"
	EvictionTable = "evictions"
)

// RunEntry is a row of the runs table.
type RunEntry struct {
	RunID     string
	Algorithm string
	RAMSize   int
	MaxPages  int
	Length    int
	Hits      int
	Faults    int
}

// StepEntry is a row of the steps table. Frames holds the slots as
// formatted by paging.FormatSlots.
type StepEntry struct {
	RunID  string
	Time   int
	PageID int
	IsHit  bool
	Frames string
}

// EvictionEntry is a row of the evictions table.
type EvictionEntry struct {
	RunID   string
	Time    int
	Slot    int
	Evicted int
	Loaded  int
}

// RunInfo describes the run a StepTracer is attached to.
type RunInfo struct {
	Algorithm paging.Policy
	RAMSize   int
	MaxPages  int
}

// StepTracer is a hook that stores every step and eviction of a simulator
// into a DataRecorder. Several tracers can share one recorder; their rows are
// told apart by run id.
type StepTracer struct {
	backend datarecording.DataRecorder
	runID   string
	info    RunInfo

	steps  int
	hits   int
	faults int
}

// NewStepTracer creates a StepTracer and the tables it writes to.
func NewStepTracer(
	backend datarecording.DataRecorder,
	info RunInfo,
) *StepTracer {
	t := &StepTracer{
		backend: backend,
		runID:   xid.New().String(),
		info:    info,
	}

	t.createTables()

	return t
}

func (t *StepTracer) createTables() {
	existing := make(map[string]bool)
	for _, name := range t.backend.ListTables() {
		existing[name] = true
	}

	tables := []struct {
		name   string
		sample any
	}{
		{RunTable, RunEntry{}},
		{StepTable, StepEntry{}},
		{EvictionTable, EvictionEntry{}},
	}

	for _, table := range tables {
		if !existing[table.name] {
			t.backend.CreateTable(table.name, table.sample)
		}
	}
}

// RunID returns the id that tags the rows of this tracer.
func (t *StepTracer) RunID() string {
	return t.runID
}

// Func records steps and evictions.
func (t *StepTracer) Func(ctx paging.HookCtx) {
	switch ctx.Pos {
	case paging.HookPosStep:
		step := ctx.Item.(paging.Step)
		t.backend.InsertData(StepTable, StepEntry{
			RunID:  t.runID,
			Time:   ctx.Detail.(int),
			PageID: int(step.PageID),
			IsHit:  step.IsHit,
			Frames: paging.FormatSlots(step.Frames),
		})

		t.steps++
		if step.IsHit {
			t.hits++
		} else {
			t.faults++
		}
	case paging.HookPosEvict:
		eviction := ctx.Item.(paging.Eviction)
		t.backend.InsertData(EvictionTable, EvictionEntry{
			RunID:   t.runID,
			Time:    ctx.Detail.(int),
			Slot:    eviction.Slot,
			Evicted: int(eviction.Evicted),
			Loaded:  int(eviction.Loaded),
		})
	}
}

// Finish writes the run summary and flushes the recorder.
func (t *StepTracer) Finish() {
	t.backend.InsertData(RunTable, RunEntry{
		RunID:     t.runID,
		Algorithm: t.info.Algorithm.String(),
		RAMSize:   t.info.RAMSize,
		MaxPages:  t.info.MaxPages,
		Length:    t.steps,
		Hits:      t.hits,
		Faults:    t.faults,
	})

	t.backend.Flush()
}
