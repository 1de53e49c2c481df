package paging

import (
	"log"
)

// LogHook prints every step and eviction of a simulator.
type LogHook struct {
	*log.Logger
}

// NewLogHook creates a LogHook that writes to the given logger.
func NewLogHook(logger *log.Logger) *LogHook {
	return &LogHook{Logger: logger}
}

// Func writes one line per hook invocation.
func (h *LogHook) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosStep:
		step := ctx.Item.(Step)

		outcome := "FAULT"
		if step.IsHit {
			outcome = "HIT"
		}

		h.Printf("t=%d page=%d %s frames=[%s]",
			ctx.Detail, step.PageID, outcome, FormatSlots(step.Frames))
	case HookPosEvict:
		eviction := ctx.Item.(Eviction)
		h.Printf("t=%d evict page %d from slot %d for page %d",
			ctx.Detail, eviction.Evicted, eviction.Slot, eviction.Loaded)
	}
}
