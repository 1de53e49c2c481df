package tracing

import (
	"context"

	"github.com/sarchlab/pagesim/datarecording"
)

// TraceReader reads back the runs a StepTracer recorded.
type TraceReader struct {
	reader datarecording.DataReader
}

// NewTraceReader maps the tracer tables on the given reader.
func NewTraceReader(reader datarecording.DataReader) *TraceReader {
	reader.MapTable(RunTable, RunEntry{})
	reader.MapTable(StepTable, StepEntry{})
	reader.MapTable(EvictionTable, EvictionEntry{})

	return &TraceReader{reader: reader}
}

// Runs lists the recorded runs in the order they finished.
func (r *TraceReader) Runs(ctx context.Context) ([]RunEntry, error) {
	results, _, err := r.reader.Query(ctx, RunTable,
		datarecording.QueryParams{OrderBy: "rowid"})
	if err != nil {
		return nil, err
	}

	runs := make([]RunEntry, 0, len(results))
	for _, res := range results {
		runs = append(runs, *res.(*RunEntry))
	}

	return runs, nil
}

// Steps returns the steps of one run in time order.
func (r *TraceReader) Steps(ctx context.Context, runID string) ([]StepEntry, error) {
	results, _, err := r.reader.Query(ctx, StepTable, datarecording.QueryParams{
		Where:   "RunID = ?",
		Args:    []any{runID},
		OrderBy: "Time",
	})
	if err != nil {
		return nil, err
	}

	steps := make([]StepEntry, 0, len(results))
	for _, res := range results {
		steps = append(steps, *res.(*StepEntry))
	}

	return steps, nil
}

// Evictions returns the evictions of one run in time order.
func (r *TraceReader) Evictions(
	ctx context.Context,
	runID string,
) ([]EvictionEntry, error) {
	results, _, err := r.reader.Query(ctx, EvictionTable, datarecording.QueryParams{
		Where:   "RunID = ?",
		Args:    []any{runID},
		OrderBy: "Time",
	})
	if err != nil {
		return nil, err
	}

	evictions := make([]EvictionEntry, 0, len(results))
	for _, res := range results {
		evictions = append(evictions, *res.(*EvictionEntry))
	}

	return evictions, nil
}
