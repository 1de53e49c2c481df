package paging

// Step is the record of one serviced reference. Frames is the table content
// after the reference.
type Step struct {
	PageID PageID `json:"pageId"`
	IsHit  bool   `json:"isHit"`
	Frames []Slot `json:"frames"`
}

// Result is the complete trace of a run.
type Result struct {
	Steps  []Step `json:"steps"`
	Hits   int    `json:"hits"`
	Faults int    `json:"faults"`
}

// HitRatio returns hits over the number of references.
func (r *Result) HitRatio() float64 {
	if len(r.Steps) == 0 {
		return 0
	}

	return float64(r.Hits) / float64(len(r.Steps))
}

// Recorder accumulates steps and the hit and fault counters of a run.
type Recorder struct {
	steps  []Step
	hits   int
	faults int
}

// NewRecorder creates a recorder that expects about n steps.
func NewRecorder(n int) *Recorder {
	return &Recorder{
		steps: make([]Step, 0, n),
	}
}

// Record appends a step and takes ownership of frames. The returned step has
// its own copy of the frames, so changing it does not change the result.
func (r *Recorder) Record(p PageID, isHit bool, frames []Slot) Step {
	r.steps = append(r.steps, Step{
		PageID: p,
		IsHit:  isHit,
		Frames: frames,
	})

	step := Step{
		PageID: p,
		IsHit:  isHit,
		Frames: append([]Slot(nil), frames...),
	}

	if isHit {
		r.hits++
	} else {
		r.faults++
	}

	return step
}

// NumSteps returns how many steps have been recorded.
func (r *Recorder) NumSteps() int {
	return len(r.steps)
}

// Result returns the recorded trace.
func (r *Recorder) Result() *Result {
	if r.hits+r.faults != len(r.steps) {
		panic("hit and fault counters do not match the number of steps")
	}

	return &Result{
		Steps:  r.steps,
		Hits:   r.hits,
		Faults: r.faults,
	}
}
