package paging

import "fmt"

// State is the lifecycle state of a Simulator.
type State int

// A simulator goes Ready -> Running -> Done exactly once.
const (
	StateReady State = iota
	StateRunning
	StateDone
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateDone:
		return "Done"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Simulator replays one reference string. It owns its frame table and is not
// safe for concurrent use; independent simulators share nothing.
type Simulator struct {
	HookableBase

	ramSize      int
	maxPages     int
	policy       Policy
	victimFinder VictimFinder

	state State
	table *FrameTable
}

// Policy returns the replacement policy of the simulator.
func (s *Simulator) Policy() Policy {
	return s.policy
}

// State returns the lifecycle state.
func (s *Simulator) State() State {
	return s.state
}

// FrameTable returns the frame table of the current or finished run, or nil
// before Run.
func (s *Simulator) FrameTable() *FrameTable {
	return s.table
}

// Run validates the sequence and replays it. A validation error leaves the
// simulator Ready. Running a simulator a second time panics.
func (s *Simulator) Run(sequence []PageID) (*Result, error) {
	if s.state != StateReady {
		panic(fmt.Sprintf("simulator is %s, not Ready", s.state))
	}

	err := Validate(Request{
		Sequence:  sequence,
		RAMSize:   s.ramSize,
		MaxPages:  s.maxPages,
		Algorithm: s.policy,
	})
	if err != nil {
		return nil, err
	}

	s.state = StateRunning
	s.table = NewFrameTable(s.ramSize)

	victimFinder := s.victimFinder
	if victimFinder == nil {
		victimFinder = NewVictimFinder(s.policy, sequence)
	}

	recorder := NewRecorder(len(sequence))
	for t, p := range sequence {
		isHit := s.service(victimFinder, sequence, t, p)

		step := recorder.Record(p, isHit, s.table.Snapshot())
		s.InvokeHook(HookCtx{
			Domain: s,
			Pos:    HookPosStep,
			Item:   step,
			Detail: t,
		})
	}

	s.state = StateDone

	return recorder.Result(), nil
}

func (s *Simulator) service(
	victimFinder VictimFinder,
	sequence []PageID,
	t int,
	p PageID,
) (isHit bool) {
	if slot, found := s.table.Find(p); found {
		s.table.Touch(slot, t)
		return true
	}

	if slot, found := s.table.FirstEmptySlot(); found {
		s.table.Load(slot, p, t)
		return false
	}

	victim := victimFinder.FindVictim(s.table, t, sequence[t+1:])
	if victim < 0 || victim >= s.table.Size() {
		panic(fmt.Sprintf("victim slot %d out of range", victim))
	}

	evicted := s.table.Frame(victim)
	if !evicted.Occupied {
		panic(fmt.Sprintf("victim slot %d is empty", victim))
	}

	s.table.Load(victim, p, t)
	s.InvokeHook(HookCtx{
		Domain: s,
		Pos:    HookPosEvict,
		Item: Eviction{
			Slot:    victim,
			Evicted: evicted.PageID,
			Loaded:  p,
		},
		Detail: t,
	})

	return false
}

// Simulate validates a request and replays it with the policy it names.
func Simulate(req Request) (*Result, error) {
	s := MakeBuilder().
		WithRAMSize(req.RAMSize).
		WithMaxPages(req.MaxPages).
		WithPolicy(req.Algorithm).
		Build()

	return s.Run(req.Sequence)
}
