package paging

import (
	"encoding/json"
	"fmt"
	"strings"
)

// A Frame is one physical memory slot and the bookkeeping the replacement
// policies read.
type Frame struct {
	Occupied bool
	PageID   PageID

	// LoadOrder is the timestep at which the current page was loaded. Hits do
	// not change it.
	LoadOrder int

	// LastUsed is the timestep of the most recent reference to the current
	// page, load or hit.
	LastUsed int
}

// Slot is the content of a frame as seen from outside the table.
type Slot struct {
	PageID PageID
	Empty  bool
}

// EmptySlot returns a slot that holds no page.
func EmptySlot() Slot {
	return Slot{Empty: true}
}

// OccupiedSlot returns a slot that holds the given page.
func OccupiedSlot(p PageID) Slot {
	return Slot{PageID: p}
}

func (s Slot) String() string {
	if s.Empty {
		return "-"
	}

	return fmt.Sprint(int(s.PageID))
}

// MarshalJSON encodes an empty slot as null and an occupied one as its page
// id.
func (s Slot) MarshalJSON() ([]byte, error) {
	if s.Empty {
		return []byte("null"), nil
	}

	return json.Marshal(int(s.PageID))
}

// UnmarshalJSON reverses MarshalJSON.
func (s *Slot) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = EmptySlot()
		return nil
	}

	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}

	*s = OccupiedSlot(PageID(id))

	return nil
}

// FormatSlots renders slots as a space separated list, "-" for empty ones.
func FormatSlots(slots []Slot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = s.String()
	}

	return strings.Join(parts, " ")
}

// FrameTable is the physical memory of one run: a fixed, ordered set of
// frames.
type FrameTable struct {
	Frames []Frame

	numOccupied  int
	lastTimestep int
}

// NewFrameTable creates a table with numFrames empty frames.
func NewFrameTable(numFrames int) *FrameTable {
	if numFrames < 1 {
		panic("frame table must have at least one frame")
	}

	return &FrameTable{
		Frames:       make([]Frame, numFrames),
		lastTimestep: -1,
	}
}

// Size returns the number of frames.
func (t *FrameTable) Size() int {
	return len(t.Frames)
}

// NumOccupied returns the number of frames that hold a page.
func (t *FrameTable) NumOccupied() int {
	return t.numOccupied
}

// IsFull tells if every frame holds a page.
func (t *FrameTable) IsFull() bool {
	return t.numOccupied == len(t.Frames)
}

// Frame returns a copy of the frame at the given slot.
func (t *FrameTable) Frame(slot int) Frame {
	return t.Frames[slot]
}

// Find returns the slot that holds the page.
func (t *FrameTable) Find(p PageID) (slot int, found bool) {
	for i, f := range t.Frames {
		if f.Occupied && f.PageID == p {
			return i, true
		}
	}

	return 0, false
}

// FirstEmptySlot returns the lowest-index empty slot.
func (t *FrameTable) FirstEmptySlot() (slot int, found bool) {
	if t.IsFull() {
		return 0, false
	}

	for i, f := range t.Frames {
		if !f.Occupied {
			return i, true
		}
	}

	return 0, false
}

// Load places a page in a slot at the given timestep, replacing whatever the
// slot held.
func (t *FrameTable) Load(slot int, p PageID, timestep int) {
	t.advanceTo(timestep)

	if resident, found := t.Find(p); found {
		panic(fmt.Sprintf("page %d is already resident in slot %d", p, resident))
	}

	f := &t.Frames[slot]
	if !f.Occupied {
		t.numOccupied++
	}

	f.Occupied = true
	f.PageID = p
	f.LoadOrder = timestep
	f.LastUsed = timestep
}

// Touch marks the page in a slot as referenced at the given timestep.
func (t *FrameTable) Touch(slot int, timestep int) {
	t.advanceTo(timestep)

	f := &t.Frames[slot]
	if !f.Occupied {
		panic(fmt.Sprintf("touching empty slot %d", slot))
	}

	f.LastUsed = timestep
}

// advanceTo keeps the stamps strictly increasing, so that no two frames can
// ever share a tag.
func (t *FrameTable) advanceTo(timestep int) {
	if timestep <= t.lastTimestep {
		panic(fmt.Sprintf("timestep %d is not after %d",
			timestep, t.lastTimestep))
	}

	t.lastTimestep = timestep
}

// Snapshot returns a copy of the current occupants by slot index.
func (t *FrameTable) Snapshot() []Slot {
	slots := make([]Slot, len(t.Frames))
	for i, f := range t.Frames {
		if f.Occupied {
			slots[i] = OccupiedSlot(f.PageID)
		} else {
			slots[i] = EmptySlot()
		}
	}

	return slots
}
