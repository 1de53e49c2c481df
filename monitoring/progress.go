package monitoring

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
)

// A ProgressBar tracks how many of a known number of runs have finished.
type ProgressBar struct {
	sync.Mutex
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// NewProgressBar creates a progress bar that starts now.
func NewProgressBar(name string, total uint64) *ProgressBar {
	return &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// MoveInProgressToFinished reduces the number of in progress item by a certain
// amount and increase the finished item by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	if amount > b.InProgress {
		panic("finishing more items than are in progress")
	}

	b.InProgress -= amount
	b.Finished += amount
}

// Render draws the bar with the given width in characters.
func (b *ProgressBar) Render(width int) string {
	b.Lock()
	defer b.Unlock()

	done := 0
	if b.Total > 0 {
		done = int(uint64(width) * b.Finished / b.Total)
	}

	return fmt.Sprintf("%s [%s%s] %d/%d",
		b.Name,
		strings.Repeat("#", done),
		strings.Repeat(".", width-done),
		b.Finished,
		b.Total)
}
