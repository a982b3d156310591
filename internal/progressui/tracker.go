package progressui

import (
	"sync/atomic"
	"time"

	"github.com/dante-signal31/cifra/internal/model"
)

// Tracker is the shared counter a running attack advances and the
// progress view polls. Safe for concurrent use.
type Tracker struct {
	total   int
	started time.Time
	done    atomic.Int64
}

// NewTracker starts tracking a key space of the given size. A total of
// zero or less marks the size as unknown up front.
func NewTracker(total int) *Tracker {
	if total < 0 {
		total = 0
	}
	return &Tracker{total: total, started: time.Now()}
}

// Step records how many keys the attack has assessed so far. It has the
// shape the attack progress callbacks expect.
func (t *Tracker) Step(done int) {
	t.done.Store(int64(done))
}

// Snapshot captures the progress at this instant.
func (t *Tracker) Snapshot() model.ProgressEvent {
	return model.ProgressEvent{
		Done:    int(t.done.Load()),
		Total:   t.total,
		Elapsed: time.Since(t.started),
	}
}
