package processor

import (
	"time"

	"github.com/nguyentantai21042004/dialogue-flow/internal/scheduler"
)

// turnTimer measures each turn's time in the scheduler. observe is called from
// the scheduler's single event collector, so it needs no locking.
type turnTimer struct {
	now       func() time.Time
	started   map[int]time.Time
	durations map[int]time.Duration
}

func newTurnTimer() *turnTimer {
	return &turnTimer{
		now:       time.Now,
		started:   make(map[int]time.Time),
		durations: make(map[int]time.Duration),
	}
}

func (t *turnTimer) observe(ev scheduler.Event) {
	switch ev.Stage {
	case scheduler.StageSynthesizing:
		t.started[ev.TurnIndex] = t.now()
	case scheduler.StageDone, scheduler.StageFailed:
		// A turn canceled before it started has no start time
		start, ok := t.started[ev.TurnIndex]
		if !ok {
			return
		}
		t.durations[ev.TurnIndex] = t.now().Sub(start)
	}
}

// slowest returns the turn that took longest, lowest index on ties.
func (t *turnTimer) slowest() (int, time.Duration, bool) {
	best, bestD, found := 0, time.Duration(0), false
	for idx, d := range t.durations {
		if !found || d > bestD || (d == bestD && idx < best) {
			best, bestD, found = idx, d, true
		}
	}
	return best, bestD, found
}
