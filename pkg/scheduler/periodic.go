package scheduler

import (
	"context"
	"time"
)

// PeriodicTask is a Job that re-runs a function at a fixed frequency
// until cancelled.
type PeriodicTask struct {
	name      string
	run       func(context.Context)
	frequency time.Duration
	next      time.Time
}

// NewPeriodicTask schedules run every frequency, starting one frequency
// from now.
func NewPeriodicTask(name string, run func(context.Context), frequency time.Duration) *PeriodicTask {
	return &PeriodicTask{
		name:      name,
		run:       run,
		frequency: frequency,
		next:      time.Now().Add(frequency),
	}
}

// IsReady returns true when the next scheduled run has arrived.
func (pt *PeriodicTask) IsReady(ctx context.Context) bool {
	return time.Now().After(pt.next)
}

// Run executes the task and schedules the next run.
func (pt *PeriodicTask) Run(ctx context.Context) {
	pt.next = time.Now().Add(pt.frequency)
	pt.run(ctx)
}

// IsComplete always returns false. Periodic tasks run until cancelled.
func (pt *PeriodicTask) IsComplete(ctx context.Context) bool {
	return false
}

// Equal matches periodic tasks by name.
func (pt *PeriodicTask) Equal(other Job) bool {
	otherPT, ok := other.(*PeriodicTask)
	if !ok {
		return false
	}
	return pt.name == otherPT.name
}
