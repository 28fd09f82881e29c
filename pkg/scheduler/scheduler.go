package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrJobNotFound is returned by Cancel when no scheduled job matches.
	ErrJobNotFound = errors.New("Job not found")
)

// Tick between readiness sweeps.
const pollInterval = 500 * time.Millisecond

// Job is a unit of background maintenance work. The scheduler polls
// IsReady and runs the job on its own goroutine's time.
type Job interface {
	// IsReady returns true when the job should be executed.
	IsReady(ctx context.Context) bool

	// Run executes the job.
	Run(ctx context.Context)

	// IsComplete returns true when the job should be removed after a run.
	IsComplete(ctx context.Context) bool

	// Equal returns true if another job matches it. Used to cancel jobs.
	Equal(other Job) bool
}

// Scheduler runs maintenance jobs when they report ready. Zero value is
// usable.
type Scheduler struct {
	jobs          []Job
	lock          sync.Mutex
	isRunning     bool
	stopRequested bool
}

// Schedule adds a job.
func (sch *Scheduler) Schedule(ctx context.Context, job Job) {
	sch.lock.Lock()
	defer sch.lock.Unlock()
	sch.jobs = append(sch.jobs, job)
}

// Cancel removes the first job equal to the one given.
func (sch *Scheduler) Cancel(ctx context.Context, job Job) error {
	sch.lock.Lock()
	defer sch.lock.Unlock()
	for i, existing := range sch.jobs {
		if existing.Equal(job) {
			sch.jobs = append(sch.jobs[:i], sch.jobs[i+1:]...)
			return nil
		}
	}
	return ErrJobNotFound
}

// Run sweeps the job list until Stop is called, executing jobs as they
// become ready. Blocks; callers run it on its own goroutine.
func (sch *Scheduler) Run(ctx context.Context) error {
	sch.lock.Lock()
	sch.isRunning = true
	for !sch.stopRequested {
		for i, job := range sch.jobs {
			if job.IsReady(ctx) {
				job.Run(ctx)
				if job.IsComplete(ctx) {
					sch.jobs = append(sch.jobs[:i], sch.jobs[i+1:]...)
					break // Modified list being iterated
				}
			}
		}

		// Unlock for sleep
		sch.lock.Unlock()
		time.Sleep(pollInterval)
		sch.lock.Lock()
	}
	sch.isRunning = false
	sch.lock.Unlock()
	return nil
}

func (sch *Scheduler) stillRunning() bool {
	sch.lock.Lock()
	defer sch.lock.Unlock()
	return sch.isRunning
}

// Stop requests Run finish and waits for it to return.
func (sch *Scheduler) Stop(ctx context.Context) {
	sch.lock.Lock()
	sch.stopRequested = true
	sch.lock.Unlock()

	for sch.stillRunning() {
		time.Sleep(pollInterval / 2)
	}
}
