package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"queuectl/internal/config"
	"queuectl/internal/model"
	"queuectl/internal/queue"
	"queuectl/internal/storage"
)

const (
	idleInterval  = 2 * time.Second
	cycleInterval = 1 * time.Second

	// A job left in 'processing' longer than this is considered
	// abandoned by a crashed worker and is returned to 'pending'.
	processingLease = 5 * time.Minute
)

// Pool drives the job lifecycle: each cycle it selects up to `count`
// runnable jobs, executes them concurrently, applies the state machine,
// and relocates dead jobs into the dead letter queue.
type Pool struct {
	store  *storage.Store
	cfg    *config.Config
	runner queue.Runner
	count  int

	idleWait  time.Duration
	cycleWait time.Duration
	lease     time.Duration
}

func New(store *storage.Store, cfg *config.Config, count int) *Pool {
	if count < 1 {
		count = 1
	}
	return &Pool{
		store:     store,
		cfg:       cfg,
		runner:    queue.ShellRunner{Timeout: queue.DefaultTimeout},
		count:     count,
		idleWait:  idleInterval,
		cycleWait: cycleInterval,
		lease:     processingLease,
	}
}

// Run polls for jobs until ctx is canceled. Cancellation is only acted
// on between cycles; commands already running finish or time out on
// their own. Store errors fail the current cycle and are retried on the
// next one rather than killing the loop.
func (p *Pool) Run(ctx context.Context) {
	log.Printf("Worker pool: %d slot(s), polling for jobs", p.count)

	for {
		idle, err := p.cycle()
		if err != nil {
			log.Printf("Worker pool: cycle failed: %v", err)
		}

		wait := p.cycleWait
		if idle {
			wait = p.idleWait
		}
		select {
		case <-ctx.Done():
			log.Println("Worker pool: shutting down")
			return
		case <-time.After(wait):
		}
	}
}

// cycle performs one pass: reclaim, select, execute, persist, reconcile.
// It reports idle=true when there was nothing to run.
//
// Writes go through UpdateJobs, never a whole-collection replace: the
// snapshot loaded here goes stale while commands run, and jobs enqueued
// in the meantime must survive the write-back.
func (p *Pool) cycle() (idle bool, err error) {
	jobs, err := p.store.LoadJobs()
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	touched := p.reclaimStalled(jobs, now)

	selected := selectRunnable(jobs, p.count, now)
	if len(selected) == 0 {
		if len(touched) > 0 {
			if err := p.store.UpdateJobs(touched); err != nil {
				return false, err
			}
		}
		return true, nil
	}

	for _, i := range selected {
		jobs[i].State = model.StateProcessing
		jobs[i].UpdatedAt = now
		touched = append(touched, jobs[i])
	}
	if err := p.store.UpdateJobs(touched); err != nil {
		return false, err
	}

	results := make([]queue.Result, len(selected))
	var wg sync.WaitGroup
	for n, i := range selected {
		wg.Add(1)
		go func(n int, job model.Job) {
			defer wg.Done()
			log.Printf("Worker: running job %s: %s", job.ID, job.Command)
			results[n] = p.runner.Run(job.Command)
		}(n, jobs[i])
	}
	wg.Wait()

	finished := make([]model.Job, 0, len(selected))
	for n, i := range selected {
		queue.Apply(&jobs[i], results[n], p.cfg.BackoffBase)
		switch jobs[i].State {
		case model.StateCompleted:
			log.Printf("Worker: job %s completed", jobs[i].ID)
		case model.StateFailed:
			log.Printf("Worker: job %s failed (attempt %d/%d), retry at %s",
				jobs[i].ID, jobs[i].Attempts, jobs[i].MaxRetries,
				jobs[i].NextRunAt.Format(time.RFC3339))
		case model.StateDead:
			log.Printf("Worker: job %s exhausted %d attempts, moving to DLQ",
				jobs[i].ID, jobs[i].Attempts)
		}
		finished = append(finished, jobs[i])
	}
	if err := p.store.UpdateJobs(finished); err != nil {
		return false, err
	}

	moved, err := p.store.MoveDead()
	if err != nil {
		return false, err
	}
	if moved > 0 {
		log.Printf("Worker: %d job(s) moved to the dead letter queue", moved)
	}
	return false, nil
}

// reclaimStalled returns jobs stuck in 'processing' past the lease back
// to 'pending' without charging an attempt, and returns the jobs it changed.
func (p *Pool) reclaimStalled(jobs []model.Job, now time.Time) []model.Job {
	var reclaimed []model.Job
	for i := range jobs {
		if jobs[i].State == model.StateProcessing && now.Sub(jobs[i].UpdatedAt) > p.lease {
			log.Printf("Worker: reclaiming stalled job %s", jobs[i].ID)
			jobs[i].State = model.StatePending
			jobs[i].UpdatedAt = now
			reclaimed = append(reclaimed, jobs[i])
		}
	}
	return reclaimed
}

// selectRunnable picks up to limit jobs in store order: pending jobs,
// plus failed jobs whose backoff window has passed.
func selectRunnable(jobs []model.Job, limit int, now time.Time) []int {
	var selected []int
	for i := range jobs {
		if len(selected) == limit {
			break
		}
		switch jobs[i].State {
		case model.StatePending:
			selected = append(selected, i)
		case model.StateFailed:
			if !jobs[i].NextRunAt.After(now) {
				selected = append(selected, i)
			}
		}
	}
	return selected
}
