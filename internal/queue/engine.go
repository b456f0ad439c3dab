package queue

import (
	"time"

	"queuectl/internal/backoff"
	"queuectl/internal/model"
)

// Outcome classifies how a command execution ended.
type Outcome int

const (
	Succeeded Outcome = iota
	Failed            // command exited non-zero
	TimedOut          // command exceeded the execution timeout
	Faulted           // command could not be run at all
)

// Result is what a Runner reports back for one execution.
type Result struct {
	Outcome Outcome
	Output  string
	Err     error
}

// Apply advances a processing job according to its execution result.
// Success completes the job without touching attempts. Any other outcome
// counts as a failed attempt: the job either becomes 'failed' with a
// next_run_at pushed out by the backoff delay, or 'dead' once attempts
// reach max_retries.
func Apply(job *model.Job, res Result, backoffBase int) {
	now := time.Now().UTC()
	job.UpdatedAt = now
	job.Output = res.Output

	if res.Outcome == Succeeded {
		job.State = model.StateCompleted
		return
	}

	job.Attempts++
	if job.Attempts >= job.MaxRetries {
		job.State = model.StateDead
		return
	}
	job.State = model.StateFailed
	job.NextRunAt = now.Add(backoff.Duration(job.Attempts, backoffBase))
}
