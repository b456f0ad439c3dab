package queue

import (
	"testing"
	"time"

	"queuectl/internal/model"

	"github.com/stretchr/testify/assert"
)

func processingJob(attempts, maxRetries int) model.Job {
	now := time.Now().UTC()
	return model.Job{
		ID:         "job1",
		Command:    "true",
		State:      model.StateProcessing,
		Attempts:   attempts,
		MaxRetries: maxRetries,
		CreatedAt:  now.Add(-time.Minute),
		UpdatedAt:  now.Add(-time.Minute),
		NextRunAt:  now.Add(-time.Minute),
	}
}

func TestApplySuccess(t *testing.T) {
	job := processingJob(0, 3)
	before := job.UpdatedAt

	Apply(&job, Result{Outcome: Succeeded, Output: "done"}, 2)

	assert.Equal(t, model.StateCompleted, job.State)
	assert.Equal(t, 0, job.Attempts)
	assert.Equal(t, "done", job.Output)
	assert.True(t, job.UpdatedAt.After(before))
}

func TestApplyFailureSchedulesRetry(t *testing.T) {
	job := processingJob(0, 3)

	Apply(&job, Result{Outcome: Failed}, 2)

	assert.Equal(t, model.StateFailed, job.State)
	assert.Equal(t, 1, job.Attempts)
	// backoff for attempt 1 with base 2 is 2 seconds
	assert.WithinDuration(t, job.UpdatedAt.Add(2*time.Second), job.NextRunAt, time.Millisecond)
}

func TestApplyFailureAtThresholdIsDead(t *testing.T) {
	job := processingJob(2, 3)

	Apply(&job, Result{Outcome: Failed}, 2)

	assert.Equal(t, model.StateDead, job.State)
	assert.Equal(t, 3, job.Attempts)
}

func TestApplyNeverExceedsMaxRetries(t *testing.T) {
	job := processingJob(0, 1)

	Apply(&job, Result{Outcome: Failed}, 2)

	assert.Equal(t, model.StateDead, job.State)
	assert.Equal(t, 1, job.Attempts)
}

func TestApplyTimeoutCountsAsFailure(t *testing.T) {
	job := processingJob(0, 3)

	Apply(&job, Result{Outcome: TimedOut}, 2)

	assert.Equal(t, model.StateFailed, job.State)
	assert.Equal(t, 1, job.Attempts)
}

func TestApplyFaultCountsAsFailure(t *testing.T) {
	job := processingJob(2, 3)

	Apply(&job, Result{Outcome: Faulted}, 2)

	assert.Equal(t, model.StateDead, job.State)
	assert.Equal(t, 3, job.Attempts)
}

func TestApplyBackoffGrowsWithAttempts(t *testing.T) {
	first := processingJob(0, 10)
	second := processingJob(3, 10)

	Apply(&first, Result{Outcome: Failed}, 2)
	Apply(&second, Result{Outcome: Failed}, 2)

	firstDelay := first.NextRunAt.Sub(first.UpdatedAt)
	secondDelay := second.NextRunAt.Sub(second.UpdatedAt)
	assert.Equal(t, 2*time.Second, firstDelay)
	assert.Equal(t, 16*time.Second, secondDelay)
}
