package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StatePending    = "pending"
	StateProcessing = "processing"
	StateCompleted  = "completed"
	StateFailed     = "failed"
	StateDead       = "dead"
)

// ValidState reports whether s is one of the known job states.
func ValidState(s string) bool {
	switch s {
	case StatePending, StateProcessing, StateCompleted, StateFailed, StateDead:
		return true
	}
	return false
}

type Job struct {
	ID         string    `json:"id"`
	Command    string    `json:"command"`
	State      string    `json:"state"`
	Attempts   int       `json:"attempts"`
	MaxRetries int       `json:"max_retries"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	NextRunAt  time.Time `json:"next_run_at"`
	Output     string    `json:"output,omitempty"`
}

// Prepare initializes a freshly submitted job: generates an id if the
// caller didn't supply one, applies the configured max_retries default,
// and stamps the lifecycle fields. A job without a command is rejected.
func (j *Job) Prepare(defaultMaxRetries int) error {
	if j.Command == "" {
		return fmt.Errorf("job 'command' is required")
	}
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.MaxRetries <= 0 {
		j.MaxRetries = defaultMaxRetries
	}
	now := time.Now().UTC()
	j.State = StatePending
	j.Attempts = 0
	j.CreatedAt = now
	j.UpdatedAt = now
	j.NextRunAt = now
	j.Output = ""
	return nil
}
