package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShellRunnerSuccess(t *testing.T) {
	res := ShellRunner{}.Run("true")

	assert.Equal(t, Succeeded, res.Outcome)
	assert.NoError(t, res.Err)
}

func TestShellRunnerCapturesOutput(t *testing.T) {
	res := ShellRunner{}.Run("echo hello")

	assert.Equal(t, Succeeded, res.Outcome)
	assert.Equal(t, "hello", res.Output)
}

func TestShellRunnerNonZeroExit(t *testing.T) {
	res := ShellRunner{}.Run("false")

	assert.Equal(t, Failed, res.Outcome)
	assert.Error(t, res.Err)

	res = ShellRunner{}.Run("exit 3")
	assert.Equal(t, Failed, res.Outcome)
}

func TestShellRunnerTimeout(t *testing.T) {
	start := time.Now()
	res := ShellRunner{Timeout: 100 * time.Millisecond}.Run("sleep 5")

	assert.Equal(t, TimedOut, res.Outcome)
	assert.Less(t, time.Since(start), 2*time.Second)
}
