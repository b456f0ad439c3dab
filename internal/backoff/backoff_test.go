package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelay(t *testing.T) {
	tests := []struct {
		name     string
		attempts int
		base     int
		want     int
	}{
		{"zero attempts is always one second", 0, 2, 1},
		{"base 2 first retry", 1, 2, 2},
		{"base 2 second retry", 2, 2, 4},
		{"base 2 third retry", 3, 2, 8},
		{"base 3", 2, 3, 9},
		{"base 1 never grows", 5, 1, 1},
		{"zero attempts base 1", 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Delay(tt.attempts, tt.base))
		})
	}
}

func TestDelayClampsBase(t *testing.T) {
	// A base below one would shrink or zero out the delay.
	assert.Equal(t, 1, Delay(4, 0))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 8*time.Second, Duration(3, 2))
	assert.Equal(t, time.Second, Duration(0, 7))
}
