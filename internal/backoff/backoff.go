package backoff

import "time"

// Delay returns the suggested wait in seconds before the next attempt
// of a job that has failed `attempts` times: base^attempts.
// Delay(0, b) is 1 for any base.
func Delay(attempts, base int) int {
	if base < 1 {
		base = 1
	}
	d := 1
	for i := 0; i < attempts; i++ {
		d *= base
	}
	return d
}

// Duration is Delay expressed as a time.Duration.
func Duration(attempts, base int) time.Duration {
	return time.Duration(Delay(attempts, base)) * time.Second
}
