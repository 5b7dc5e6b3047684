// Package backoff contains helpers for dealing with backoffs.
package backoff

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// NewExponentialBackOff creates an instance of ExponentialBackOff using reasonable defaults
// that gives up after maxElapsed. A zero maxElapsed never gives up.
func NewExponentialBackOff(maxElapsed time.Duration) *backoff.ExponentialBackOff {
	off := backoff.NewExponentialBackOff()
	off.MaxElapsedTime = maxElapsed
	return off
}
