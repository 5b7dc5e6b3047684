package backoff

import (
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
)

func TestNewExponentialBackOff(t *testing.T) {
	require := require.New(t)

	off := NewExponentialBackOff(time.Minute)
	require.Equal(time.Minute, off.MaxElapsedTime)
	require.NotEqual(backoff.Stop, off.NextBackOff(), "backoff should not stop right away")

	forever := NewExponentialBackOff(0)
	forever.Clock = &fixedClock{t: time.Now()}
	forever.Reset()
	forever.Clock.(*fixedClock).t = forever.Clock.Now().Add(24 * time.Hour)
	require.NotEqual(backoff.Stop, forever.NextBackOff(), "zero elapsed time bound should never stop")
}

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.t
}
