package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a remote backend cannot be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

// backoff retries an operation a fixed number of times, doubling the wait
// between attempts.
type backoff struct {
	attempts int
	delay    time.Duration
}

// connectBackoff is used while dialing remote backends.
var connectBackoff = backoff{attempts: 3, delay: time.Second}

// run calls fn until it succeeds, reports a permanent failure, runs out of
// attempts, or ctx is done. fn returns retry=true for transient errors.
func (b backoff) run(ctx context.Context, fn func() (retry bool, err error)) error {
	wait := b.delay
	var err error
	for attempt := 1; ; attempt++ {
		var retry bool
		if retry, err = fn(); err == nil || !retry || attempt >= b.attempts {
			return err
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}
