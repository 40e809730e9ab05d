package throttle

import (
	"time"

	"github.com/arthomnix/libaoc/internal/metadata"
)

/*
Gate
Specialized component to enforce the site's automation etiquette
Responsibilities:
- Bookkeep the timestamp of the last outbound request
- Block a caller until the minimum inter-request interval has elapsed
- Survive process restarts via the persisted timestamp

Gate is a side-effecting pre-request barrier, not a queue: callers must
Acquire immediately before issuing a remote request, and only one
logical caller exists per client. Acquire never fails; clock anomalies
are retried internally and show up only as added latency.
*/

const (
	// DefaultInterval is the minimum enforced spacing between requests.
	DefaultInterval = 180 * time.Second

	// skewBackoff is slept before re-evaluating when the persisted
	// timestamp lies in the future relative to the current clock.
	skewBackoff = time.Second
)

type Gate struct {
	interval time.Duration
	last     time.Time
	sink     metadata.Sink

	now   func() time.Time
	sleep func(d time.Duration)
}

// NewGate creates a gate enforcing the given interval. last is the
// persisted timestamp of the previous session's final request; pass the
// zero time when none was persisted.
func NewGate(interval time.Duration, last time.Time, sink metadata.Sink) *Gate {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Gate{
		interval: interval,
		last:     last,
		sink:     sink,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// SetClock allows injecting a custom clock and sleeper for testing.
func (g *Gate) SetClock(now func() time.Time, sleep func(d time.Duration)) {
	if now != nil {
		g.now = now
	}
	if sleep != nil {
		g.sleep = sleep
	}
}

// Acquire blocks until the minimum interval since the last request has
// elapsed, records the current time as the new last-request timestamp,
// and returns the duration actually waited.
//
// If the stored timestamp is in the future (clock skew, corrupted
// persisted value), elapsed time cannot be trusted; rather than risk an
// unthrottled request, Acquire sleeps a fixed backoff and re-evaluates
// from scratch.
func (g *Gate) Acquire() time.Duration {
	waited := time.Duration(0)

	for {
		now := g.now()

		if now.Before(g.last) {
			g.sink.RecordError(
				now,
				"throttle",
				"Gate.Acquire",
				metadata.CauseClockAnomaly,
				"persisted timestamp is in the future",
			)
			g.sleep(skewBackoff)
			waited += skewBackoff
			continue
		}

		elapsed := now.Sub(g.last)
		if elapsed < g.interval {
			remaining := g.interval - elapsed
			g.sleep(remaining)
			waited += remaining
		}

		g.last = g.now()
		g.sink.RecordThrottleWait(waited)
		return waited
	}
}

// Last reports the in-memory timestamp of the most recent request, for
// flushing at shutdown.
func (g *Gate) Last() time.Time {
	return g.last
}

// Interval reports the enforced minimum spacing.
func (g *Gate) Interval() time.Duration {
	return g.interval
}
