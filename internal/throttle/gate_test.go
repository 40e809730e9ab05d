package throttle_test

import (
	"testing"
	"time"

	"github.com/arthomnix/libaoc/internal/metadata"
	"github.com/arthomnix/libaoc/internal/throttle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives a Gate deterministically: sleeping advances the
// clock instead of blocking the test.
type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	f.now = f.now.Add(d)
}

func newTestGate(interval time.Duration, last time.Time, start time.Time) (*throttle.Gate, *fakeClock) {
	clock := &fakeClock{now: start}
	gate := throttle.NewGate(interval, last, &metadata.NoopSink{})
	gate.SetClock(clock.Now, clock.Sleep)
	return gate, clock
}

func TestAcquire_ElapsedPastInterval(t *testing.T) {
	start := time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC)
	gate, clock := newTestGate(10*time.Second, start.Add(-time.Minute), start)

	waited := gate.Acquire()

	assert.Equal(t, time.Duration(0), waited)
	assert.Empty(t, clock.slept)
	assert.Equal(t, start, gate.Last())
}

func TestAcquire_SecondCallBlocksForRemainder(t *testing.T) {
	start := time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC)
	interval := 10 * time.Second
	gate, clock := newTestGate(interval, time.Unix(0, 0), start)

	first := gate.Acquire()
	require.Equal(t, time.Duration(0), first)

	// no time passes between the two calls
	second := gate.Acquire()

	assert.Equal(t, interval, second)
	require.Len(t, clock.slept, 1)
	assert.Equal(t, interval, clock.slept[0])
	assert.Equal(t, start.Add(interval), gate.Last())
}

func TestAcquire_PartialElapsed(t *testing.T) {
	start := time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC)
	interval := 10 * time.Second
	gate, _ := newTestGate(interval, start.Add(-3*time.Second), start)

	waited := gate.Acquire()

	assert.Equal(t, 7*time.Second, waited)
}

func TestAcquire_ClockSkewBacksOffAndRetries(t *testing.T) {
	start := time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC)
	interval := 10 * time.Second
	// persisted timestamp 2.5s in the future
	gate, clock := newTestGate(interval, start.Add(2500*time.Millisecond), start)

	waited := gate.Acquire()

	// three 1s backoffs until the clock passes the stored timestamp,
	// then the remainder of the interval (elapsed is 500ms by then)
	require.Len(t, clock.slept, 4)
	assert.Equal(t, time.Second, clock.slept[0])
	assert.Equal(t, time.Second, clock.slept[1])
	assert.Equal(t, time.Second, clock.slept[2])
	assert.Equal(t, 9500*time.Millisecond, clock.slept[3])
	assert.Equal(t, 12500*time.Millisecond, waited)
}

func TestAcquire_NeverReturnsBeforeIntervalElapsed(t *testing.T) {
	start := time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC)
	interval := 10 * time.Second
	gate, clock := newTestGate(interval, time.Unix(0, 0), start)

	gate.Acquire()
	previous := gate.Last()
	gate.Acquire()

	assert.False(t, gate.Last().Before(previous.Add(interval)))
	assert.False(t, clock.now.Before(previous.Add(interval)))
}

func TestNewGate_NonPositiveIntervalFallsBackToDefault(t *testing.T) {
	gate := throttle.NewGate(0, time.Time{}, &metadata.NoopSink{})
	assert.Equal(t, throttle.DefaultInterval, gate.Interval())
}
