package store

import (
	"time"

	"github.com/arthomnix/libaoc/pkg/failure"
)

/*
Responsibilities
- Persist puzzle inputs and example HTML across sessions
- Persist the throttle timestamp across sessions

Output Characteristics
- Stable directory layout
- Idempotent writes
- Overwrite-safe reruns

The store never decides when to persist; the owning client flushes
exactly once at shutdown. Loads are read-only and never create files.
*/

// Provider is the durable-store capability. Implementations must treat
// a missing entry as a normal outcome (false, not an error).
type Provider interface {
	LoadInput(key InputKey) (string, bool)

	SaveInput(key InputKey, text string) failure.ClassifiedError

	LoadExample(key ExampleKey) (string, bool)

	SaveExample(key ExampleKey, html string) failure.ClassifiedError

	LoadThrottleTimestamp() (time.Time, bool)

	SaveThrottleTimestamp(ts time.Time) failure.ClassifiedError

	// SaveAll persists the throttle timestamp and every entry of both
	// key spaces. It is best-effort: a failing entry does not stop the
	// remaining writes. The first error encountered is returned.
	SaveAll(
		inputs map[InputKey]string,
		examples map[ExampleKey]string,
		ts time.Time,
	) failure.ClassifiedError
}
