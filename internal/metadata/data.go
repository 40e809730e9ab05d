package metadata

/*
ErrorCause is a closed, canonical classification used exclusively for
observability (logging, metrics, reporting).

Rules:
 - ErrorCause is for observability only.
 - It must never be used to derive retry, continuation, or abort decisions.
 - ErrorCause values MUST have stable, package-agnostic semantics.
 - Client packages MAY map their local errors to ErrorCause,
   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

const (
	// CauseUnknown: the failure does not map cleanly to any known category.
	// Used as a safe fallback.
	CauseUnknown ErrorCause = iota

	// CauseNetworkFailure: transport failure or remote unavailability.
	CauseNetworkFailure

	// CauseStorageFailure: the durable store could not be read or written.
	CauseStorageFailure

	// CauseContentInvalid: a fetched document did not have the expected shape.
	CauseContentInvalid

	// CauseClockAnomaly: the persisted throttle timestamp lies in the future
	// relative to the current clock.
	CauseClockAnomaly
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network failure"
	case CauseStorageFailure:
		return "storage failure"
	case CauseContentInvalid:
		return "content invalid"
	case CauseClockAnomaly:
		return "clock anomaly"
	default:
		return "unknown"
	}
}
