package metadata

import (
	"log/slog"
	"time"
)

/*
Metadata Collected
- Fetch timestamps, HTTP status codes, content hashes
- Cache lookups (which tier answered)
- Throttle waits
- Flush summaries

Logging Goals
- Debuggable client behavior
- Post-run auditability
- Failure diagnostics

Determinism guarantees:
 - Metadata does not affect control flow
 - No component may read metadata to influence client decisions

Metadata is write-only.
*/

// CacheTier identifies which tier answered a cache lookup.
type CacheTier string

const (
	TierMemory  CacheTier = "memory"
	TierDurable CacheTier = "durable"
	TierMiss    CacheTier = "miss"
)

type Sink interface {
	RecordFetch(
		fetchURL string,
		httpStatus int,
		duration time.Duration,
		sizeByte int,
		contentHash string,
	)

	RecordCacheLookup(space string, key string, tier CacheTier)

	RecordThrottleWait(waited time.Duration)

	RecordFlush(inputEntries int, exampleEntries int)

	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
	)
}

// Compile-time interface checks
var _ Sink = (*NoopSink)(nil)
var _ Sink = (*SlogSink)(nil)

// NoopSink implements Sink but does nothing.
// The client (or a test) can decide whether to inject SlogSink or NoopSink.
// Purpose is to make metadata orthogonal.
type NoopSink struct{}

func (n *NoopSink) RecordFetch(
	fetchURL string,
	httpStatus int,
	duration time.Duration,
	sizeByte int,
	contentHash string,
) {
}

func (n *NoopSink) RecordCacheLookup(space string, key string, tier CacheTier) {}

func (n *NoopSink) RecordThrottleWait(waited time.Duration) {}

func (n *NoopSink) RecordFlush(inputEntries int, exampleEntries int) {}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
) {
}

// SlogSink records metadata events through log/slog.
// Events are recorded synchronously in the order they are received;
// ordering is provided for debuggability, not causality.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink backed by the given logger.
// A nil logger falls back to slog.Default().
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) RecordFetch(
	fetchURL string,
	httpStatus int,
	duration time.Duration,
	sizeByte int,
	contentHash string,
) {
	s.logger.Info("fetch",
		"url", fetchURL,
		"status", httpStatus,
		"duration", duration,
		"bytes", sizeByte,
		"hash", contentHash,
	)
}

func (s *SlogSink) RecordCacheLookup(space string, key string, tier CacheTier) {
	s.logger.Debug("cache lookup",
		"space", space,
		"key", key,
		"tier", string(tier),
	)
}

func (s *SlogSink) RecordThrottleWait(waited time.Duration) {
	if waited == 0 {
		return
	}
	s.logger.Info("throttled", "waited", waited)
}

func (s *SlogSink) RecordFlush(inputEntries int, exampleEntries int) {
	s.logger.Debug("flushed caches",
		"inputs", inputEntries,
		"examples", exampleEntries,
	)
}

func (s *SlogSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
) {
	s.logger.Warn("error",
		"observed_at", observedAt,
		"package", packageName,
		"action", action,
		"cause", cause.String(),
		"details", details,
	)
}
