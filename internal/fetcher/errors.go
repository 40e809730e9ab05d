package fetcher

import (
	"fmt"

	"github.com/arthomnix/libaoc/internal/metadata"
	"github.com/arthomnix/libaoc/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseNetworkFailure        = "network issues"
	ErrCauseReadResponseBodyError = "failed to read response body"
	ErrCausePuzzleNotFound        = "puzzle not available"
	ErrCauseBadSession            = "session rejected"
	ErrCauseRequest5xx            = "5xx"
	ErrCauseRequestFailed         = "request failed"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s", e.Cause)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable.
// The client itself never retries; the classification is for callers.
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNetworkFailure, ErrCauseRequest5xx, ErrCauseReadResponseBodyError:
		return metadata.CauseNetworkFailure
	case ErrCausePuzzleNotFound, ErrCauseBadSession:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
