package puzzle

import (
	"fmt"

	"github.com/arthomnix/libaoc/internal/metadata"
	"github.com/arthomnix/libaoc/pkg/failure"
)

type ConversionErrorCause string

const (
	ErrCauseNotHTML           = "not HTML"
	ErrCauseNoNarrative       = "no narrative"
	ErrCauseConversionFailure = "conversion failed"
)

type ConversionError struct {
	Message   string
	Retryable bool
	Cause     ConversionErrorCause
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion error: %s", e.Cause)
}

func (e *ConversionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapConversionErrorToMetadataCause maps conversion-local error
// semantics to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapConversionErrorToMetadataCause(err *ConversionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotHTML, ErrCauseNoNarrative:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
