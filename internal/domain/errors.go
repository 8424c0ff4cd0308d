package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrAnalysisInFlight rejects a second analysis request while one is
// pending. The source of truth is a single slot per session, not UI state.
var ErrAnalysisInFlight = errors.New("analysis request already in flight")

// ErrStaleAnalysis marks an analysis response that arrived after the
// allocation changed or the session ended. The response is discarded.
var ErrStaleAnalysis = errors.New("analysis response is stale")

// ValidationError is a local invariant violation on an allocation mutation.
// The store is left unchanged.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid allocation update: %s", e.Reason)
}

// IncompleteAllocationError blocks an analysis request whose allocation does
// not sum to 1 within tolerance. No network call is made.
type IncompleteAllocationError struct {
	Total decimal.Decimal
}

func (e IncompleteAllocationError) Error() string {
	return fmt.Sprintf("allocation incomplete: total weight %s must equal 1", e.Total)
}

// PersistenceError wraps a document-store write failure. The in-memory
// allocation is not rolled back.
type PersistenceError struct {
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist allocation: %v", e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

// NetworkError is a transport-level failure with no HTTP response.
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e NetworkError) Unwrap() error { return e.Err }

// AnalysisBackendError is a non-2xx response from the analysis backend.
type AnalysisBackendError struct {
	StatusCode int
	Message    string
}

func (e AnalysisBackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("analysis backend failed with status code %d", e.StatusCode)
	}
	return fmt.Sprintf("analysis backend failed with status code %d: %s", e.StatusCode, e.Message)
}

// ResponseFormatError is a 2xx analysis response that cannot be mapped into
// an AnalysisResult. Partial metrics are never surfaced.
type ResponseFormatError struct {
	Reason string
}

func (e ResponseFormatError) Error() string {
	return fmt.Sprintf("malformed analysis response: %s", e.Reason)
}
