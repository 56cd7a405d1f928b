// Package ingestion turns batches of raw rows or posting URLs into stored
// application records, reporting per-row success and failure.
package ingestion

import (
	"fmt"
	"strings"
)

// FailureKind classifies a row-scoped failure.
type FailureKind string

const (
	// FailureValidation marks a row with malformed or missing required fields,
	// detected before any I/O.
	FailureValidation FailureKind = "validation"
	// FailureResolution marks a row whose referenced user does not exist.
	FailureResolution FailureKind = "resolution"
	// FailureGateway marks a row whose external fetch or AI call failed,
	// timed out, or returned output that failed schema validation.
	FailureGateway FailureKind = "gateway"
	// FailurePersistence marks a row whose store write failed.
	FailurePersistence FailureKind = "persistence"
)

// RowFailure attributes a failure back to its originating input row.
type RowFailure struct {
	Index  int         `json:"index"`
	Input  string      `json:"input"`
	Kind   FailureKind `json:"kind"`
	Reason string      `json:"reason"`
}

// ValidationFailure names the offending fields of a rejected row.
type ValidationFailure struct {
	Fields []string
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("invalid row: %s", strings.Join(e.Fields, ", "))
}

// BatchError is the only batch-fatal failure: the input could not be parsed
// at all, so no row processing was attempted.
type BatchError struct {
	Message string
	Cause   error
}

func (e *BatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("batch rejected: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("batch rejected: %s", e.Message)
}

func (e *BatchError) Unwrap() error {
	return e.Cause
}
