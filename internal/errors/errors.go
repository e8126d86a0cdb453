// Package errors defines the typed error conditions the build and query
// pipelines can raise, following a sentinel-plus-context pattern: a bare
// sentinel for errors.Is checks, and a struct carrying the detail that
// produced it.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrTransientDocument is returned when a single document fails to
	// decode, extract, or tokenize. The build continues past it.
	ErrTransientDocument = errors.New("transient document error")

	// ErrBucket is returned when a bucket's partial-count or
	// partial-index merge fails outright.
	ErrBucket = errors.New("bucket error")

	// ErrMerge is returned when the final k-way merge across partial
	// indexes fails.
	ErrMerge = errors.New("merge error")

	// ErrResourceExhaustion is returned when the process approaches or
	// exceeds its configured memory ceiling.
	ErrResourceExhaustion = errors.New("resource exhaustion")

	// ErrConfig is returned when build or query configuration fails
	// validation.
	ErrConfig = errors.New("configuration error")

	// ErrQuery is returned when a query cannot be answered (malformed
	// query file line, empty query after preprocessing, etc).
	ErrQuery = errors.New("query error")

	// ErrJobNotFound is returned when a job is not found.
	ErrJobNotFound = errors.New("job not found")
)

// TransientDocumentError represents a single document's failure to
// process. The pipeline logs it and moves on to the next document.
type TransientDocumentError struct {
	DocID uint32
	URL   string
	Cause error
}

func (e *TransientDocumentError) Error() string {
	return fmt.Sprintf("document %d (%s): %v", e.DocID, e.URL, e.Cause)
}

func (e *TransientDocumentError) Unwrap() error { return e.Cause }

func (e *TransientDocumentError) Is(target error) bool {
	return target == ErrTransientDocument
}

// NewTransientDocumentError creates a new TransientDocumentError
func NewTransientDocumentError(docID uint32, url string, cause error) *TransientDocumentError {
	return &TransientDocumentError{DocID: docID, URL: url, Cause: cause}
}

// BucketError represents a bucket-scoped failure during partial-index
// construction.
type BucketError struct {
	Start, End int
	Cause      error
}

func (e *BucketError) Error() string {
	return fmt.Sprintf("bucket [%d, %d): %v", e.Start, e.End, e.Cause)
}

func (e *BucketError) Unwrap() error { return e.Cause }

func (e *BucketError) Is(target error) bool {
	return target == ErrBucket
}

// NewBucketError creates a new BucketError
func NewBucketError(start, end int, cause error) *BucketError {
	return &BucketError{Start: start, End: end, Cause: cause}
}

// MergeError represents a failure of the final cross-bucket merge.
type MergeError struct {
	Cause error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("final merge: %v", e.Cause)
}

func (e *MergeError) Unwrap() error { return e.Cause }

func (e *MergeError) Is(target error) bool {
	return target == ErrMerge
}

// NewMergeError creates a new MergeError
func NewMergeError(cause error) *MergeError {
	return &MergeError{Cause: cause}
}

// ResourceExhaustionError represents the process exceeding its memory
// ceiling.
type ResourceExhaustionError struct {
	CeilingMB  int
	ObservedMB int
}

func (e *ResourceExhaustionError) Error() string {
	return fmt.Sprintf("memory usage %dMB exceeds ceiling %dMB", e.ObservedMB, e.CeilingMB)
}

func (e *ResourceExhaustionError) Is(target error) bool {
	return target == ErrResourceExhaustion
}

// NewResourceExhaustionError creates a new ResourceExhaustionError
func NewResourceExhaustionError(ceilingMB, observedMB int) *ResourceExhaustionError {
	return &ResourceExhaustionError{CeilingMB: ceilingMB, ObservedMB: observedMB}
}

// ConfigError represents a configuration validation failure.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// QueryError represents a failure to answer a single query.
type QueryError struct {
	Query string
	Cause error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q: %v", e.Query, e.Cause)
}

func (e *QueryError) Unwrap() error { return e.Cause }

func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}

// NewQueryError creates a new QueryError
func NewQueryError(query string, cause error) *QueryError {
	return &QueryError{Query: query, Cause: cause}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}
