package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound   = errors.New("job not found")
	ErrValidation = errors.New("validation error")
)

// StorageError wraps a failed blob storage operation. It is uncategorized
// and never retried at this layer; retry policy belongs to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// SubmissionError wraps a failure to create a job at the external service.
type SubmissionError struct {
	Token string
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit job %s: %v", e.Token, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// SizeLimitError reports an oversized binary upload, rejected before
// anything is stored.
type SizeLimitError struct {
	Size  int64
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("payload of %d bytes exceeds the %d byte limit", e.Size, e.Limit)
}

// PollingTimeoutError reports that the blocking wait deadline elapsed
// without the job reaching a terminal status. The remote job is not
// cancelled and may still complete.
type PollingTimeoutError struct {
	Token   string
	Elapsed time.Duration
}

func (e *PollingTimeoutError) Error() string {
	return fmt.Sprintf("job %s did not finish within %s", e.Token, e.Elapsed.Round(time.Millisecond))
}

// JobFailedError reports a service-side terminal failure.
type JobFailedError struct {
	Token  string
	Reason string
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("job %s failed: %s", e.Token, e.Reason)
}

// FetchError reports a malformed or unreachable result payload. The payload
// of a terminal job is static, so fetches are never retried.
type FetchError struct {
	URI string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch result %s: %v", e.URI, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
