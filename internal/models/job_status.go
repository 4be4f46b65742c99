package models

/*
Job status constants for use throughout the codebase.
The first five mirror the wire values reported by the transcription service;
TIMED_OUT and NOT_FOUND are synthesized locally and never come off the wire.
*/

type JobStatus string

const (
	StatusSubmitted  JobStatus = "SUBMITTED"
	StatusQueued     JobStatus = "QUEUED"
	StatusInProgress JobStatus = "IN_PROGRESS"
	StatusCompleted  JobStatus = "COMPLETED"
	StatusFailed     JobStatus = "FAILED"

	// Client-synthesized statuses.
	StatusTimedOut JobStatus = "TIMED_OUT"
	StatusNotFound JobStatus = "NOT_FOUND"
)

// Terminal reports whether no further status transition can occur. TimedOut
// is deliberately not terminal: the underlying job may still be running.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Classification is the single-shot view of a job used by the stateless
// boundary, which cannot block across an invocation.
type Classification string

const (
	ClassProcessing Classification = "processing"
	ClassCompleted  Classification = "completed"
	ClassFailed     Classification = "failed"
	ClassNotFound   Classification = "not_found"
)

// Classify maps a job status to exactly one classification. Every
// service-reported status lands in processing, completed, or failed;
// Submitted, Queued and InProgress all count as processing.
func Classify(s JobStatus) Classification {
	switch s {
	case StatusCompleted:
		return ClassCompleted
	case StatusFailed:
		return ClassFailed
	case StatusNotFound:
		return ClassNotFound
	default:
		return ClassProcessing
	}
}
