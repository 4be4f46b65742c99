package models

// TranscriptionJob is the client-side record of one job at the external
// transcription service. It is created on submission and mutated only by
// status transitions observed through polling. The token identifies at most
// one live job at the service at any time.
type TranscriptionJob struct {
	Token              string
	SourceURI          string
	MediaFormat        MediaFormat
	LanguageCandidates []string

	Status JobStatus

	// Populated only once the job reaches a terminal status.
	DetectedLanguage string
	ResultURI        string
	FailureReason    string
}

// BlobObject describes one object in blob storage. Created by an upload and
// never mutated; jobs reference it by URI but do not own it.
type BlobObject struct {
	Bucket      string
	Key         string
	ContentType string
	SizeBytes   int64
	URI         string
}
