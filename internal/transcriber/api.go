package transcriber

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/aws/smithy-go"

	"scribe/internal/models"
)

// API is the subset of the transcription service client used by this
// package. *transcribe.Client satisfies it; tests substitute fakes so no
// package-level client state is needed.
type API interface {
	StartTranscriptionJob(ctx context.Context, params *transcribe.StartTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error)
	GetTranscriptionJob(ctx context.Context, params *transcribe.GetTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.GetTranscriptionJobOutput, error)
	DeleteTranscriptionJob(ctx context.Context, params *transcribe.DeleteTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.DeleteTranscriptionJobOutput, error)
}

// isNotFound reports whether the service rejected a query because no job
// exists under the token. The service answers such queries with a bad
// request rather than a dedicated not-found error, so both are checked.
func isNotFound(err error) bool {
	var badRequest *types.BadRequestException
	var notFound *types.NotFoundException
	if errors.As(err, &badRequest) || errors.As(err, &notFound) {
		return true
	}
	// Errors that crossed a serialization boundary keep only their code.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "BadRequestException" || code == "NotFoundException"
	}
	return false
}

// jobFromService converts the service's job record into the local model.
func jobFromService(tj *types.TranscriptionJob) *models.TranscriptionJob {
	job := &models.TranscriptionJob{
		Token:            aws.ToString(tj.TranscriptionJobName),
		MediaFormat:      models.MediaFormat(tj.MediaFormat),
		Status:           models.JobStatus(tj.TranscriptionJobStatus),
		DetectedLanguage: string(tj.LanguageCode),
		FailureReason:    aws.ToString(tj.FailureReason),
	}
	if tj.Media != nil {
		job.SourceURI = aws.ToString(tj.Media.MediaFileUri)
	}
	if tj.Transcript != nil {
		job.ResultURI = aws.ToString(tj.Transcript.TranscriptFileUri)
	}
	return job
}
