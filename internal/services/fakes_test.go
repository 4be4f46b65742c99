package services

import (
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"

	"scribe/internal/models"
)

// fakeStore keeps uploaded objects in memory and records call activity so
// tests can assert what reached storage.
type fakeStore struct {
	mu        sync.Mutex
	bucket    string
	objects   map[string][]byte
	ensured   bool
	uploads   []string
	upErr     error
	bucketErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{bucket: "test-bucket", objects: map[string][]byte{}}
}

func (s *fakeStore) EnsureBucket(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bucketErr != nil {
		return s.bucketErr
	}
	s.ensured = true
	return nil
}

func (s *fakeStore) Upload(_ context.Context, key, contentType string, body io.Reader, size int64) (models.BlobObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upErr != nil {
		return models.BlobObject{}, s.upErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return models.BlobObject{}, err
	}
	s.objects[key] = data
	s.uploads = append(s.uploads, key)
	return models.BlobObject{
		Bucket:      s.bucket,
		Key:         key,
		ContentType: contentType,
		SizeBytes:   size,
		URI:         s.URI(key),
	}, nil
}

func (s *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeStore) URI(key string) string {
	return "s3://" + s.bucket + "/" + key
}

// fakeTranscribe is a stateful transcription service double. Started jobs
// land in the jobs map; tests drive them to a terminal state through
// complete or fail before the poller looks again.
type fakeTranscribe struct {
	mu      sync.Mutex
	jobs    map[string]*types.TranscriptionJob
	started []string
	deleted []string
	// status applied to every newly started job. Defaults to IN_PROGRESS.
	initialStatus types.TranscriptionJobStatus
	// populated onto newly started jobs when the initial status is terminal.
	initialResultURI string
	initialLanguage  string
	initialFailure   string
	startErr         error
}

func newFakeTranscribe() *fakeTranscribe {
	return &fakeTranscribe{
		jobs:          map[string]*types.TranscriptionJob{},
		initialStatus: types.TranscriptionJobStatusInProgress,
	}
}

func (f *fakeTranscribe) StartTranscriptionJob(_ context.Context, in *transcribe.StartTranscriptionJobInput, _ ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return nil, f.startErr
	}
	token := aws.ToString(in.TranscriptionJobName)
	job := &types.TranscriptionJob{
		TranscriptionJobName:   in.TranscriptionJobName,
		TranscriptionJobStatus: f.initialStatus,
	}
	if f.initialResultURI != "" {
		job.Transcript = &types.Transcript{TranscriptFileUri: aws.String(f.initialResultURI)}
	}
	if f.initialLanguage != "" {
		job.LanguageCode = types.LanguageCode(f.initialLanguage)
	}
	if f.initialFailure != "" {
		job.FailureReason = aws.String(f.initialFailure)
	}
	f.jobs[token] = job
	f.started = append(f.started, token)
	return &transcribe.StartTranscriptionJobOutput{}, nil
}

func (f *fakeTranscribe) GetTranscriptionJob(_ context.Context, in *transcribe.GetTranscriptionJobInput, _ ...func(*transcribe.Options)) (*transcribe.GetTranscriptionJobOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[aws.ToString(in.TranscriptionJobName)]
	if !ok {
		return nil, &types.BadRequestException{Message: aws.String("The requested job couldn't be found within the specified region.")}
	}
	copied := *job
	return &transcribe.GetTranscriptionJobOutput{TranscriptionJob: &copied}, nil
}

func (f *fakeTranscribe) DeleteTranscriptionJob(_ context.Context, in *transcribe.DeleteTranscriptionJobInput, _ ...func(*transcribe.Options)) (*transcribe.DeleteTranscriptionJobOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := aws.ToString(in.TranscriptionJobName)
	delete(f.jobs, token)
	f.deleted = append(f.deleted, token)
	return &transcribe.DeleteTranscriptionJobOutput{}, nil
}

// seed registers a job without going through StartTranscriptionJob.
func (f *fakeTranscribe) seed(token string, status types.TranscriptionJobStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[token] = &types.TranscriptionJob{
		TranscriptionJobName:   aws.String(token),
		TranscriptionJobStatus: status,
	}
}

// complete drives every known job to COMPLETED with the given result URI.
func (f *fakeTranscribe) complete(resultURI, language string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, job := range f.jobs {
		job.TranscriptionJobStatus = types.TranscriptionJobStatusCompleted
		job.LanguageCode = types.LanguageCode(language)
		job.Transcript = &types.Transcript{TranscriptFileUri: aws.String(resultURI)}
	}
}

// fail drives every known job to FAILED with the given reason.
func (f *fakeTranscribe) fail(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, job := range f.jobs {
		job.TranscriptionJobStatus = types.TranscriptionJobStatusFailed
		job.FailureReason = aws.String(reason)
	}
}

func (f *fakeTranscribe) startedTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.started...)
}
