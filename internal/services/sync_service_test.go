package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/internal/models"
	"scribe/internal/persist"
	"scribe/internal/transcriber"
)

const resultPayload = `{"jobName":"job-1","status":"COMPLETED","results":{"language_code":"en-US","transcripts":[{"transcript":"hello world"}]}}`

var testLanguages = []string{"en-US", "uk-UA", "pl-PL", "de-DE", "fr-FR"}

func resultServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(resultPayload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newSyncService(store *fakeStore, ft *fakeTranscribe, client *http.Client, timeout time.Duration) *SyncService {
	return &SyncService{
		Store:     store,
		Submitter: transcriber.NewSubmitter(ft, testLanguages, time.Millisecond),
		Poller:    transcriber.NewPoller(ft, time.Millisecond, timeout),
		Fetcher:   transcriber.NewFetcher(client),
		Writer:    &persist.Writer{},
	}
}

func writeAudioFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("fake audio bytes"), 0o644))
	return path
}

func TestSubmitAndWaitHappyPath(t *testing.T) {
	srv := resultServer(t)

	store := newFakeStore()
	ft := newFakeTranscribe()
	ft.initialStatus = types.TranscriptionJobStatusCompleted
	ft.initialResultURI = srv.URL
	ft.initialLanguage = "en-US"

	svc := newSyncService(store, ft, srv.Client(), time.Second)

	audioPath := writeAudioFile(t, "talk.mp3")
	outputPath := filepath.Join(t.TempDir(), "transcription.txt")

	result, err := svc.SubmitAndWait(context.Background(), audioPath, outputPath)
	require.NoError(t, err)

	assert.Equal(t, "hello world", result.Transcript)
	assert.Equal(t, "en-US", result.Language)
	assert.Equal(t, outputPath, result.OutputPath)
	assert.Equal(t, persist.RawPath(outputPath), result.RawPath)
	assert.Contains(t, result.Summary, "hello world")

	// The upload landed under the audio/ prefix before submission.
	assert.True(t, store.ensured)
	assert.Equal(t, []string{"audio/talk.mp3"}, store.uploads)

	// The token embeds the file stem for traceability.
	started := ft.startedTokens()
	require.Len(t, started, 1)
	assert.Contains(t, started[0], "transcribe-talk-")
	assert.Equal(t, started[0], result.Job.Token)

	// Both artifacts were persisted.
	_, err = os.Stat(outputPath)
	assert.NoError(t, err)
	_, err = os.Stat(persist.RawPath(outputPath))
	assert.NoError(t, err)
}

func TestSubmitAndWaitMissingFileIsValidationError(t *testing.T) {
	svc := newSyncService(newFakeStore(), newFakeTranscribe(), nil, time.Second)

	_, err := svc.SubmitAndWait(context.Background(), "/nonexistent/talk.mp3", "out.txt")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSubmitAndWaitFailedJob(t *testing.T) {
	store := newFakeStore()
	ft := newFakeTranscribe()
	ft.initialStatus = types.TranscriptionJobStatusFailed
	ft.initialFailure = "unsupported media"

	svc := newSyncService(store, ft, nil, time.Second)

	_, err := svc.SubmitAndWait(context.Background(), writeAudioFile(t, "talk.wav"), filepath.Join(t.TempDir(), "out.txt"))

	var failedErr *models.JobFailedError
	require.ErrorAs(t, err, &failedErr)
	assert.Equal(t, "unsupported media", failedErr.Reason)
}

func TestSubmitAndWaitTimeout(t *testing.T) {
	store := newFakeStore()
	ft := newFakeTranscribe()

	svc := newSyncService(store, ft, nil, 5*time.Millisecond)

	_, err := svc.SubmitAndWait(context.Background(), writeAudioFile(t, "talk.wav"), filepath.Join(t.TempDir(), "out.txt"))

	var timeoutErr *models.PollingTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	// The remote job is left running for a later status check.
	assert.Empty(t, ft.deleted)
}

func TestSubmitAndWaitUploadFailureStopsBeforeSubmission(t *testing.T) {
	store := newFakeStore()
	store.upErr = errors.New("storage unavailable")
	ft := newFakeTranscribe()

	svc := newSyncService(store, ft, nil, time.Second)

	_, err := svc.SubmitAndWait(context.Background(), writeAudioFile(t, "talk.wav"), filepath.Join(t.TempDir(), "out.txt"))
	require.Error(t, err)
	assert.Empty(t, ft.startedTokens())
}
