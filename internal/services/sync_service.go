package services

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"scribe/internal/blobstore"
	"scribe/internal/models"
	"scribe/internal/persist"
	"scribe/internal/transcriber"
)

// SyncService runs the blocking transcription workflow end to end: upload,
// submit, wait for completion, fetch and persist the result. One sequential
// flow per invocation, no internal parallelism; the poll wait is the only
// suspension point.
type SyncService struct {
	Store     blobstore.Store
	Submitter *transcriber.Submitter
	Poller    *transcriber.Poller
	Fetcher   *transcriber.Fetcher
	Writer    *persist.Writer
}

// SyncResult is what the blocking workflow hands back on completion.
type SyncResult struct {
	Job        *models.TranscriptionJob
	Transcript string
	Language   string
	Summary    string
	OutputPath string
	RawPath    string
}

// SubmitAndWait uploads a local audio file, submits a transcription job
// under a token derived from the file name, blocks until the job finishes,
// and persists the result. A failed job surfaces as JobFailedError, an
// exceeded deadline as PollingTimeoutError (the remote job keeps running).
func (s *SyncService) SubmitAndWait(ctx context.Context, audioPath, outputPath string) (*SyncResult, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("%w: audio file not found: %s", models.ErrValidation, audioPath)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", audioPath, err)
	}

	if err := s.Store.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	name := filepath.Base(audioPath)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	obj, err := s.Store.Upload(ctx, "audio/"+name, contentType, f, info.Size())
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	token := fmt.Sprintf("transcribe-%s-%d", stem, time.Now().Unix())

	if err := s.Submitter.Submit(ctx, token, obj.URI, models.FormatFromURI(name)); err != nil {
		return nil, err
	}

	job, err := s.Poller.Wait(ctx, token)
	if err != nil {
		return nil, err
	}
	if job.Status == models.StatusFailed {
		return nil, &models.JobFailedError{Token: token, Reason: job.FailureReason}
	}

	result, err := s.Fetcher.Fetch(ctx, job.ResultURI)
	if err != nil {
		return nil, err
	}

	summary, err := s.Writer.Write(result, job, outputPath)
	if err != nil {
		return nil, err
	}

	language := result.Language
	if language == "" {
		language = job.DetectedLanguage
	}
	log.WithFields(log.Fields{"job": token, "language": language}).Info("Transcription complete")

	return &SyncResult{
		Job:        job,
		Transcript: result.Transcript,
		Language:   language,
		Summary:    summary,
		OutputPath: outputPath,
		RawPath:    persist.RawPath(outputPath),
	}, nil
}
