package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"scribe/internal/blobstore"
	"scribe/internal/models"
	"scribe/internal/transcriber"
)

const storageScheme = "s3://"

// StartRequest carries exactly one of Body (binary upload, audio/* content
// type) or S3URI (pre-existing object reference, application/json content
// type). Selection is by declared content type, never by payload sniffing.
type StartRequest struct {
	ContentType string
	Body        []byte
	// Base64 marks the body as base64-encoded; it must be set explicitly by
	// the caller, decoding is never attempted speculatively.
	Base64 bool
	S3URI  string
}

type StartResult struct {
	Token     string
	SourceURI string
}

type StatusResult struct {
	Token          string
	Classification models.Classification
	Transcript     string
	Language       string
	FailureReason  string
}

// StatelessService backs the two-endpoint network API. It holds no job
// state between calls; the external service, addressed by token, is the
// only job registry. Each call is a single round trip with no waiting.
type StatelessService struct {
	Store          blobstore.Store
	Submitter      *transcriber.Submitter
	Poller         *transcriber.Poller
	Fetcher        *transcriber.Fetcher
	MaxUploadBytes int64
}

// Start uploads or references the input, submits a transcription job under
// a freshly generated token, and returns immediately. The token is the
// caller's sole correlation handle for later status checks.
func (s *StatelessService) Start(ctx context.Context, req StartRequest) (*StartResult, error) {
	ct := strings.ToLower(strings.TrimSpace(req.ContentType))

	var sourceURI string
	switch {
	case strings.HasPrefix(ct, "audio/"):
		uri, err := s.uploadBinary(ctx, req)
		if err != nil {
			return nil, err
		}
		sourceURI = uri
	case strings.HasPrefix(ct, "application/json"):
		if req.S3URI == "" {
			return nil, fmt.Errorf("%w: missing s3_uri", models.ErrValidation)
		}
		if !strings.HasPrefix(req.S3URI, storageScheme) {
			return nil, fmt.Errorf("%w: s3_uri must start with %s", models.ErrValidation, storageScheme)
		}
		sourceURI = req.S3URI
	default:
		return nil, fmt.Errorf("%w: unsupported content type %q, use audio/* for file upload or application/json for an s3_uri", models.ErrValidation, req.ContentType)
	}

	token := "transcribe-" + uuid.NewString()
	if err := s.Submitter.Submit(ctx, token, sourceURI, models.FormatFromURI(sourceURI)); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"job": token, "source": sourceURI}).Info("Started transcription job")
	return &StartResult{Token: token, SourceURI: sourceURI}, nil
}

// uploadBinary enforces the size limit before touching storage; oversized
// input is rejected with nothing stored.
func (s *StatelessService) uploadBinary(ctx context.Context, req StartRequest) (string, error) {
	data := req.Body
	if req.Base64 {
		decoded, err := base64.StdEncoding.DecodeString(string(req.Body))
		if err != nil {
			return "", fmt.Errorf("%w: body is not valid base64", models.ErrValidation)
		}
		data = decoded
	}

	if int64(len(data)) > s.MaxUploadBytes {
		return "", &models.SizeLimitError{Size: int64(len(data)), Limit: s.MaxUploadBytes}
	}

	format, _ := models.FormatFromContentType(req.ContentType)
	key := fmt.Sprintf("api-uploads/upload-%s.%s", uuid.NewString(), format.Extension())

	obj, err := s.Store.Upload(ctx, key, req.ContentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	return obj.URI, nil
}

// Status performs a single poll and classifies the outcome. A completed job
// triggers one fetch of its result payload so the response can carry the
// transcript and detected language. An unknown token surfaces as
// models.ErrNotFound.
func (s *StatelessService) Status(ctx context.Context, token string) (*StatusResult, error) {
	job, err := s.Poller.Check(ctx, token)
	if err != nil {
		return nil, err
	}

	res := &StatusResult{Token: token, Classification: models.Classify(job.Status)}
	switch res.Classification {
	case models.ClassCompleted:
		result, err := s.Fetcher.Fetch(ctx, job.ResultURI)
		if err != nil {
			return nil, err
		}
		res.Transcript = result.Transcript
		res.Language = result.Language
		if res.Language == "" {
			res.Language = job.DetectedLanguage
		}
	case models.ClassFailed:
		res.FailureReason = job.FailureReason
		if res.FailureReason == "" {
			res.FailureReason = "Unknown error"
		}
	}
	return res, nil
}
