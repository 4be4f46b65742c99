package transcriber

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	log "github.com/sirupsen/logrus"

	"scribe/internal/models"
)

// Submitter creates transcription jobs at the external service with
// automatic language identification over a fixed candidate set.
type Submitter struct {
	api         API
	languages   []string
	settleDelay time.Duration
}

func NewSubmitter(api API, languages []string, settleDelay time.Duration) *Submitter {
	return &Submitter{api: api, languages: languages, settleDelay: settleDelay}
}

// Submit starts a job under token for the object at sourceURI. The service
// enforces one live job per token, so an existing job under the same token
// is deleted first; the settle delay then gives the service time to register
// the deletion before resubmission. That wait is best effort, not a
// confirmation that the deletion has taken effect.
func (s *Submitter) Submit(ctx context.Context, token, sourceURI string, format models.MediaFormat) error {
	_, err := s.api.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(token),
	})
	switch {
	case err == nil:
		log.WithField("job", token).Warn("Deleting existing job before resubmission")
		if _, derr := s.api.DeleteTranscriptionJob(ctx, &transcribe.DeleteTranscriptionJobInput{
			TranscriptionJobName: aws.String(token),
		}); derr != nil {
			return &models.SubmissionError{Token: token, Err: derr}
		}
		select {
		case <-time.After(s.settleDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	case isNotFound(err):
		// No prior job under this token.
	default:
		return &models.SubmissionError{Token: token, Err: err}
	}

	languages := make([]types.LanguageCode, 0, len(s.languages))
	for _, l := range s.languages {
		languages = append(languages, types.LanguageCode(l))
	}

	_, err = s.api.StartTranscriptionJob(ctx, &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(token),
		Media:                &types.Media{MediaFileUri: aws.String(sourceURI)},
		MediaFormat:          types.MediaFormat(format),
		IdentifyLanguage:     aws.Bool(true),
		LanguageOptions:      languages,
	})
	if err != nil {
		return &models.SubmissionError{Token: token, Err: err}
	}

	log.WithFields(log.Fields{
		"job":    token,
		"source": sourceURI,
		"format": format,
	}).Info("Transcription job started")
	return nil
}
