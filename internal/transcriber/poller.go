package transcriber

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	log "github.com/sirupsen/logrus"

	"scribe/internal/models"
)

// Poller queries job status at the external service. It drives both the
// blocking wait used by the CLI workflow and the single-shot check used by
// the stateless API.
type Poller struct {
	api      API
	interval time.Duration
	timeout  time.Duration
}

func NewPoller(api API, interval, timeout time.Duration) *Poller {
	return &Poller{api: api, interval: interval, timeout: timeout}
}

// Check performs a single status query. A query for an unknown token yields
// models.ErrNotFound immediately; transport errors surface directly.
func (p *Poller) Check(ctx context.Context, token string) (*models.TranscriptionJob, error) {
	out, err := p.api.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(token),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrNotFound, token)
		}
		return nil, err
	}
	return jobFromService(out.TranscriptionJob), nil
}

// Wait polls at a fixed interval until the job reaches a terminal status or
// the timeout elapses, whichever comes first. Transport errors are absorbed
// and the loop keeps going, bounded by the same timeout. On timeout the
// remote job is not cancelled; it may still be running.
func (p *Poller) Wait(ctx context.Context, token string) (*models.TranscriptionJob, error) {
	start := time.Now()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		job, err := p.Check(ctx, token)
		switch {
		case err == nil:
			if job.Status.Terminal() {
				log.WithFields(log.Fields{
					"job":     token,
					"status":  job.Status,
					"elapsed": time.Since(start).Round(time.Second),
				}).Info("Job finished")
				return job, nil
			}
			log.WithFields(log.Fields{"job": token, "status": job.Status}).Debug("Job still running")
		case errors.Is(err, models.ErrNotFound):
			return nil, err
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			log.WithError(err).WithField("job", token).Warn("Status query failed, retrying")
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		if elapsed := time.Since(start); elapsed > p.timeout {
			return nil, &models.PollingTimeoutError{Token: token, Elapsed: elapsed}
		}
	}
}
