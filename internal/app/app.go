package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	log "github.com/sirupsen/logrus"

	"scribe/internal/blobstore"
	"scribe/internal/config"
	"scribe/internal/persist"
	"scribe/internal/services"
	"scribe/internal/transcriber"
)

// App wires the components once from config. Service clients are built here
// and injected explicitly, so tests can substitute fakes for the blob store
// and the transcription service without process-wide state.
type App struct {
	Config *config.Config

	Store     blobstore.Store
	Submitter *transcriber.Submitter
	Poller    *transcriber.Poller
	Fetcher   *transcriber.Fetcher
	Writer    *persist.Writer

	Sync      *services.SyncService
	Stateless *services.StatelessService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	a := &App{Config: cfg}
	a.Store = blobstore.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Storage.Bucket, cfg.AWS.Region)

	api := transcribe.NewFromConfig(awsCfg)
	a.Submitter = transcriber.NewSubmitter(api, cfg.Transcribe.LanguageOptions, cfg.Transcribe.SettleDelay)
	a.Poller = transcriber.NewPoller(api, cfg.Transcribe.PollInterval, cfg.Transcribe.WaitTimeout)
	a.Fetcher = transcriber.NewFetcher(nil)
	a.Writer = &persist.Writer{}

	a.Sync = &services.SyncService{
		Store:     a.Store,
		Submitter: a.Submitter,
		Poller:    a.Poller,
		Fetcher:   a.Fetcher,
		Writer:    a.Writer,
	}
	a.Stateless = &services.StatelessService{
		Store:          a.Store,
		Submitter:      a.Submitter,
		Poller:         a.Poller,
		Fetcher:        a.Fetcher,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}

	log.WithFields(log.Fields{
		"region": cfg.AWS.Region,
		"bucket": cfg.Storage.Bucket,
	}).Info("Application initialization complete")
	return a, nil
}

func loadAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWS.Region),
	}
	// Static credentials from config take precedence; otherwise the SDK's
	// default chain (env, shared config, instance role) applies.
	if cfg.AWS.AccessKeyID != "" && cfg.AWS.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, ""),
		))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
