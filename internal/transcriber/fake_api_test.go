package transcriber

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
)

// fakeAPI satisfies API with per-operation function fields so each test can
// script exactly the service behavior it needs.
type fakeAPI struct {
	start func(in *transcribe.StartTranscriptionJobInput) (*transcribe.StartTranscriptionJobOutput, error)
	get   func(in *transcribe.GetTranscriptionJobInput) (*transcribe.GetTranscriptionJobOutput, error)
	del   func(in *transcribe.DeleteTranscriptionJobInput) (*transcribe.DeleteTranscriptionJobOutput, error)
}

func (f *fakeAPI) StartTranscriptionJob(_ context.Context, in *transcribe.StartTranscriptionJobInput, _ ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error) {
	return f.start(in)
}

func (f *fakeAPI) GetTranscriptionJob(_ context.Context, in *transcribe.GetTranscriptionJobInput, _ ...func(*transcribe.Options)) (*transcribe.GetTranscriptionJobOutput, error) {
	return f.get(in)
}

func (f *fakeAPI) DeleteTranscriptionJob(_ context.Context, in *transcribe.DeleteTranscriptionJobInput, _ ...func(*transcribe.Options)) (*transcribe.DeleteTranscriptionJobOutput, error) {
	return f.del(in)
}

// notFoundErr mimics the service's answer to a query for an unknown token.
func notFoundErr() error {
	return &types.BadRequestException{Message: aws.String("The requested job couldn't be found within the specified region.")}
}

func jobOutput(token string, status types.TranscriptionJobStatus) *transcribe.GetTranscriptionJobOutput {
	return &transcribe.GetTranscriptionJobOutput{
		TranscriptionJob: &types.TranscriptionJob{
			TranscriptionJobName:   aws.String(token),
			TranscriptionJobStatus: status,
		},
	}
}
