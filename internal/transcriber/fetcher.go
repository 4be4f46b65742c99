package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"scribe/internal/models"
)

// TranscriptResult is the parsed result payload of a completed job.
type TranscriptResult struct {
	Transcript string
	Language   string
	Raw        []byte
}

// transcriptPayload mirrors the service's result document. Only the fields
// consumed here are declared.
type transcriptPayload struct {
	Results struct {
		LanguageCode string `json:"language_code"`
		Transcripts  []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

// Fetcher downloads and parses completed transcription payloads. The result
// URI is a plain HTTPS URL issued by the service, not a storage API object.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client}
}

// Fetch retrieves and parses the result payload of a completed job. The
// transcript is taken from the payload's first transcript alternative. The
// payload is static once the job is terminal, so failures are not retried.
func (f *Fetcher) Fetch(ctx context.Context, resultURI string) (*TranscriptResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resultURI, nil)
	if err != nil {
		return nil, &models.FetchError{URI: resultURI, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &models.FetchError{URI: resultURI, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.FetchError{URI: resultURI, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.FetchError{URI: resultURI, Err: err}
	}

	var payload transcriptPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &models.FetchError{URI: resultURI, Err: err}
	}
	if len(payload.Results.Transcripts) == 0 {
		return nil, &models.FetchError{URI: resultURI, Err: errors.New("payload contains no transcript alternatives")}
	}

	return &TranscriptResult{
		Transcript: payload.Results.Transcripts[0].Transcript,
		Language:   payload.Results.LanguageCode,
		Raw:        raw,
	}, nil
}
