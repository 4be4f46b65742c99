package persist

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"scribe/internal/models"
	"scribe/internal/transcriber"
)

// Writer materializes a completed job as two files: the raw service payload
// verbatim and a human-readable summary. Repeated runs overwrite both.
type Writer struct{}

// RawPath derives the raw-payload path from the summary path by swapping
// the .txt extension for a _full.json suffix.
func RawPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, ".txt") + "_full.json"
}

// Write stores both artifacts and returns the formatted summary text.
func (w *Writer) Write(result *transcriber.TranscriptResult, job *models.TranscriptionJob, outputPath string) (string, error) {
	rawPath := RawPath(outputPath)
	if err := os.WriteFile(rawPath, result.Raw, 0o644); err != nil {
		return "", fmt.Errorf("write raw payload: %w", err)
	}

	summary := FormatSummary(result, job)
	if err := os.WriteFile(outputPath, []byte(summary), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	log.WithFields(log.Fields{"summary": outputPath, "raw": rawPath}).Info("Saved result")
	return summary, nil
}

// FormatSummary renders the transcript with the job metadata a reader needs
// to trace it back to the service: token, status, detected language.
func FormatSummary(result *transcriber.TranscriptResult, job *models.TranscriptionJob) string {
	language := result.Language
	if language == "" {
		language = job.DetectedLanguage
	}

	divider := strings.Repeat("=", 60)
	rule := strings.Repeat("-", 60)

	var b strings.Builder
	b.WriteString("TRANSCRIPTION RESULT\n")
	b.WriteString(divider + "\n\n")
	b.WriteString("Transcript:\n")
	b.WriteString(rule + "\n")
	b.WriteString(result.Transcript + "\n")
	b.WriteString(rule + "\n\n")
	b.WriteString("Metadata:\n")
	fmt.Fprintf(&b, "Job Name: %s\n", job.Token)
	fmt.Fprintf(&b, "Status: %s\n", job.Status)
	fmt.Fprintf(&b, "Detected Language: %s\n", language)
	return b.String()
}
