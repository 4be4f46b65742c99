package models

import (
	"path"
	"strings"
)

// MediaFormat is the container format declared to the transcription service.
type MediaFormat string

const (
	FormatWav  MediaFormat = "wav"
	FormatMp3  MediaFormat = "mp3"
	FormatMp4  MediaFormat = "mp4"
	FormatFlac MediaFormat = "flac"
	FormatOgg  MediaFormat = "ogg"
	FormatWebm MediaFormat = "webm"
)

// DefaultFormat is used when neither the content type nor the file extension
// matches a known format.
const DefaultFormat = FormatWav

var contentTypeFormats = map[string]MediaFormat{
	"audio/wav":   FormatWav,
	"audio/wave":  FormatWav,
	"audio/x-wav": FormatWav,
	"audio/mpeg":  FormatMp3,
	"audio/mp3":   FormatMp3,
	"audio/mp4":   FormatMp4,
	"audio/flac":  FormatFlac,
	"audio/ogg":   FormatOgg,
	"audio/webm":  FormatWebm,
}

var extensionFormats = map[string]MediaFormat{
	"wav":  FormatWav,
	"mp3":  FormatMp3,
	"mp4":  FormatMp4,
	"flac": FormatFlac,
	"ogg":  FormatOgg,
	"webm": FormatWebm,
}

// FormatFromContentType maps a declared content type to a media format.
// Matching is case-insensitive and ignores media type parameters. The second
// return value reports whether the type matched the table; callers in the
// upload path fall back to DefaultFormat, strict callers reject.
func FormatFromContentType(contentType string) (MediaFormat, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if f, ok := contentTypeFormats[ct]; ok {
		return f, true
	}
	return DefaultFormat, false
}

// FormatFromURI infers the media format from the trailing extension of a
// file name or storage URI. Unmatched extensions default to DefaultFormat.
func FormatFromURI(uri string) MediaFormat {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(uri), "."))
	if f, ok := extensionFormats[ext]; ok {
		return f
	}
	return DefaultFormat
}

// Extension returns the canonical file extension for the format.
func (f MediaFormat) Extension() string {
	return string(f)
}
