package transcription

import (
	"context"
	"time"

	"github.com/scribeworks/transcriber-api/internal/models"
)

// Provider tags select the transcription backend for a request
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Request describes one transcription run. The audio has already been
// spooled to a request-scoped temp file by the HTTP layer.
type Request struct {
	UserID    uint
	AudioPath string
	Filename  string
	MimeType  string
	Provider  string
}

// Result is what a successful run returns to the caller
type Result struct {
	ID            uint   `json:"id"`
	Transcription string `json:"transcription"`
	Analysis      string `json:"analysis"`
}

// TranscriptionService defines the interface for transcription orchestration
type TranscriptionService interface {
	// TranscribeAndAnalyze runs the rate check, the selected provider
	// pipeline, and persists the resulting record
	TranscribeAndAnalyze(ctx context.Context, req Request) (*Result, error)

	// GetHistory returns the caller's records, newest first
	GetHistory(ctx context.Context, userID uint) ([]models.Transcription, error)
}

// Repository defines the interface for transcription record persistence.
// Records are insert-only; no update or delete is exposed.
type Repository interface {
	// Create persists a new record
	Create(ctx context.Context, record *models.Transcription) error

	// ListByUser returns all records owned by a user, newest first
	ListByUser(ctx context.Context, userID uint) ([]models.Transcription, error)

	// CountByUserSince counts a user's records created at or after the cutoff
	CountByUserSince(ctx context.Context, userID uint, since time.Time) (int64, error)
}

// RateLimiter answers whether a user may start another transcription
type RateLimiter interface {
	// CheckAndAdmit returns nil to admit or a rate-limit error to deny
	CheckAndAdmit(ctx context.Context, userID uint) error
}

// FilePipeline is the async upload-poll-generate provider workflow
type FilePipeline interface {
	// ProcessAudioFile runs upload, activation wait, and generation,
	// returning the raw response JSON
	ProcessAudioFile(ctx context.Context, path, mimeType string) (string, error)

	// ExtractText pulls the text payload out of a raw response,
	// degrading to a placeholder on malformed input
	ExtractText(rawJSON string) string
}

// Transcriber is the synchronous direct-call provider
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Summarizer produces the separate analysis text on the direct path
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
