package whisper

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
	apperrors "github.com/scribeworks/transcriber-api/pkg/errors"
)

// Transcriber turns an audio file into plain transcript text
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Config holds transcription call settings
type Config struct {
	Model    string
	Language string
}

// Client implements Transcriber against the OpenAI audio API
type Client struct {
	api      *openai.Client
	model    string
	language string
}

// NewClient creates a new whisper client
func NewClient(apiKey string, cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	return &Client{
		api:      openai.NewClient(apiKey),
		model:    cfg.Model,
		language: cfg.Language,
	}
}

// Transcribe sends the audio file for synchronous transcription and returns
// the plain text result. Temperature is pinned to zero for determinism.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	req := openai.AudioRequest{
		Model:       c.model,
		FilePath:    audioPath,
		Language:    c.language,
		Temperature: 0,
		Format:      openai.AudioResponseFormatText,
	}

	resp, err := c.api.CreateTranscription(ctx, req)
	if err != nil {
		return "", apperrors.ExternalServiceError("openai", err)
	}

	return resp.Text, nil
}
