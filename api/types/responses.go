package types

import "github.com/scribeworks/transcriber-api/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrorResponse is the generic error envelope
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AuthResponse carries an issued bearer token
type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// TranscriptionResponse is returned by the transcribe endpoint
type TranscriptionResponse struct {
	ID            uint   `json:"id"`
	Transcription string `json:"transcription"`
	Analysis      string `json:"analysis"`
}

// HistoryResponse lists a user's past records, newest first
type HistoryResponse struct {
	Records []models.Transcription `json:"records"`
	Count   int                    `json:"count"`
}
