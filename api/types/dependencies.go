package types

import (
	"github.com/scribeworks/transcriber-api/internal/database"
	"github.com/scribeworks/transcriber-api/internal/services/auth"
	"github.com/scribeworks/transcriber-api/internal/services/transcription"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                   *database.DB
	AuthService          *auth.Service
	TranscriptionService transcription.TranscriptionService

	// TempDir is where multipart uploads are spooled before forwarding;
	// empty means the OS default temp directory
	TempDir string

	// MaxUploadBytes bounds the accepted multipart body size
	MaxUploadBytes int64
}
