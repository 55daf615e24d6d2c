package transcribe

import (
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	authapi "github.com/scribeworks/transcriber-api/api/auth"
	"github.com/scribeworks/transcriber-api/api/types"
	"github.com/scribeworks/transcriber-api/internal/services/transcription"
	apperrors "github.com/scribeworks/transcriber-api/pkg/errors"
)

// Post handles audio upload and transcription
// @Summary Transcribe an audio file
// @Description Upload an audio file and receive its transcription and AI analysis.
// @Description The model query parameter selects the provider: gemini (default) runs a
// @Description single blended transcription+summary generation; openai transcribes via
// @Description Whisper and summarizes in a separate chat call.
// @Tags transcribe
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file"
// @Param model query string false "Provider tag" Enums(gemini, openai) default(gemini)
// @Success 200 {object} types.TranscriptionResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Failure 429 {object} types.ErrorResponse "Sliding window limit reached"
// @Failure 502 {object} types.ErrorResponse "Upstream provider failure"
// @Failure 504 {object} types.ErrorResponse "File processing timed out"
// @Router /api/v1/transcribe [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authapi.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Unauthorized"})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "multipart field 'file' is required"})
			return
		}
		if deps.MaxUploadBytes > 0 && fileHeader.Size > deps.MaxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{Error: "uploaded file is too large"})
			return
		}

		provider := c.DefaultQuery("model", transcription.ProviderGemini)

		// Spool the upload to a request-scoped temp file; it must be gone
		// on every exit path.
		tempPath, err := spoolUpload(fileHeader, deps.TempDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to store uploaded file"})
			return
		}
		defer func() {
			if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
				log.Printf("Failed to remove temp file %s: %v", tempPath, err)
			}
		}()

		result, err := deps.TranscriptionService.TranscribeAndAnalyze(c.Request.Context(), transcription.Request{
			UserID:    userID,
			AudioPath: tempPath,
			Filename:  fileHeader.Filename,
			MimeType:  detectMimeType(fileHeader.Header.Get("Content-Type"), fileHeader.Filename),
			Provider:  provider,
		})
		if err != nil {
			abortTranscribeError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.TranscriptionResponse{
			ID:            result.ID,
			Transcription: result.Transcription,
			Analysis:      result.Analysis,
		})
	}
}

// spoolUpload copies the multipart part into a uniquely named temp file and
// returns its path
func spoolUpload(fileHeader *multipart.FileHeader, tempDir string) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".tmp"
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	tempPath := filepath.Join(tempDir, "upload-"+uuid.NewString()+ext)
	dst, err := os.Create(tempPath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(tempPath)
		return "", err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", err
	}

	return tempPath, nil
}

// detectMimeType prefers the declared multipart content type, falling back
// to the file extension and finally to audio/mpeg
func detectMimeType(declared, filename string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}

	switch filepath.Ext(filename) {
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	case ".m4a", ".mp4":
		return "audio/mp4"
	default:
		return "audio/mpeg"
	}
}

func abortTranscribeError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		c.JSON(appErr.GetHTTPCode(), types.ErrorResponse{Error: appErr.Message, Code: string(appErr.Code)})
		return
	}
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "internal server error"})
}
