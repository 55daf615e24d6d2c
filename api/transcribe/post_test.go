package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scribeworks/transcriber-api/api/types"
	"github.com/scribeworks/transcriber-api/internal/models"
	authservice "github.com/scribeworks/transcriber-api/internal/services/auth"
	"github.com/scribeworks/transcriber-api/internal/services/transcription"
	apperrors "github.com/scribeworks/transcriber-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubService records the request it received and replies with canned values
type stubService struct {
	lastRequest  transcription.Request
	result       *transcription.Result
	err          error
	history      []models.Transcription
	historyErr   error
	pathExisted  bool
	calledUserID uint
}

func (s *stubService) TranscribeAndAnalyze(ctx context.Context, req transcription.Request) (*transcription.Result, error) {
	s.lastRequest = req
	if _, err := os.Stat(req.AudioPath); err == nil {
		s.pathExisted = true
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubService) GetHistory(ctx context.Context, userID uint) ([]models.Transcription, error) {
	s.calledUserID = userID
	return s.history, s.historyErr
}

func setupTranscribeRouter(t *testing.T, svc *stubService, maxUploadBytes int64) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	authSvc := authservice.NewService(authservice.NewRepository(db), authservice.Config{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
	token, err := authSvc.Register(context.Background(), "user@example.com", "secret123")
	require.NoError(t, err)

	deps := &types.Dependencies{
		AuthService:          authSvc,
		TranscriptionService: svc,
		TempDir:              t.TempDir(),
		MaxUploadBytes:       maxUploadBytes,
	}

	engine := gin.New()
	group := engine.Group("/api/v1/transcribe")
	RegisterRoutes(group, deps)
	return engine, token
}

func multipartUpload(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestPost(t *testing.T) {
	svc := &stubService{result: &transcription.Result{
		ID:            7,
		Transcription: "hello world",
		Analysis:      "a greeting",
	}}
	engine, token := setupTranscribeRouter(t, svc, 0)

	body, contentType := multipartUpload(t, "file", "clip.mp3", []byte("fake audio bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp types.TranscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, "hello world", resp.Transcription)
	assert.Equal(t, "a greeting", resp.Analysis)

	// the spooled file must exist during the call and be gone afterwards
	assert.True(t, svc.pathExisted)
	_, err := os.Stat(svc.lastRequest.AudioPath)
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, "clip.mp3", svc.lastRequest.Filename)
	assert.Equal(t, transcription.ProviderGemini, svc.lastRequest.Provider)
	assert.Equal(t, "audio/mpeg", svc.lastRequest.MimeType)
}

func TestPostProviderQuery(t *testing.T) {
	svc := &stubService{result: &transcription.Result{ID: 1}}
	engine, token := setupTranscribeRouter(t, svc, 0)

	body, contentType := multipartUpload(t, "file", "clip.wav", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe?model=openai", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, transcription.ProviderOpenAI, svc.lastRequest.Provider)
	assert.Equal(t, "audio/wav", svc.lastRequest.MimeType)
}

func TestPostMissingFile(t *testing.T) {
	svc := &stubService{}
	engine, token := setupTranscribeRouter(t, svc, 0)

	body, contentType := multipartUpload(t, "wrong_field", "clip.mp3", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostFileTooLarge(t *testing.T) {
	svc := &stubService{}
	engine, token := setupTranscribeRouter(t, svc, 4)

	body, contentType := multipartUpload(t, "file", "clip.mp3", []byte("more than four bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestPostUnauthorized(t *testing.T) {
	svc := &stubService{}
	engine, _ := setupTranscribeRouter(t, svc, 0)

	body, contentType := multipartUpload(t, "file", "clip.mp3", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantTag  string
	}{
		{
			name:     "rate limited",
			err:      apperrors.RateLimitError("transcriptions", "4 per 24h"),
			wantCode: http.StatusTooManyRequests,
			wantTag:  "API_RATE_LIMIT",
		},
		{
			name:     "upstream upload failure",
			err:      apperrors.New(apperrors.ErrCodeUploadBytes, "file upload failed"),
			wantCode: http.StatusBadGateway,
			wantTag:  "UPLOAD_BYTES",
		},
		{
			name:     "processing timeout",
			err:      apperrors.New(apperrors.ErrCodeUploadTimeout, "file processing timed out"),
			wantCode: http.StatusGatewayTimeout,
			wantTag:  "UPLOAD_TIMEOUT",
		},
		{
			name:     "empty transcription",
			err:      apperrors.New(apperrors.ErrCodeEmptyTranscription, "no speech recognized"),
			wantCode: http.StatusInternalServerError,
			wantTag:  "EMPTY_TRANSCRIPTION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			engine, token := setupTranscribeRouter(t, svc, 0)

			body, contentType := multipartUpload(t, "file", "clip.mp3", []byte("bytes"))
			req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", body)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)

			var resp types.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantTag, resp.Code)
		})
	}
}

func TestGetHistory(t *testing.T) {
	svc := &stubService{history: []models.Transcription{
		{ID: 2, OriginalFilename: "second.mp3"},
		{ID: 1, OriginalFilename: "first.mp3"},
	}}
	engine, token := setupTranscribeRouter(t, svc, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcribe/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp types.HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, uint(2), resp.Records[0].ID)
	assert.Equal(t, uint(1), svc.calledUserID)
}

func TestDetectMimeType(t *testing.T) {
	tests := []struct {
		declared string
		filename string
		want     string
	}{
		{"audio/ogg", "clip.mp3", "audio/ogg"},
		{"application/octet-stream", "clip.wav", "audio/wav"},
		{"", "clip.flac", "audio/flac"},
		{"", "clip.m4a", "audio/mp4"},
		{"", "clip.unknown", "audio/mpeg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, detectMimeType(tt.declared, tt.filename))
	}
}
