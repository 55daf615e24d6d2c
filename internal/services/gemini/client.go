package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	apperrors "github.com/scribeworks/transcriber-api/pkg/errors"
)

const (
	// transcribePrompt is the fixed instruction sent with every file; the
	// single generation call blends transcription and summary.
	transcribePrompt = "Transcribe this audio clip and provide a brief summary of the content."

	// Fallback strings returned by ExtractText instead of an error
	noContentPlaceholder  = "No text content found in response."
	parseFailPlaceholder  = "Error parsing AI response."
	defaultAudioMimeType  = "audio/mpeg"
	defaultUploadBaseURL  = "https://generativelanguage.googleapis.com/upload/v1beta/files"
	defaultGenerateURL    = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"
)

// Config holds client settings
type Config struct {
	APIKey          string
	UploadBaseURL   string
	GenerateURL     string
	PollInterval    time.Duration
	MaxPollAttempts int
	Timeout         time.Duration
}

// Client drives the Gemini file upload, activation and generation workflow.
// Uploads are one-shot: a session URL is consumed by a single byte-upload
// request that both uploads and finalizes the file.
type Client struct {
	httpClient      *http.Client
	apiKey          string
	uploadBaseURL   string
	generateURL     string
	pollInterval    time.Duration
	maxPollAttempts int

	// sleep is swapped out in tests to run the poll loop without wall-clock delay
	sleep func(time.Duration)
}

// NewClient creates a new Gemini client
func NewClient(cfg Config) *Client {
	if cfg.UploadBaseURL == "" {
		cfg.UploadBaseURL = defaultUploadBaseURL
	}
	if cfg.GenerateURL == "" {
		cfg.GenerateURL = defaultGenerateURL
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.MaxPollAttempts <= 0 {
		cfg.MaxPollAttempts = 10
	}

	return &Client{
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		apiKey:          cfg.APIKey,
		uploadBaseURL:   cfg.UploadBaseURL,
		generateURL:     cfg.GenerateURL,
		pollInterval:    cfg.PollInterval,
		maxPollAttempts: cfg.MaxPollAttempts,
		sleep:           time.Sleep,
	}
}

// ProcessAudioFile runs the full pipeline for a local audio file and returns
// the raw generateContent JSON. Callers extract text with ExtractText.
func (c *Client) ProcessAudioFile(ctx context.Context, path, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = defaultAudioMimeType
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to stat audio file")
	}
	size := info.Size()

	sessionURL, err := c.InitiateUpload(ctx, mimeType, size, "AudioUpload")
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to open audio file")
	}
	defer func() { _ = f.Close() }()

	fileURI, err := c.UploadBytes(ctx, sessionURL, f, size)
	if err != nil {
		return "", err
	}

	if err := c.WaitForActive(ctx, fileURI); err != nil {
		return "", err
	}

	return c.GenerateContent(ctx, fileURI, mimeType)
}

// InitiateUpload starts a resumable upload session and returns the one-shot
// session URL from the provider
func (c *Client) InitiateUpload(ctx context.Context, mimeType string, sizeBytes int64, displayName string) (string, error) {
	body, err := json.Marshal(startUploadRequest{File: fileMetadata{DisplayName: displayName}})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to encode upload metadata")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadBaseURL, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUploadInit, "failed to build init-upload request")
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.FormatInt(sizeBytes, 10))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUploadInit, "init-upload request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		return "", apperrors.Newf(apperrors.ErrCodeUploadInit,
			"init-upload returned status %d", resp.StatusCode).
			WithDetail("body", string(errBody))
	}

	sessionURL := resp.Header.Get("X-Goog-Upload-URL")
	if sessionURL == "" {
		return "", apperrors.New(apperrors.ErrCodeUploadInit, "provider did not return an upload session URL")
	}

	return sessionURL, nil
}

// UploadBytes streams the full content to the session URL in a single
// request that marks both upload and finalize, and returns the remote file URI
func (c *Client) UploadBytes(ctx context.Context, sessionURL string, content io.Reader, sizeBytes int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sessionURL, content)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUploadBytes, "failed to build byte-upload request")
	}
	req.ContentLength = sizeBytes
	req.Header.Set("X-Goog-Upload-Offset", "0")
	req.Header.Set("X-Goog-Upload-Command", "upload, finalize")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUploadBytes, "byte-upload request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Surface the provider's error body for diagnosis
		errBody, _ := io.ReadAll(resp.Body)
		log.Printf("Gemini upload error body: %s", string(errBody))
		return "", apperrors.Newf(apperrors.ErrCodeUploadBytes,
			"byte-upload returned status %d", resp.StatusCode).
			WithDetail("body", string(errBody))
	}

	var fileResp FileAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&fileResp); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUploadBytes, "failed to decode upload response")
	}
	if fileResp.File.URI == "" {
		return "", apperrors.New(apperrors.ErrCodeUploadBytes, "upload response did not contain a file URI")
	}

	return fileResp.File.URI, nil
}

// WaitForActive polls the file-status endpoint at a fixed interval until the
// file leaves PROCESSING. Transient poll errors are swallowed and retried;
// only an explicit FAILED state or retry exhaustion is fatal.
func (c *Client) WaitForActive(ctx context.Context, fileURI string) error {
	for attempt := 0; attempt < c.maxPollAttempts; attempt++ {
		state, err := c.fileState(ctx, fileURI)
		if err != nil {
			log.Printf("Error checking file state: %v", err)
		} else {
			switch state {
			case StateActive:
				return nil
			case StateFailed:
				return apperrors.New(apperrors.ErrCodeRemoteProcessing,
					"provider failed to process the audio file").
					WithDetail("file_uri", fileURI)
			}
		}

		c.sleep(c.pollInterval)
	}

	return apperrors.Newf(apperrors.ErrCodeUploadTimeout,
		"file processing timed out after %d attempts", c.maxPollAttempts).
		WithDetail("file_uri", fileURI)
}

// fileState fetches the current provider-side state of an uploaded file
func (c *Client) fileState(ctx context.Context, fileURI string) (FileState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURI+"?key="+c.apiKey, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("file-status returned status %d", resp.StatusCode)
	}

	var status fileStateResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", err
	}

	return status.State, nil
}

// GenerateContent issues the inference call referencing the uploaded file and
// returns the raw response JSON
func (c *Client) GenerateContent(ctx context.Context, fileURI, mimeType string) (string, error) {
	request := GenerateRequest{
		Contents: []Content{
			{
				Parts: []Part{
					TextPart{Text: transcribePrompt},
					FileDataPart{FileData: FileData{MimeType: mimeType, FileURI: fileURI}},
				},
			},
		},
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to encode generate request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.generateURL+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeExternalService, "failed to build generate request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeExternalService, "generate request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeExternalService, "failed to read generate response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("Gemini generate error body: %s", string(raw))
		return "", apperrors.Newf(apperrors.ErrCodeExternalService,
			"generate returned status %d", resp.StatusCode).
			WithDetail("body", string(raw))
	}

	return string(raw), nil
}

// ExtractText navigates candidates[0].content.parts[0].text in a raw
// generateContent response. Malformed or empty responses degrade to a
// readable placeholder instead of an error.
func (c *Client) ExtractText(rawJSON string) string {
	return ExtractText(rawJSON)
}

// ExtractText is the package-level form of Client.ExtractText
func ExtractText(rawJSON string) string {
	var parsed generateResponse
	if err := json.Unmarshal([]byte(rawJSON), &parsed); err != nil {
		log.Printf("Failed to parse Gemini JSON: %s", rawJSON)
		return parseFailPlaceholder
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return noContentPlaceholder
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return noContentPlaceholder
	}

	return text
}
