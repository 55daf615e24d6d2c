package transcription

import (
	"context"
	"strings"

	"github.com/scribeworks/transcriber-api/internal/models"
	apperrors "github.com/scribeworks/transcriber-api/pkg/errors"
)

// Service implements the TranscriptionService interface by composing the
// rate limiter with the selected provider pipeline and the record store
type Service struct {
	repo        Repository
	limiter     RateLimiter
	pipeline    FilePipeline
	transcriber Transcriber
	summarizer  Summarizer
}

// NewService creates a new transcription orchestrator
func NewService(repo Repository, limiter RateLimiter, pipeline FilePipeline, transcriber Transcriber, summarizer Summarizer) *Service {
	return &Service{
		repo:        repo,
		limiter:     limiter,
		pipeline:    pipeline,
		transcriber: transcriber,
		summarizer:  summarizer,
	}
}

// TranscribeAndAnalyze runs one transcription end to end: rate check,
// provider call(s), persistence. The rate check happens before any
// upstream call so denied requests never touch a provider.
func (s *Service) TranscribeAndAnalyze(ctx context.Context, req Request) (*Result, error) {
	if err := s.limiter.CheckAndAdmit(ctx, req.UserID); err != nil {
		return nil, err
	}

	var transcriptionText, analysisText string

	if strings.EqualFold(req.Provider, ProviderGemini) {
		// The single generation call already blends transcription and
		// summary, so the same text fills both fields.
		raw, err := s.pipeline.ProcessAudioFile(ctx, req.AudioPath, req.MimeType)
		if err != nil {
			return nil, err
		}
		text := s.pipeline.ExtractText(raw)
		transcriptionText = text
		analysisText = text
	} else {
		text, err := s.transcriber.Transcribe(ctx, req.AudioPath)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, apperrors.New(apperrors.ErrCodeEmptyTranscription,
				"transcription failed or returned empty result")
		}

		summary, err := s.summarizer.Summarize(ctx, text)
		if err != nil {
			return nil, err
		}
		transcriptionText = text
		analysisText = summary
	}

	record := &models.Transcription{
		UserID:            req.UserID,
		OriginalFilename:  req.Filename,
		FullTranscription: transcriptionText,
		AIAnalysis:        analysisText,
		Provider:          normalizeProvider(req.Provider),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, apperrors.DatabaseError("create", err)
	}

	return &Result{
		ID:            record.ID,
		Transcription: record.FullTranscription,
		Analysis:      record.AIAnalysis,
	}, nil
}

// GetHistory returns the caller's records, newest first, scoped strictly
// to the given user
func (s *Service) GetHistory(ctx context.Context, userID uint) ([]models.Transcription, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("list", err)
	}
	return records, nil
}

func normalizeProvider(provider string) string {
	if strings.EqualFold(provider, ProviderGemini) {
		return ProviderGemini
	}
	return ProviderOpenAI
}
