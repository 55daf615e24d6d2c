package analysis

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	apperrors "github.com/scribeworks/transcriber-api/pkg/errors"
)

const systemPrompt = "You are an expert transcriber assistant. " +
	"Analyze the following text and provide a concise summary, 3-5 key bullet points, and a suggested title. " +
	"Format the output in clean, readable markdown."

const userTemplate = `## Original Text:
{transcription}

## Instructions:
1. Provide a captivating title.
2. Write a concise, 3-sentence summary.
3. List 3-5 main key takeaways in a bulleted list.
`

// Summarizer produces an analysis text from a transcript
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// Service implements Summarizer via a chat-capable LLM. There are no
// retries: a transport or provider failure propagates to the caller.
type Service struct {
	api   *openai.Client
	model string
}

// NewService creates a new analysis service
func NewService(apiKey, model string) *Service {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Service{
		api:   openai.NewClient(apiKey),
		model: model,
	}
}

// Summarize renders the fixed template around the transcript and sends a
// two-message prompt, returning the raw text reply
func (s *Service) Summarize(ctx context.Context, transcript string) (string, error) {
	userPrompt := RenderTemplate(transcript)

	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", apperrors.ExternalServiceError("openai", err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.New(apperrors.ErrCodeExternalService, "chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// RenderTemplate embeds the transcript into the fixed user-message template
func RenderTemplate(transcript string) string {
	return strings.ReplaceAll(userTemplate, "{transcription}", transcript)
}
