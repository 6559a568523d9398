package transcription

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/carson-networks/deal-ledger/internal/logging"
)

// GeminiTranscriber sends the audio inline to a Gemini model.
type GeminiTranscriber struct {
	client   *genai.Client
	model    string
	language string
}

func NewGeminiTranscriber(client *genai.Client, model, language string) *GeminiTranscriber {
	return &GeminiTranscriber{client: client, model: model, language: language}
}

func (g *GeminiTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	defer logging.StartTiming(ctx, "transcription")()

	prompt := "Transcribe this voice message verbatim. Reply with the transcript only, no commentary."
	if g.language != "" {
		prompt += " The language is " + g.language + "."
	}

	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: prompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %w", ErrTranscriptionFailure, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrTranscriptionFailure)
	}
	return text, nil
}
