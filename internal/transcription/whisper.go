package transcription

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/carson-networks/deal-ledger/internal/logging"
)

// WhisperTranscriber uses the OpenAI transcription endpoint.
type WhisperTranscriber struct {
	client   *openai.Client
	model    string
	language string
}

func NewWhisperTranscriber(client *openai.Client, model, language string) *WhisperTranscriber {
	return &WhisperTranscriber{client: client, model: model, language: language}
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	defer logging.StartTiming(ctx, "transcription")()

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		Reader:   bytes.NewReader(audio),
		FilePath: "voice" + fileExtension(mimeType),
		Language: w.language,
	})
	if err != nil {
		return "", fmt.Errorf("%w: create transcription: %w", ErrTranscriptionFailure, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrTranscriptionFailure)
	}
	return text, nil
}
