package transcription

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/carson-networks/deal-ledger/internal/config"
)

// ErrTranscriptionFailure wraps every failure to turn audio into text.
var ErrTranscriptionFailure = errors.New("transcription failure")

// MIMETypeOgg is the format Telegram voice notes are recorded in.
const MIMETypeOgg = "audio/ogg"

// Transcriber turns a recorded voice message into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

func NewTranscriber(ctx context.Context, env *config.Config) (Transcriber, error) {
	apiKey := env.APIKey(env.TranscriptionProvider)
	switch env.TranscriptionProvider {
	case config.ProviderOpenAI:
		return NewWhisperTranscriber(openai.NewClient(apiKey), env.TranscriptionModel, env.TranscriptionLanguage), nil
	case config.ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("genai.NewClient: %w", err)
		}
		return NewGeminiTranscriber(client, env.TranscriptionModel, env.TranscriptionLanguage), nil
	default:
		return nil, fmt.Errorf("unknown transcription provider %q", env.TranscriptionProvider)
	}
}

func fileExtension(mimeType string) string {
	switch mimeType {
	case "audio/mpeg":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/mp4":
		return ".m4a"
	default:
		return ".ogg"
	}
}
