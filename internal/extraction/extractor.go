package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/carson-networks/deal-ledger/internal/config"
	"github.com/carson-networks/deal-ledger/internal/ledger"
)

// ErrExtractionFailure wraps every failure to turn a message into fields:
// transport errors, empty answers and answers that are not a JSON object.
var ErrExtractionFailure = errors.New("extraction failure")

// Extractor turns a free-text deal description into an untrusted field set.
type Extractor interface {
	Extract(ctx context.Context, text string) (ledger.Fields, error)
}

// NewExtractor builds the extractor for the configured provider.
func NewExtractor(ctx context.Context, env *config.Config) (Extractor, error) {
	apiKey := env.APIKey(env.ExtractionProvider)
	switch env.ExtractionProvider {
	case config.ProviderOpenAI:
		return NewOpenAIExtractor(openai.NewClient(apiKey), env.ExtractionModel), nil
	case config.ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("genai.NewClient: %w", err)
		}
		return NewGeminiExtractor(client, env.ExtractionModel), nil
	default:
		return nil, fmt.Errorf("unknown extraction provider %q", env.ExtractionProvider)
	}
}

// parseModelOutput reads the model answer as a field set. Code fences and
// text around the object are dropped since models add them despite being
// asked not to.
func parseModelOutput(raw string) (ledger.Fields, error) {
	clean := cleanModelJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty response from model", ErrExtractionFailure)
	}

	fields, err := ledger.ParseFields([]byte(clean))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailure, err)
	}
	return fields, nil
}

func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return ""
		}
		s = strings.TrimSpace(s[idx+1:])
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}

	return s
}
