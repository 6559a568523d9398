package extraction

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/logging"
)

// GeminiExtractor asks a Gemini model for a JSON object.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

func NewGeminiExtractor(client *genai.Client, model string) *GeminiExtractor {
	return &GeminiExtractor{client: client, model: model}
}

func (e *GeminiExtractor) Extract(ctx context.Context, text string) (ledger.Fields, error) {
	defer logging.StartTiming(ctx, "extraction")()

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: generate content: %w", ErrExtractionFailure, err)
	}

	logging.AddData(ctx, "extractionModel", e.model)
	return parseModelOutput(resp.Text())
}
