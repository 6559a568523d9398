package extraction

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/logging"
)

// OpenAIExtractor asks a chat completion model for a JSON object.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
}

func NewOpenAIExtractor(client *openai.Client, model string) *OpenAIExtractor {
	return &OpenAIExtractor{client: client, model: model}
}

func (e *OpenAIExtractor) Extract(ctx context.Context, text string) (ledger.Fields, error) {
	defer logging.StartTiming(ctx, "extraction")()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create chat completion: %w", ErrExtractionFailure, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrExtractionFailure)
	}

	logging.AddData(ctx, "extractionModel", resp.Model)
	return parseModelOutput(resp.Choices[0].Message.Content)
}
