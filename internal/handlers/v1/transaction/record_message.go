package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/deal-ledger/internal/logging"
	"github.com/carson-networks/deal-ledger/internal/render"
	"github.com/carson-networks/deal-ledger/internal/service"
)

// RecordMessageBody is the request body for recording a deal from text.
type RecordMessageBody struct {
	Text string `json:"text" required:"true" minLength:"1" doc:"Free-text description of the deal"`
}

// RecordMessageInput is the Huma input for recording a deal from text.
type RecordMessageInput struct {
	ConversationPath
	Body RecordMessageBody
}

// RecordedTransactionBody is returned once a transaction has been recorded.
type RecordedTransactionBody struct {
	Transaction Transaction `json:"transaction"`
	Reply       string      `json:"reply" doc:"Confirmation text as sent by the bot"`
}

func newRecordedTransactionBody(recorded service.RecordedTransaction) RecordedTransactionBody {
	return RecordedTransactionBody{
		Transaction: NewTransaction(recorded.Position, recorded.Transaction),
		Reply:       render.Confirmation(recorded.Transaction),
	}
}

// RecordMessageOutput is the Huma output for recording a deal from text.
type RecordMessageOutput struct {
	Body RecordedTransactionBody
}

// messageRecorder is the interface for recording free-text deals.
type messageRecorder interface {
	RecordText(ctx context.Context, conversationID, text string) (service.RecordedTransaction, error)
}

// RecordMessageHandler handles POST /v1/conversations/{conversationID}/messages.
type RecordMessageHandler struct {
	LedgerService messageRecorder
}

func NewRecordMessageHandler(svc messageRecorder) *RecordMessageHandler {
	return &RecordMessageHandler{LedgerService: svc}
}

// Register registers the record message endpoint with the Huma API.
func (h *RecordMessageHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "record-message",
		Method:        http.MethodPost,
		Path:          "/v1/conversations/{conversationID}/messages",
		Summary:       "Record a deal from text",
		Description:   "Extracts a sale, purchase or exchange from free text and appends it to the conversation ledger.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *RecordMessageHandler) handle(ctx context.Context, input *RecordMessageInput) (*RecordMessageOutput, error) {
	logging.AddData(ctx, "conversationID", input.ConversationID)

	recorded, err := h.LedgerService.RecordText(ctx, input.ConversationID, input.Body.Text)
	if err != nil {
		return nil, ToHumaError(err, "failed to record message")
	}

	return &RecordMessageOutput{Body: newRecordedTransactionBody(recorded)}, nil
}
