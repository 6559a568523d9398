package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/logging"
	"github.com/carson-networks/deal-ledger/internal/service"
)

// CreateTransactionBody is the request body for recording pre-extracted fields.
type CreateTransactionBody struct {
	Fields map[string]any `json:"fields" required:"true" doc:"Field set keyed by the persisted Arabic field names (النوع, البائع, المشتري, المادة, المبلغ, مبلغ_الدولار, سعر_الدولار, العمولة)"`
}

// CreateTransactionInput is the Huma input for recording pre-extracted fields.
type CreateTransactionInput struct {
	ConversationPath
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for recording pre-extracted fields.
type CreateTransactionOutput struct {
	Body RecordedTransactionBody
}

// fieldsRecorder is the interface for recording an extracted field set.
type fieldsRecorder interface {
	RecordFields(ctx context.Context, conversationID string, fields ledger.Fields) (service.RecordedTransaction, error)
}

// CreateTransactionHandler handles POST /v1/conversations/{conversationID}/transactions.
type CreateTransactionHandler struct {
	LedgerService fieldsRecorder
}

func NewCreateTransactionHandler(svc fieldsRecorder) *CreateTransactionHandler {
	return &CreateTransactionHandler{LedgerService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/conversations/{conversationID}/transactions",
		Summary:       "Create transaction",
		Description:   "Normalizes an already extracted field set and appends it to the conversation ledger.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logging.AddData(ctx, "conversationID", input.ConversationID)

	recorded, err := h.LedgerService.RecordFields(ctx, input.ConversationID, ledger.Fields(input.Body.Fields))
	if err != nil {
		return nil, ToHumaError(err, "failed to create transaction")
	}

	return &CreateTransactionOutput{Body: newRecordedTransactionBody(recorded)}, nil
}
