package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/deal-ledger/internal/logging"
	"github.com/carson-networks/deal-ledger/internal/render"
)

// ClearTransactionsInput is the Huma input for clearing a ledger.
type ClearTransactionsInput struct {
	ConversationPath
}

// ClearTransactionsOutput is the Huma output for clearing a ledger.
type ClearTransactionsOutput struct {
	Body struct {
		Cleared int    `json:"cleared" doc:"Number of transactions removed"`
		Reply   string `json:"reply" doc:"Confirmation text as sent by the bot"`
	}
}

type ledgerClearer interface {
	Clear(ctx context.Context, conversationID string) (int, error)
}

// ClearTransactionsHandler handles DELETE /v1/conversations/{conversationID}/transactions.
type ClearTransactionsHandler struct {
	LedgerService ledgerClearer
}

func NewClearTransactionsHandler(svc ledgerClearer) *ClearTransactionsHandler {
	return &ClearTransactionsHandler{LedgerService: svc}
}

func (h *ClearTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "clear-transactions",
		Method:      http.MethodDelete,
		Path:        "/v1/conversations/{conversationID}/transactions",
		Summary:     "Clear ledger",
		Description: "Removes every transaction of the conversation. Clearing an empty ledger succeeds.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ClearTransactionsHandler) handle(ctx context.Context, input *ClearTransactionsInput) (*ClearTransactionsOutput, error) {
	cleared, err := h.LedgerService.Clear(ctx, input.ConversationID)
	if err != nil {
		return nil, ToHumaError(err, "failed to clear transactions")
	}
	logging.AddData(ctx, "cleared", cleared)

	out := &ClearTransactionsOutput{}
	out.Body.Cleared = cleared
	out.Body.Reply = render.Cleared
	return out, nil
}
