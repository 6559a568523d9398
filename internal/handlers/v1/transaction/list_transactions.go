package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/logging"
)

// ListTransactionsCursor represents a pagination cursor in request and response bodies.
type ListTransactionsCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListTransactionsBody is the request body for listing transactions.
type ListTransactionsBody struct {
	Cursor *ListTransactionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	ConversationPath
	Body ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions, oldest first"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, conversationID string, cursor *ledger.Cursor) ([]ledger.Transaction, *ledger.Cursor, error)
}

// ListTransactionsHandler handles POST /v1/conversations/{conversationID}/transactions/list.
type ListTransactionsHandler struct {
	LedgerService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{LedgerService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/conversations/{conversationID}/transactions/list",
		Summary:     "List transactions",
		Description: "Returns a page of the conversation ledger in creation order using cursor-based pagination.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input.
// Without a cursor, the ledger's default page size is used.
func parseListTransactionsInput(input *ListTransactionsInput) (*ledger.Cursor, error) {
	if input.Body.Cursor == nil {
		return nil, nil
	}

	if input.Body.Cursor.Position < 0 {
		return nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
	}

	return &ledger.Cursor{
		Position: input.Body.Cursor.Position,
		Limit:    input.Body.Cursor.Limit,
	}, nil
}

func toListCursor(cursor *ledger.Cursor) *ListTransactionsCursor {
	if cursor == nil {
		return nil
	}
	return &ListTransactionsCursor{Position: cursor.Position, Limit: cursor.Limit}
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	requestCursor, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	stop := logging.StartTiming(ctx, "listTransactionsMs")
	page, nextCursor, err := h.LedgerService.ListTransactions(ctx, input.ConversationID, requestCursor)
	stop()
	if err != nil {
		return nil, ToHumaError(err, "failed to list transactions")
	}
	logging.AddData(ctx, "transactionCount", len(page))

	// Positions continue from the cursor so they stay stable across pages.
	offset := 0
	if requestCursor != nil {
		offset = requestCursor.Position
	}

	body := ListTransactionsResponseBody{
		Transactions: make([]Transaction, 0, len(page)),
		NextCursor:   toListCursor(nextCursor),
	}
	for i, tx := range page {
		body.Transactions = append(body.Transactions, NewTransaction(offset+i+1, tx))
	}
	return &ListTransactionsOutput{Body: body}, nil
}
