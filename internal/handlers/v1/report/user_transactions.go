package report

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/deal-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/logging"
)

// UserTransactionsInput is the Huma input for the per-user filter.
type UserTransactionsInput struct {
	transaction.ConversationPath
	Kind string `query:"kind" required:"true" doc:"بيع, شراء or صرف (sale, purchase and exchange are accepted too)"`
	Name string `query:"name" required:"true" minLength:"1" doc:"User name to match"`
}

// UserTransactionsOutput is the Huma output for the per-user filter.
type UserTransactionsOutput struct {
	Body struct {
		Transactions []transaction.Transaction `json:"transactions" doc:"Matching transactions, in ledger order"`
	}
}

type userTransactionFinder interface {
	UserTransactions(ctx context.Context, conversationID string, kind ledger.Kind, user string) ([]ledger.Transaction, error)
}

// UserTransactionsHandler handles GET /v1/conversations/{conversationID}/users.
type UserTransactionsHandler struct {
	LedgerService userTransactionFinder
}

func NewUserTransactionsHandler(svc userTransactionFinder) *UserTransactionsHandler {
	return &UserTransactionsHandler{LedgerService: svc}
}

func (h *UserTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "user-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/conversations/{conversationID}/users",
		Summary:     "User transactions",
		Description: "Returns the transactions of one kind where the user holds the role that kind is filed under: seller for purchases, buyer otherwise. Exchange queries match every kind.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *UserTransactionsHandler) handle(ctx context.Context, input *UserTransactionsInput) (*UserTransactionsOutput, error) {
	kind, err := ledger.ParseKind(input.Kind)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid kind", err)
	}
	user := strings.TrimSpace(input.Name)
	logging.AddData(ctx, "kind", kind.String())

	txs, err := h.LedgerService.UserTransactions(ctx, input.ConversationID, kind, user)
	if err != nil {
		return nil, transaction.ToHumaError(err, "failed to filter transactions")
	}

	out := &UserTransactionsOutput{}
	out.Body.Transactions = make([]transaction.Transaction, len(txs))
	for i, tx := range txs {
		out.Body.Transactions[i] = transaction.NewTransaction(0, tx)
	}
	return out, nil
}
