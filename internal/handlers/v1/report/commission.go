package report

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/deal-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/render"
)

// CommissionLine is the API response model for one commission entry.
type CommissionLine struct {
	Date        string `json:"date" doc:"Date of the transaction, YYYY-MM-DD HH:MM"`
	Amount      string `json:"amount" doc:"Decimal commission amount"`
	Description string `json:"description" doc:"Short description of the transaction"`
}

// CommissionInput is the Huma input for the commission summary.
type CommissionInput struct {
	transaction.ConversationPath
}

// CommissionOutput is the Huma output for the commission summary.
type CommissionOutput struct {
	Body struct {
		Total   string           `json:"total" doc:"Decimal sum of all commissions"`
		Lines   []CommissionLine `json:"lines" doc:"Transactions that earned a commission, in ledger order"`
		Replies []string         `json:"replies" doc:"Summary messages as sent by the bot"`
	}
}

type commissionSummarizer interface {
	CommissionSummary(ctx context.Context, conversationID string) (ledger.CommissionSummary, error)
}

// CommissionHandler handles GET /v1/conversations/{conversationID}/commission.
type CommissionHandler struct {
	LedgerService commissionSummarizer
}

func NewCommissionHandler(svc commissionSummarizer) *CommissionHandler {
	return &CommissionHandler{LedgerService: svc}
}

func (h *CommissionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "commission-summary",
		Method:      http.MethodGet,
		Path:        "/v1/conversations/{conversationID}/commission",
		Summary:     "Commission summary",
		Description: "Lists every transaction with a positive commission and the total.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *CommissionHandler) handle(ctx context.Context, input *CommissionInput) (*CommissionOutput, error) {
	summary, err := h.LedgerService.CommissionSummary(ctx, input.ConversationID)
	if err != nil {
		return nil, transaction.ToHumaError(err, "failed to summarize commissions")
	}

	out := &CommissionOutput{}
	out.Body.Total = summary.Total.String()
	out.Body.Lines = make([]CommissionLine, len(summary.Lines))
	for i, line := range summary.Lines {
		out.Body.Lines[i] = CommissionLine{
			Date:        line.Date.Format(ledger.TimestampLayout),
			Amount:      line.Amount.String(),
			Description: line.Description,
		}
	}
	out.Body.Replies = render.Commissions(summary)
	return out, nil
}
