package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/deal-ledger/internal/extraction"
	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/storage"
)

// ConversationPath identifies the ledger a request works on.
type ConversationPath struct {
	ConversationID string `path:"conversationID" pattern:"^[A-Za-z0-9_-]{1,128}$" doc:"Conversation (chat) identifier"`
}

// Transaction is the API response model for a ledger entry.
// It is used only for responses, not for request bodies.
type Transaction struct {
	Position         int    `json:"position,omitempty" doc:"1-based position in the ledger, when known"`
	Date             string `json:"date" doc:"Local time the transaction was recorded, YYYY-MM-DD HH:MM"`
	Kind             string `json:"kind" enum:"sale,purchase,exchange" doc:"Transaction kind"`
	KindLabel        string `json:"kindLabel" doc:"Kind as shown to users"`
	Seller           string `json:"seller"`
	Buyer            string `json:"buyer"`
	Item             string `json:"item,omitempty" doc:"Traded item, sales and purchases only"`
	ForeignAmount    string `json:"foreignAmount,omitempty" doc:"Dollar amount, exchanges only"`
	ExchangeRate     string `json:"exchangeRate,omitempty" doc:"Dollar rate, exchanges only"`
	CommissionRate   string `json:"commissionRate" doc:"Decimal commission rate"`
	GrossAmount      string `json:"grossAmount" doc:"Decimal gross amount"`
	CommissionAmount string `json:"commissionAmount" doc:"Decimal commission amount"`
	NetAmount        string `json:"netAmount" doc:"Decimal net amount"`
}

// NewTransaction converts a ledger entry at the given 1-based position; 0
// leaves the position out.
func NewTransaction(position int, tx ledger.Transaction) Transaction {
	apiTx := Transaction{
		Position:         position,
		Date:             tx.Date(),
		Kind:             tx.Kind.String(),
		KindLabel:        tx.Kind.Label(),
		Seller:           tx.Seller,
		Buyer:            tx.Buyer,
		Item:             tx.Item(),
		CommissionRate:   tx.CommissionRate.String(),
		GrossAmount:      tx.GrossAmount.String(),
		CommissionAmount: tx.CommissionAmount.String(),
		NetAmount:        tx.NetAmount.String(),
	}
	if exchange, ok := tx.Exchange(); ok {
		apiTx.ForeignAmount = exchange.ForeignAmount.String()
		apiTx.ExchangeRate = exchange.ExchangeRate.String()
	}
	return apiTx
}

// ToHumaError maps service errors to HTTP statuses.
func ToHumaError(err error, msg string) error {
	switch {
	case errors.Is(err, storage.ErrInvalidConversationID):
		return huma.NewError(http.StatusBadRequest, msg, err)
	case errors.Is(err, ledger.ErrUnknownKind),
		errors.Is(err, ledger.ErrIncompleteTransactionData),
		errors.Is(err, ledger.ErrIncompleteExchangeData):
		return huma.NewError(http.StatusUnprocessableEntity, msg, err)
	case errors.Is(err, extraction.ErrExtractionFailure):
		return huma.NewError(http.StatusBadGateway, msg, err)
	case errors.Is(err, context.DeadlineExceeded):
		return huma.NewError(http.StatusGatewayTimeout, msg, err)
	default:
		return huma.NewError(http.StatusInternalServerError, msg, err)
	}
}
