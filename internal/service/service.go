package service

import (
	"context"
	"time"

	"github.com/carson-networks/deal-ledger/internal/extraction"
	"github.com/carson-networks/deal-ledger/internal/operator/actions"
	"github.com/carson-networks/deal-ledger/internal/storage"
)

// actionProcessor applies an action to one conversation ledger.
type actionProcessor interface {
	Process(ctx context.Context, conversationID string, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Ledger *LedgerService
}

// NewService creates a new Service over the given storage and operator.
func NewService(store *storage.Storage, op actionProcessor, extractor extraction.Extractor) *Service {
	return &Service{
		Ledger: NewLedgerService(store, op, extractor, time.Now),
	}
}
