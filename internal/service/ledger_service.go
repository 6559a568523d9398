package service

import (
	"context"
	"time"

	"github.com/carson-networks/deal-ledger/internal/extraction"
	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/logging"
	"github.com/carson-networks/deal-ledger/internal/operator/actions"
	"github.com/carson-networks/deal-ledger/internal/storage"
)

// LedgerService records deals into conversation ledgers and answers queries
// over them. Writes go through the operator; reads load the ledger directly.
type LedgerService struct {
	storage   *storage.Storage
	operator  actionProcessor
	extractor extraction.Extractor
	now       func() time.Time
}

func NewLedgerService(store *storage.Storage, op actionProcessor, extractor extraction.Extractor, now func() time.Time) *LedgerService {
	return &LedgerService{
		storage:   store,
		operator:  op,
		extractor: extractor,
		now:       now,
	}
}

// RecordedTransaction is a transaction that was appended to a ledger, with
// its 1-based position there.
type RecordedTransaction struct {
	Transaction ledger.Transaction
	Position    int
}

// RecordText extracts a deal from free text and records it. Nothing is
// persisted when extraction or normalization fails.
func (s *LedgerService) RecordText(ctx context.Context, conversationID, text string) (RecordedTransaction, error) {
	fields, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return RecordedTransaction{}, err
	}
	return s.RecordFields(ctx, conversationID, fields)
}

// RecordFields normalizes an already extracted field set and appends it to
// the conversation ledger.
func (s *LedgerService) RecordFields(ctx context.Context, conversationID string, fields ledger.Fields) (RecordedTransaction, error) {
	action := &actions.RecordTransaction{
		Fields: fields,
		Now:    s.now().In(s.storage.Location),
	}

	stop := logging.StartTiming(ctx, "record")
	err := s.operator.Process(ctx, conversationID, action)
	stop()
	if err != nil {
		return RecordedTransaction{}, err
	}

	logging.AddData(ctx, "kind", action.Transaction.Kind.String())
	return RecordedTransaction{Transaction: action.Transaction, Position: action.Position}, nil
}

// Transactions returns the whole ledger in creation order.
func (s *LedgerService) Transactions(ctx context.Context, conversationID string) ([]ledger.Transaction, error) {
	txs, err := s.storage.Load(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return ledger.List(txs), nil
}

// ListTransactions returns a page of the ledger using cursor pagination.
func (s *LedgerService) ListTransactions(ctx context.Context, conversationID string, cursor *ledger.Cursor) ([]ledger.Transaction, *ledger.Cursor, error) {
	txs, err := s.storage.Load(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}

	page, nextCursor := ledger.Page(ledger.List(txs), cursor)
	return page, nextCursor, nil
}

func (s *LedgerService) CommissionSummary(ctx context.Context, conversationID string) (ledger.CommissionSummary, error) {
	txs, err := s.storage.Load(ctx, conversationID)
	if err != nil {
		return ledger.CommissionSummary{}, err
	}
	return ledger.SummarizeCommissions(txs), nil
}

func (s *LedgerService) UserTransactions(ctx context.Context, conversationID string, kind ledger.Kind, user string) ([]ledger.Transaction, error) {
	txs, err := s.storage.Load(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return ledger.UserTransactions(txs, kind, user), nil
}

// Clear empties the conversation ledger and returns how many transactions
// it held.
func (s *LedgerService) Clear(ctx context.Context, conversationID string) (int, error) {
	action := &actions.ClearLedger{}
	if err := s.operator.Process(ctx, conversationID, action); err != nil {
		return 0, err
	}
	return action.Cleared, nil
}
