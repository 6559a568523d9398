package storage

import (
	"context"

	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/storage/transaction"
)

// Save overwrites the ledger of a conversation with txs, in order.
func (s *Storage) Save(ctx context.Context, conversationID string, txs []ledger.Transaction) error {
	if err := ValidateConversationID(conversationID); err != nil {
		return err
	}

	data, err := transaction.Marshal(txs)
	if err != nil {
		return err
	}
	return s.Documents.Write(ctx, conversationID, data)
}

// Clear empties the ledger of a conversation.
func (s *Storage) Clear(ctx context.Context, conversationID string) error {
	return s.Save(ctx, conversationID, nil)
}

// Writer is a read-modify-write unit over one conversation ledger. Changes
// are only persisted by Commit.
type Writer struct {
	storage        *Storage
	conversationID string

	Transactions []ledger.Transaction
}

// Write loads the ledger of conversationID for modification.
func (s *Storage) Write(ctx context.Context, conversationID string) (*Writer, error) {
	txs, err := s.Load(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return &Writer{
		storage:        s,
		conversationID: conversationID,
		Transactions:   txs,
	}, nil
}

func (w *Writer) ConversationID() string {
	return w.conversationID
}

// Append adds tx at the end of the ledger.
func (w *Writer) Append(tx ledger.Transaction) {
	w.Transactions = append(w.Transactions, tx)
}

// Reset drops every transaction.
func (w *Writer) Reset() {
	w.Transactions = nil
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.storage.Save(ctx, w.conversationID, w.Transactions)
}

// Rollback discards uncommitted changes.
func (w *Writer) Rollback() error {
	w.Transactions = nil
	return nil
}
