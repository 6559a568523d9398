package storage

import (
	"context"
	"errors"
	"io/fs"

	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/storage/transaction"
)

// Load returns the ledger of a conversation. A missing or unreadable document
// degrades to an empty ledger with a warning; only failures to reach the
// backend are returned.
func (s *Storage) Load(ctx context.Context, conversationID string) ([]ledger.Transaction, error) {
	if err := ValidateConversationID(conversationID); err != nil {
		return nil, err
	}

	data, err := s.Documents.Read(ctx, conversationID)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	txs, skipped, err := transaction.Unmarshal(data, s.Location)
	if err != nil {
		s.logger.WithError(err).
			WithField("conversationID", conversationID).
			Warn("Storage.Load.unreadable ledger, starting empty")
		return nil, nil
	}
	for _, skipErr := range skipped {
		s.logger.WithError(skipErr).
			WithField("conversationID", conversationID).
			Warn("Storage.Load.skipped record")
	}

	return txs, nil
}
