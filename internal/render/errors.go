package render

import (
	"errors"

	"github.com/carson-networks/deal-ledger/internal/extraction"
	"github.com/carson-networks/deal-ledger/internal/ledger"
	"github.com/carson-networks/deal-ledger/internal/transcription"
)

// ErrorMessage is the reply for a failed request.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ledger.ErrUnknownKind):
		return UnknownKind
	case errors.Is(err, ledger.ErrIncompleteExchangeData):
		return IncompleteExchange
	case errors.Is(err, ledger.ErrIncompleteTransactionData):
		return IncompleteGoods
	case errors.Is(err, extraction.ErrExtractionFailure):
		return ExtractionFailed
	case errors.Is(err, transcription.ErrTranscriptionFailure):
		return VoiceFailed
	default:
		return InternalError
	}
}
