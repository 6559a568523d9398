package ledger

import (
	"fmt"
	"strings"
)

// Kind is the discriminator of a transaction. The set is closed: every switch
// over Kind handles the three values and treats anything else as
// ErrUnknownKind.
type Kind int8

const (
	KindSale Kind = iota
	KindPurchase
	KindExchange
)

// Labels as they appear in extracted field sets and persisted ledgers.
const (
	LabelSale     = "بيع"
	LabelPurchase = "شراء"
	LabelExchange = "صرف"
)

// ParseKind accepts the Arabic labels used by the extraction prompt and the
// ledger files, and the English names used by the HTTP API.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case LabelSale, "sale":
		return KindSale, nil
	case LabelPurchase, "purchase":
		return KindPurchase, nil
	case LabelExchange, "exchange":
		return KindExchange, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Label returns the persisted (Arabic) label of the kind.
func (k Kind) Label() string {
	switch k {
	case KindSale:
		return LabelSale
	case KindPurchase:
		return LabelPurchase
	case KindExchange:
		return LabelExchange
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case KindSale:
		return "sale"
	case KindPurchase:
		return "purchase"
	case KindExchange:
		return "exchange"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// Valid reports whether k is one of the three recognized kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSale, KindPurchase, KindExchange:
		return true
	default:
		return false
	}
}
