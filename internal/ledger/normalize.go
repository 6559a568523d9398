package ledger

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownKind is returned when the extracted kind is not Sale,
	// Purchase or Exchange.
	ErrUnknownKind = errors.New("unknown transaction kind")
	// ErrIncompleteTransactionData is returned when a sale or purchase is
	// missing its item or amount.
	ErrIncompleteTransactionData = errors.New("incomplete transaction data")
	// ErrIncompleteExchangeData is returned when an exchange is missing its
	// foreign amount or exchange rate.
	ErrIncompleteExchangeData = errors.New("incomplete exchange data")
)

// Normalize validates an extracted field set and builds the transaction it
// describes, stamped with now and with its derived amounts computed. It does
// not persist anything.
func Normalize(fields Fields, now time.Time) (Transaction, error) {
	kindText, _ := fields.Text(FieldKind)
	kind, err := ParseKind(kindText)
	if err != nil {
		return Transaction{}, err
	}

	// An absent or unparseable rate means no commission.
	rate, _ := fields.Number(FieldCommissionRate)

	tx := Transaction{
		Timestamp:      now.Truncate(time.Minute),
		Kind:           kind,
		Seller:         fields.textOr(FieldSeller, UnknownParty),
		Buyer:          fields.textOr(FieldBuyer, UnknownParty),
		CommissionRate: rate,
	}

	switch kind {
	case KindExchange:
		foreign, hasForeign := fields.Number(FieldForeignAmount)
		exchangeRate, hasRate := fields.Number(FieldExchangeRate)
		if !hasForeign {
			return Transaction{}, fmt.Errorf("%w: missing %s", ErrIncompleteExchangeData, FieldForeignAmount)
		}
		if !hasRate {
			return Transaction{}, fmt.Errorf("%w: missing %s", ErrIncompleteExchangeData, FieldExchangeRate)
		}
		tx.Terms = ExchangeTerms{ForeignAmount: foreign, ExchangeRate: exchangeRate}
		tx.GrossAmount = foreign.Mul(exchangeRate)
	case KindSale, KindPurchase:
		item, hasItem := fields.Text(FieldItem)
		gross, hasGross := fields.Number(FieldGrossAmount)
		if !hasItem {
			return Transaction{}, fmt.Errorf("%w: missing %s", ErrIncompleteTransactionData, FieldItem)
		}
		if !hasGross {
			return Transaction{}, fmt.Errorf("%w: missing %s", ErrIncompleteTransactionData, FieldGrossAmount)
		}
		tx.Terms = GoodsTerms{Item: item}
		tx.GrossAmount = gross
	default:
		return Transaction{}, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}

	tx.CommissionAmount = tx.GrossAmount.Mul(rate)
	tx.NetAmount = tx.GrossAmount.Sub(tx.CommissionAmount)

	return tx, nil
}
