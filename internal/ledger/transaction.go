package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the local-time layout transactions are stamped with.
const TimestampLayout = "2006-01-02 15:04"

// UnknownParty is recorded when the seller or buyer was not extracted.
const UnknownParty = "غير معروف"

// Transaction is one entry of a conversation ledger. The derived amounts are
// computed by Normalize at creation time and stored as-is afterwards.
type Transaction struct {
	Timestamp      time.Time
	Kind           Kind
	Seller         string
	Buyer          string
	CommissionRate decimal.Decimal
	Terms          Terms

	GrossAmount      decimal.Decimal
	CommissionAmount decimal.Decimal
	NetAmount        decimal.Decimal
}

// Terms holds the kind-specific part of a transaction. It is implemented only
// by GoodsTerms (Sale, Purchase) and ExchangeTerms (Exchange).
type Terms interface {
	terms()
}

// GoodsTerms describes a sale or purchase of an item.
type GoodsTerms struct {
	Item string
}

// ExchangeTerms describes a currency exchange. The gross amount of the
// transaction is ForeignAmount × ExchangeRate.
type ExchangeTerms struct {
	ForeignAmount decimal.Decimal
	ExchangeRate  decimal.Decimal
}

func (GoodsTerms) terms()    {}
func (ExchangeTerms) terms() {}

// Item returns the traded item, or "" for exchanges.
func (t Transaction) Item() string {
	if g, ok := t.Terms.(GoodsTerms); ok {
		return g.Item
	}
	return ""
}

// Exchange returns the exchange terms and whether the transaction has them.
func (t Transaction) Exchange() (ExchangeTerms, bool) {
	e, ok := t.Terms.(ExchangeTerms)
	return e, ok
}

// Date formats the timestamp the way ledgers store it.
func (t Transaction) Date() string {
	return t.Timestamp.Format(TimestampLayout)
}
