package transaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/deal-ledger/internal/ledger"
)

var errMissingField = errors.New("missing field")

// Document is the persisted form of a conversation ledger. Its layout is
// shared by every storage backend and must stay readable by older bots.
type Document struct {
	Transactions []Record `json:"transactions"`
}

// Record is one persisted transaction. Kind-specific fields are omitted when
// they do not apply.
type Record struct {
	Date             string      `json:"التاريخ"`
	Kind             string      `json:"النوع"`
	Seller           string      `json:"البائع"`
	Buyer            string      `json:"المشتري"`
	CommissionRate   json.Number `json:"العمولة"`
	ForeignAmount    json.Number `json:"مبلغ_الدولار,omitempty"`
	ExchangeRate     json.Number `json:"سعر_الدولار,omitempty"`
	Item             string      `json:"المادة,omitempty"`
	GrossAmount      json.Number `json:"المبلغ"`
	NetAmount        json.Number `json:"الصافي"`
	CommissionAmount json.Number `json:"مبلغ_العمولة"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func transactionToRecord(tx ledger.Transaction) Record {
	record := Record{
		Date:             tx.Date(),
		Kind:             tx.Kind.Label(),
		Seller:           tx.Seller,
		Buyer:            tx.Buyer,
		CommissionRate:   number(tx.CommissionRate),
		GrossAmount:      number(tx.GrossAmount),
		NetAmount:        number(tx.NetAmount),
		CommissionAmount: number(tx.CommissionAmount),
	}

	switch terms := tx.Terms.(type) {
	case ledger.ExchangeTerms:
		record.ForeignAmount = number(terms.ForeignAmount)
		record.ExchangeRate = number(terms.ExchangeRate)
	case ledger.GoodsTerms:
		record.Item = terms.Item
	}

	return record
}

// Marshal encodes a ledger as an indented UTF-8 JSON document.
func Marshal(txs []ledger.Transaction) ([]byte, error) {
	doc := Document{Transactions: make([]Record, len(txs))}
	for i, tx := range txs {
		doc.Transactions[i] = transactionToRecord(tx)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("transaction.Marshal: %w", err)
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes a ledger document. A document that is not valid JSON, or
// whose "transactions" member is not a list, is reported as an error. Single
// records that cannot be read are skipped and returned as skipped errors so
// the rest of the ledger survives.
func Unmarshal(data []byte, loc *time.Location) (txs []ledger.Transaction, skipped []error, err error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("transaction.Unmarshal: %w", err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(doc["transactions"], &raws); err != nil || raws == nil {
		return nil, nil, fmt.Errorf("transaction.Unmarshal: transactions is not a list")
	}

	for i, raw := range raws {
		tx, err := recordToTransaction(raw, loc)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		txs = append(txs, tx)
	}

	return txs, skipped, nil
}

// recordToTransaction reads one record leniently, as ledger.Fields, so that
// records written by older versions are accepted: those carry no commission
// amount, which is then taken as gross minus the stored net amount.
func recordToTransaction(raw json.RawMessage, loc *time.Location) (ledger.Transaction, error) {
	fields, err := ledger.ParseFields(raw)
	if err != nil {
		return ledger.Transaction{}, err
	}

	kindLabel, _ := fields.Text(ledger.FieldKind)
	kind, err := ledger.ParseKind(kindLabel)
	if err != nil {
		return ledger.Transaction{}, err
	}

	dateText, _ := fields.Text(ledger.FieldDate)
	timestamp, err := time.ParseInLocation(ledger.TimestampLayout, dateText, loc)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("date %q: %w", dateText, err)
	}

	rate, _ := fields.Number(ledger.FieldCommissionRate)
	tx := ledger.Transaction{
		Timestamp:      timestamp,
		Kind:           kind,
		Seller:         textOr(fields, ledger.FieldSeller, ledger.UnknownParty),
		Buyer:          textOr(fields, ledger.FieldBuyer, ledger.UnknownParty),
		CommissionRate: rate,
	}

	switch kind {
	case ledger.KindExchange:
		foreign, hasForeign := fields.Number(ledger.FieldForeignAmount)
		exchangeRate, hasRate := fields.Number(ledger.FieldExchangeRate)
		if !hasForeign || !hasRate {
			return ledger.Transaction{}, fmt.Errorf("%w: exchange amounts", errMissingField)
		}
		tx.Terms = ledger.ExchangeTerms{ForeignAmount: foreign, ExchangeRate: exchangeRate}
		gross, ok := fields.Number(ledger.FieldGrossAmount)
		if !ok {
			gross = foreign.Mul(exchangeRate)
		}
		tx.GrossAmount = gross
	case ledger.KindSale, ledger.KindPurchase:
		item, hasItem := fields.Text(ledger.FieldItem)
		gross, hasGross := fields.Number(ledger.FieldGrossAmount)
		if !hasItem || !hasGross {
			return ledger.Transaction{}, fmt.Errorf("%w: item or amount", errMissingField)
		}
		tx.Terms = ledger.GoodsTerms{Item: item}
		tx.GrossAmount = gross
	default:
		return ledger.Transaction{}, ledger.ErrUnknownKind
	}

	commission, hasCommission := fields.Number(ledger.FieldCommissionAmount)
	net, hasNet := fields.Number(ledger.FieldNetAmount)
	switch {
	case hasCommission && hasNet:
	case hasCommission:
		net = tx.GrossAmount.Sub(commission)
	case hasNet:
		commission = tx.GrossAmount.Sub(net)
	default:
		commission = tx.GrossAmount.Mul(rate)
		net = tx.GrossAmount.Sub(commission)
	}
	tx.CommissionAmount = commission
	tx.NetAmount = net

	return tx, nil
}

func textOr(fields ledger.Fields, key, fallback string) string {
	if s, ok := fields.Text(key); ok {
		return s
	}
	return fallback
}
