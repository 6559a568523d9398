package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Field names of extracted field sets and persisted transactions. They are
// kept in the extraction language because existing ledgers use them.
const (
	FieldDate             = "التاريخ"
	FieldKind             = "النوع"
	FieldSeller           = "البائع"
	FieldBuyer            = "المشتري"
	FieldItem             = "المادة"
	FieldGrossAmount      = "المبلغ"
	FieldForeignAmount    = "مبلغ_الدولار"
	FieldExchangeRate     = "سعر_الدولار"
	FieldCommissionRate   = "العمولة"
	FieldCommissionAmount = "مبلغ_العمولة"
	FieldNetAmount        = "الصافي"
)

// Fields is an untrusted field set as returned by the extraction service.
// Values may be strings, float64, json.Number or nil.
type Fields map[string]any

// ParseFields decodes a JSON object into Fields, keeping numbers exact.
func ParseFields(raw []byte) (Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields Fields
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("ParseFields: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("ParseFields: not a JSON object")
	}
	return fields, nil
}

// Text returns the trimmed string value of key. Scalars that are not strings
// are formatted; empty values are reported as absent.
func (f Fields) Text(key string) (string, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return "", false
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case json.Number:
		s = val.String()
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		s = strconv.Itoa(val)
	case int64:
		s = strconv.FormatInt(val, 10)
	default:
		return "", false
	}

	s = strings.TrimSpace(s)
	return s, s != ""
}

// Number returns the decimal value of key. Numeric strings are accepted since
// models sometimes quote numbers; anything unparseable is reported as absent.
func (f Fields) Number(key string) (decimal.Decimal, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return decimal.Zero, false
	}

	switch val := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case decimal.Decimal:
		return val, true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

func (f Fields) textOr(key, fallback string) string {
	if s, ok := f.Text(key); ok {
		return s
	}
	return fallback
}
