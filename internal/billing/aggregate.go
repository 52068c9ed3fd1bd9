package billing

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"goodsmile/clinic/domain"
	"goodsmile/clinic/internal/bangla"
)

// RawAmount is a cost or discount exactly as it was typed into the bill form.
// JSON numbers, strings and null are all accepted.
type RawAmount string

func (r *RawAmount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*r = ""
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*r = RawAmount(s)
	default:
		*r = RawAmount(trimmed)
	}
	return nil
}

// maxExponent bounds scientific notation such as "1e300000000", which would
// otherwise expand to an enormous integer on the first rescale.
const maxExponent = 18

// Decimal parses the amount. Empty and non-numeric input reports false, as
// does an exponent beyond ±maxExponent. Bengali digits are accepted.
func (r RawAmount) Decimal() (decimal.Decimal, bool) {
	s := strings.TrimSpace(bangla.ASCIIDigits(string(r)))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	return d, true
}

// ItemInput is one bill-entry row before it has been validated.
type ItemInput struct {
	Description string    `json:"description"`
	Cost        RawAmount `json:"cost"`
}

// Totals is the aggregator output.
type Totals struct {
	Items      []domain.LineItem
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	Incomplete int
}

// Aggregate sums the numeric costs and subtracts the discount. Rows without a
// usable cost (empty, non-numeric or negative) add nothing and are left out of
// Items; rows with a cost but no description still count. Total is not floored
// at zero.
func Aggregate(items []ItemInput, discount RawAmount) Totals {
	t := Totals{Subtotal: decimal.Zero, Discount: decimal.Zero}
	for _, item := range items {
		desc := strings.TrimSpace(item.Description)
		cost, ok := item.Cost.Decimal()
		if ok && cost.IsNegative() {
			ok = false
		}
		if !ok || desc == "" {
			t.Incomplete++
		}
		if !ok {
			continue
		}
		t.Subtotal = t.Subtotal.Add(cost)
		t.Items = append(t.Items, domain.LineItem{Description: desc, Cost: cost})
	}
	if d, ok := discount.Decimal(); ok && !d.IsNegative() {
		t.Discount = d
	}
	t.Total = t.Subtotal.Sub(t.Discount)
	return t
}
