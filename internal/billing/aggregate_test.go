package billing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSkipsNonNumericCost(t *testing.T) {
	totals := Aggregate([]ItemInput{
		{Cost: "100"},
		{Cost: "abc"},
	}, "20")
	assert.Equal(t, "100", totals.Subtotal.String())
	assert.Equal(t, "80", totals.Total.String())
	assert.Len(t, totals.Items, 1)
	assert.Equal(t, 2, totals.Incomplete)
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil, "")
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.Empty(t, totals.Items)
}

func TestAggregate(t *testing.T) {
	cases := []struct {
		name     string
		items    []ItemInput
		discount RawAmount
		subtotal string
		total    string
	}{
		{
			name:     "filling and cleaning",
			items:    []ItemInput{{"Filling", "500"}, {"Cleaning", "300"}},
			discount: "100",
			subtotal: "800",
			total:    "700",
		},
		{
			name:     "fractional costs",
			items:    []ItemInput{{"Scaling", "250.25"}, {"X-ray", "99.75"}},
			discount: "0.5",
			subtotal: "350",
			total:    "349.5",
		},
		{
			name:     "discount larger than subtotal",
			items:    []ItemInput{{"Checkup", "100"}},
			discount: "150",
			subtotal: "100",
			total:    "-50",
		},
		{
			name:     "unparsable discount",
			items:    []ItemInput{{"Checkup", "100"}},
			discount: "ten",
			subtotal: "100",
			total:    "100",
		},
		{
			name:     "negative discount ignored",
			items:    []ItemInput{{"Checkup", "100"}},
			discount: "-10",
			subtotal: "100",
			total:    "100",
		},
		{
			name:     "negative cost ignored",
			items:    []ItemInput{{"Checkup", "100"}, {"Refund", "-40"}},
			subtotal: "100",
			total:    "100",
		},
		{
			name:     "bengali digits",
			items:    []ItemInput{{"RCT", "৩০০০"}},
			discount: "৫০০",
			subtotal: "3000",
			total:    "2500",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := Aggregate(tc.items, tc.discount)
			assert.Equal(t, tc.subtotal, totals.Subtotal.String())
			assert.Equal(t, tc.total, totals.Total.String())
		})
	}
}

func TestAggregateKeepsOrderAndCostOnlyRows(t *testing.T) {
	totals := Aggregate([]ItemInput{
		{"Extraction", "800"},
		{"", "200"},
		{"Crown", ""},
		{"  Filling  ", "500"},
	}, "")
	require.Len(t, totals.Items, 3)
	assert.Equal(t, "Extraction", totals.Items[0].Description)
	assert.Equal(t, "", totals.Items[1].Description)
	assert.Equal(t, "Filling", totals.Items[2].Description)
	assert.Equal(t, 2, totals.Incomplete)

	sum := decimal.Zero
	for _, item := range totals.Items {
		sum = sum.Add(item.Cost)
	}
	assert.True(t, sum.Equal(totals.Subtotal))
}

func TestRawAmountUnmarshal(t *testing.T) {
	var payload struct {
		A RawAmount `json:"a"`
		B RawAmount `json:"b"`
		C RawAmount `json:"c"`
		D RawAmount `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":100.5,"b":"200","c":null,"d":"abc"}`), &payload))

	a, ok := payload.A.Decimal()
	require.True(t, ok)
	assert.Equal(t, "100.5", a.String())

	b, ok := payload.B.Decimal()
	require.True(t, ok)
	assert.Equal(t, "200", b.String())

	_, ok = payload.C.Decimal()
	assert.False(t, ok)
	_, ok = payload.D.Decimal()
	assert.False(t, ok)
}

func TestRawAmountRejectsExtremeExponents(t *testing.T) {
	for _, raw := range []RawAmount{"1e300000000", "1E19", "5e-300000000", "-1e400"} {
		_, ok := raw.Decimal()
		assert.False(t, ok, string(raw))
	}
	d, ok := RawAmount("1.5e3").Decimal()
	require.True(t, ok)
	assert.Equal(t, "1500", d.String())
}
