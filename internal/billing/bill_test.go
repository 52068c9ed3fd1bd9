package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodsmile/clinic/domain"
)

func fixedAssembler() Assembler {
	return Assembler{Now: func() time.Time {
		return time.Date(2025, time.June, 5, 18, 30, 0, 0, time.UTC)
	}}
}

func TestComputeBill(t *testing.T) {
	meta := domain.PatientMeta{PatientName: " Rahim ", Address: "Mirpur", Age: "34", MobileNumber: "01700000000"}
	bill, err := fixedAssembler().Compute([]ItemInput{
		{"Filling", "500"},
		{"Cleaning", "300"},
	}, "100", meta)
	require.NoError(t, err)

	assert.Equal(t, "05/06/2025", bill.Date)
	assert.Equal(t, "Rahim", bill.PatientName)
	assert.Equal(t, "Mirpur", bill.Address)
	assert.Len(t, bill.Items, 2)
	assert.Equal(t, "800", bill.Subtotal.String())
	assert.Equal(t, "100", bill.Discount.String())
	assert.Equal(t, "700", bill.TotalAmount.String())
	assert.Equal(t, "সাত শত", bill.AmountInWords)
	assert.True(t, bill.TotalAmount.Equal(bill.Subtotal.Sub(bill.Discount)))
}

func TestComputeBillEmpty(t *testing.T) {
	bill, err := fixedAssembler().Compute(nil, "0", domain.PatientMeta{})
	require.NoError(t, err)
	assert.True(t, bill.Subtotal.IsZero())
	assert.True(t, bill.TotalAmount.IsZero())
	assert.Equal(t, zeroWord, bill.AmountInWords)
	assert.Empty(t, bill.Items)
}

func TestComputeBillOverDiscount(t *testing.T) {
	bill, err := fixedAssembler().Compute([]ItemInput{{"Checkup", "100"}}, "150", domain.PatientMeta{})
	require.NoError(t, err)
	assert.Equal(t, "-50", bill.TotalAmount.String())
	assert.Equal(t, "ঋণাত্মক পঞ্চাশ", bill.AmountInWords)
}

func TestComputeBillOutOfRange(t *testing.T) {
	_, err := fixedAssembler().Compute([]ItemInput{{"Gold", "100000000000000000000"}}, "", domain.PatientMeta{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestComputeBillIgnoresExtremeExponents(t *testing.T) {
	done := make(chan struct{})
	var (
		bill domain.Bill
		err  error
	)
	go func() {
		defer close(done)
		bill, err = fixedAssembler().Compute([]ItemInput{
			{"Filling", "500"},
			{"x", "1e300000000"},
		}, "1e-300000000", domain.PatientMeta{})
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Compute did not return for an extreme exponent")
	}
	require.NoError(t, err)
	assert.Equal(t, "500", bill.TotalAmount.String())
	assert.Len(t, bill.Items, 1)
}

func TestComputeBillItemsAreCopied(t *testing.T) {
	items := []ItemInput{{"Filling", "500"}}
	a, err := fixedAssembler().Compute(items, "", domain.PatientMeta{})
	require.NoError(t, err)
	b, err := fixedAssembler().Compute(items, "", domain.PatientMeta{})
	require.NoError(t, err)
	a.Items[0].Description = "changed"
	assert.Equal(t, "Filling", b.Items[0].Description)
}
