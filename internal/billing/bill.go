package billing

import (
	"fmt"
	"strings"
	"time"

	"goodsmile/clinic/domain"
	"goodsmile/clinic/internal/bangla"
)

// Assembler turns bill-form input into a printable Bill.
type Assembler struct {
	Now func() time.Time
}

func (a Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Compute aggregates the items, spells the total and stamps the bill date.
func (a Assembler) Compute(items []ItemInput, discount RawAmount, meta domain.PatientMeta) (domain.Bill, error) {
	totals := Aggregate(items, discount)
	words, err := WordsOf(totals.Total)
	if err != nil {
		return domain.Bill{}, fmt.Errorf("bill total: %w", err)
	}
	lines := make([]domain.LineItem, len(totals.Items))
	copy(lines, totals.Items)
	return domain.Bill{
		Date: bangla.BillDate(a.now()),
		PatientMeta: domain.PatientMeta{
			PatientName:  strings.TrimSpace(meta.PatientName),
			Address:      strings.TrimSpace(meta.Address),
			Age:          strings.TrimSpace(meta.Age),
			MobileNumber: strings.TrimSpace(meta.MobileNumber),
		},
		Items:         lines,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		TotalAmount:   totals.Total,
		AmountInWords: words,
	}, nil
}

// ComputeBill is Compute with the wall clock.
func ComputeBill(items []ItemInput, discount RawAmount, meta domain.PatientMeta) (domain.Bill, error) {
	return Assembler{}.Compute(items, discount, meta)
}
