package ledger

import (
	"encoding/csv"
	"fmt"
	"io"

	"goodsmile/clinic/domain"
)

var csvHeader = []string{"date", "kind", "description", "payment_method", "amount"}

// WriteCSV writes a month's ledger as one row per transaction followed by one
// row per expense, then a closing totals row.
func WriteCSV(w io.Writer, txs []domain.Transaction, exps []domain.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		desc := tx.PatientName
		if tx.WorkDone != "" {
			desc += " - " + tx.WorkDone
		}
		record := []string{tx.Date, "income", desc, string(tx.PaymentMethod), tx.AmountPaid.StringFixed(2)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	for _, e := range exps {
		record := []string{e.Date, "expense", e.Description, "", e.Amount.StringFixed(2)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	t := sum(txs, exps)
	if err := cw.Write([]string{"", "profit", "", "", t.income.Sub(t.expenses).StringFixed(2)}); err != nil {
		return fmt.Errorf("write csv totals: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
