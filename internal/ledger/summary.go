package ledger

import (
	"github.com/shopspring/decimal"

	"goodsmile/clinic/domain"
	"goodsmile/clinic/internal/bangla"
)

// DailySummary is the day view of the ledger.
type DailySummary struct {
	Date             string          `json:"date"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int             `json:"transaction_count"`
	ExpenseCount     int             `json:"expense_count"`
	FreePatients     int             `json:"free_patients"`
}

// MonthlySummary is the month view of the ledger.
type MonthlySummary struct {
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	Title            string          `json:"title"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	Profit           decimal.Decimal `json:"profit"`
	TransactionCount int             `json:"transaction_count"`
	ExpenseCount     int             `json:"expense_count"`
	FreePatients     int             `json:"free_patients"`
}

type totals struct {
	income, expenses decimal.Decimal
	free             int
}

func sum(txs []domain.Transaction, exps []domain.Expense) totals {
	var t totals
	for _, tx := range txs {
		if tx.IsFree {
			t.free++
			continue
		}
		t.income = t.income.Add(tx.AmountPaid)
	}
	for _, e := range exps {
		t.expenses = t.expenses.Add(e.Amount)
	}
	return t
}

// SummarizeDay folds one day's records.
func SummarizeDay(date string, txs []domain.Transaction, exps []domain.Expense) DailySummary {
	t := sum(txs, exps)
	return DailySummary{
		Date:             date,
		TotalIncome:      t.income,
		TotalExpenses:    t.expenses,
		Net:              t.income.Sub(t.expenses),
		TransactionCount: len(txs),
		ExpenseCount:     len(exps),
		FreePatients:     t.free,
	}
}

// SummarizeMonth folds one month's records.
func SummarizeMonth(m Month, txs []domain.Transaction, exps []domain.Expense) MonthlySummary {
	t := sum(txs, exps)
	return MonthlySummary{
		Year:             m.Year,
		Month:            int(m.Month),
		Title:            bangla.MonthTitle(m.Year, m.Month),
		TotalIncome:      t.income,
		TotalExpenses:    t.expenses,
		Profit:           t.income.Sub(t.expenses),
		TransactionCount: len(txs),
		ExpenseCount:     len(exps),
		FreePatients:     t.free,
	}
}
