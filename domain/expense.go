package domain

import "github.com/shopspring/decimal"

type Expense struct {
	ID          int64           `db:"id" json:"id"`
	Description string          `db:"description" json:"description" validate:"required"`
	Amount      decimal.Decimal `db:"amount" json:"amount" validate:"gte=0"`
	Date        string          `db:"date" json:"date" validate:"required,datetime=2006-01-02"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
}
