package domain

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentBKash  PaymentMethod = "bKash"
	PaymentOnline PaymentMethod = "Online"
	PaymentFree   PaymentMethod = "Free"
)

type Transaction struct {
	ID            int64           `db:"id" json:"id"`
	PatientName   string          `db:"patient_name" json:"patient_name" validate:"required"`
	WorkDone      string          `db:"work_done" json:"work_done" validate:"required"`
	AmountPaid    decimal.Decimal `db:"amount_paid" json:"amount_paid" validate:"gte=0"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"payment_method" validate:"required,oneof=Cash bKash Online Free"`
	IsFree        bool            `db:"is_free" json:"is_free"`
	Date          string          `db:"date" json:"date" validate:"required,datetime=2006-01-02"`
	CreatedAt     string          `db:"created_at" json:"created_at"`
}

// Normalize applies the free-patient rule: no payment is recorded and the method is Free.
func (t *Transaction) Normalize() {
	if t.IsFree {
		t.AmountPaid = decimal.Zero
		t.PaymentMethod = PaymentFree
	}
	if t.PaymentMethod == "" {
		t.PaymentMethod = PaymentCash
	}
}
