package domain

import "github.com/shopspring/decimal"

// LineItem is one row of work on a patient bill.
type LineItem struct {
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// PatientMeta is the free-form patient header printed on a bill.
type PatientMeta struct {
	PatientName  string `json:"patient_name"`
	Address      string `json:"address"`
	Age          string `json:"age"`
	MobileNumber string `json:"mobile_number"`
}

// Bill is computed on demand and never persisted as such.
type Bill struct {
	Date string `json:"date"`
	PatientMeta
	Items         []LineItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountInWords string          `json:"amount_in_words"`
}
