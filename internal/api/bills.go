package api

import (
	"bytes"
	"net/http"
	"strings"

	"goodsmile/clinic/domain"
	"goodsmile/clinic/internal/billing"
	"goodsmile/clinic/internal/printout"
	"goodsmile/clinic/internal/realtime"
)

type billRequest struct {
	PatientName   string               `json:"patient_name"`
	Address       string               `json:"address"`
	Age           string               `json:"age"`
	MobileNumber  string               `json:"mobile_number"`
	Items         []billing.ItemInput  `json:"items"`
	Discount      billing.RawAmount    `json:"discount"`
	Save          bool                 `json:"save"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

type billResponse struct {
	domain.Bill
	Transaction *domain.Transaction `json:"transaction,omitempty"`
}

// buildBill computes the bill and, when asked to, records its total as a
// transaction for today.
func (h *Handler) buildBill(r *http.Request) (domain.Bill, *domain.Transaction, error) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		return domain.Bill{}, nil, err
	}
	bill, err := h.bills.Compute(req.Items, req.Discount, domain.PatientMeta{
		PatientName:  req.PatientName,
		Address:      req.Address,
		Age:          req.Age,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		return domain.Bill{}, nil, err
	}
	if !req.Save {
		return bill, nil, nil
	}
	if bill.PatientName == "" {
		return domain.Bill{}, nil, badRequest("patient_name is required to save a bill", nil)
	}
	if bill.TotalAmount.IsNegative() {
		return domain.Bill{}, nil, badRequest("a bill with a negative total cannot be saved", nil)
	}
	work := make([]string, 0, len(bill.Items))
	for _, item := range bill.Items {
		if item.Description != "" {
			work = append(work, item.Description)
		}
	}
	tx := domain.Transaction{
		PatientName:   bill.PatientName,
		WorkDone:      strings.Join(work, ", "),
		AmountPaid:    bill.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		Date:          h.today(),
	}
	if tx.WorkDone == "" {
		tx.WorkDone = "Bill"
	}
	if err := h.checkTransaction(&tx); err != nil {
		return domain.Bill{}, nil, err
	}
	if err := h.store.CreateTransaction(r.Context(), &tx); err != nil {
		return domain.Bill{}, nil, err
	}
	h.publish(r, realtime.TableTransactions, realtime.EventInsert, tx.ID)
	return bill, &tx, nil
}

func (h *Handler) createBill(w http.ResponseWriter, r *http.Request) {
	bill, tx, err := h.buildBill(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.metrics.Bill("json")
	respondJSON(w, http.StatusOK, billResponse{Bill: bill, Transaction: tx})
}

func (h *Handler) printBill(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "pdf" {
		respondError(w, http.StatusBadRequest, "invalid_argument", "format must be html or pdf")
		return
	}
	bill, _, err := h.buildBill(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	contentType := "text/html; charset=utf-8"
	if format == "pdf" {
		contentType = "application/pdf"
		err = h.pdf.Render(&buf, bill)
	} else {
		err = printout.HTML(&buf, bill)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.metrics.Bill(format)
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
