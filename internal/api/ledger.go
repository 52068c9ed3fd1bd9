package api

import (
	"net/http"
	"strings"

	"goodsmile/clinic/domain"
	"goodsmile/clinic/internal/ledger"
	"goodsmile/clinic/internal/realtime"
)

// Transactions

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	date, err := ledger.ParseDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	list, err := h.store.TransactionsByDate(r.Context(), date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) monthlyTransactions(w http.ResponseWriter, r *http.Request) {
	month, err := ledger.ParseMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"), h.now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	start, end := month.Range()
	list, err := h.store.TransactionsBetween(r.Context(), start, end)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) checkTransaction(t *domain.Transaction) error {
	t.PatientName = strings.TrimSpace(t.PatientName)
	t.WorkDone = strings.TrimSpace(t.WorkDone)
	if strings.TrimSpace(t.Date) == "" {
		t.Date = h.today()
	}
	t.Normalize()
	return h.validate.Struct(t)
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var t domain.Transaction
	if err := decodeJSON(r, &t); err != nil {
		h.fail(w, r, err)
		return
	}
	t.ID = 0
	if err := h.checkTransaction(&t); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.CreateTransaction(r.Context(), &t); err != nil {
		h.fail(w, r, err)
		return
	}
	h.publish(r, realtime.TableTransactions, realtime.EventInsert, t.ID)
	respondJSON(w, http.StatusCreated, t)
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var t domain.Transaction
	if err := decodeJSON(r, &t); err != nil {
		h.fail(w, r, err)
		return
	}
	t.ID = id
	if err := h.checkTransaction(&t); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.UpdateTransaction(r.Context(), t); err != nil {
		h.fail(w, r, err)
		return
	}
	updated, err := h.store.GetTransaction(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.publish(r, realtime.TableTransactions, realtime.EventUpdate, id)
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.DeleteTransaction(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.publish(r, realtime.TableTransactions, realtime.EventDelete, id)
	w.WriteHeader(http.StatusNoContent)
}

// Expenses

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	date, err := ledger.ParseDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	list, err := h.store.ExpensesByDate(r.Context(), date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) monthlyExpenses(w http.ResponseWriter, r *http.Request) {
	month, err := ledger.ParseMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"), h.now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	start, end := month.Range()
	list, err := h.store.ExpensesBetween(r.Context(), start, end)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) checkExpense(e *domain.Expense) error {
	e.Description = strings.TrimSpace(e.Description)
	if strings.TrimSpace(e.Date) == "" {
		e.Date = h.today()
	}
	return h.validate.Struct(e)
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var e domain.Expense
	if err := decodeJSON(r, &e); err != nil {
		h.fail(w, r, err)
		return
	}
	e.ID = 0
	if err := h.checkExpense(&e); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.CreateExpense(r.Context(), &e); err != nil {
		h.fail(w, r, err)
		return
	}
	h.publish(r, realtime.TableExpenses, realtime.EventInsert, e.ID)
	respondJSON(w, http.StatusCreated, e)
}

func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var e domain.Expense
	if err := decodeJSON(r, &e); err != nil {
		h.fail(w, r, err)
		return
	}
	e.ID = id
	if err := h.checkExpense(&e); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.UpdateExpense(r.Context(), e); err != nil {
		h.fail(w, r, err)
		return
	}
	updated, err := h.store.GetExpense(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.publish(r, realtime.TableExpenses, realtime.EventUpdate, id)
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.DeleteExpense(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.publish(r, realtime.TableExpenses, realtime.EventDelete, id)
	w.WriteHeader(http.StatusNoContent)
}
