package api

import (
	"fmt"
	"net/http"

	"goodsmile/clinic/internal/ledger"
)

func (h *Handler) dailySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledger.Daily(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) monthlySummary(w http.ResponseWriter, r *http.Request) {
	month, err := ledger.ParseMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"), h.now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	summary, err := h.ledger.Monthly(r.Context(), month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) monthlyCSV(w http.ResponseWriter, r *http.Request) {
	month, err := ledger.ParseMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"), h.now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	txs, exps, err := h.ledger.MonthRows(r.Context(), month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="ledger-%s.csv"`, month))
	if err := ledger.WriteCSV(w, txs, exps); err != nil {
		h.logger.Error().Err(err).Str("month", month.String()).Msg("write ledger csv")
	}
}
