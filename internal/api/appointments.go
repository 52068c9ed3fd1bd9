package api

import (
	"errors"
	"net/http"
	"strings"

	"goodsmile/clinic/domain"
	"goodsmile/clinic/internal/ledger"
	"goodsmile/clinic/internal/realtime"
	"goodsmile/clinic/internal/schedule"
)

func (h *Handler) listAppointments(w http.ResponseWriter, r *http.Request) {
	date, err := ledger.ParseDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	list, err := h.store.AppointmentsByDate(r.Context(), date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) monthlyAppointments(w http.ResponseWriter, r *http.Request) {
	month, err := ledger.ParseMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"), h.now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	start, end := month.Range()
	list, err := h.store.AppointmentsBetween(r.Context(), start, end)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// checkAppointment trims and validates the record, then applies the clinic
// hours policy.
func (h *Handler) checkAppointment(a *domain.Appointment) error {
	a.PatientName = strings.TrimSpace(a.PatientName)
	a.MobileNumber = strings.TrimSpace(a.MobileNumber)
	a.WorkDescription = strings.TrimSpace(a.WorkDescription)
	a.AppointmentDate = strings.TrimSpace(a.AppointmentDate)
	a.AppointmentTime = strings.TrimSpace(a.AppointmentTime)
	if err := h.validate.Struct(a); err != nil {
		return err
	}
	if err := h.policy.Check(a.AppointmentDate, a.AppointmentTime); err != nil {
		switch {
		case errors.Is(err, schedule.ErrClosedDay):
			h.metrics.Rejected("closed_day")
		case errors.Is(err, schedule.ErrOutsideHours):
			h.metrics.Rejected("outside_hours")
		}
		return err
	}
	return nil
}

func (h *Handler) createAppointment(w http.ResponseWriter, r *http.Request) {
	var a domain.Appointment
	if err := decodeJSON(r, &a); err != nil {
		h.fail(w, r, err)
		return
	}
	a.ID = 0
	if err := h.checkAppointment(&a); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.CreateAppointment(r.Context(), &a); err != nil {
		h.fail(w, r, err)
		return
	}
	h.publish(r, realtime.TableAppointments, realtime.EventInsert, a.ID)
	respondJSON(w, http.StatusCreated, a)
}

func (h *Handler) updateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var a domain.Appointment
	if err := decodeJSON(r, &a); err != nil {
		h.fail(w, r, err)
		return
	}
	a.ID = id
	if err := h.checkAppointment(&a); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.UpdateAppointment(r.Context(), a); err != nil {
		h.fail(w, r, err)
		return
	}
	updated, err := h.store.GetAppointment(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.publish(r, realtime.TableAppointments, realtime.EventUpdate, id)
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.DeleteAppointment(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.publish(r, realtime.TableAppointments, realtime.EventDelete, id)
	w.WriteHeader(http.StatusNoContent)
}
