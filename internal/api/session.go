package api

import (
	"net/http"
	"strconv"
	"strings"

	"goodsmile/clinic/internal/session"
)

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.fail(w, r, err)
		return
	}
	token, err := h.sessions.Login(req.Password)
	if err != nil {
		h.metrics.LoginFailed()
		if retry := h.sessions.RetryAfter(); retry > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds()+0.999)))
		}
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, token)
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := session.BearerToken(header)
		if !ok && r.Header.Get("Accept") == "text/event-stream" {
			// EventSource cannot set headers.
			tokenString = strings.TrimSpace(r.URL.Query().Get("token"))
			ok = tokenString != ""
		}
		if !ok {
			respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		if err := h.sessions.Verify(tokenString); err != nil {
			h.fail(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
