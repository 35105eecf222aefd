package handler

import (
	"net/http"

	"github.com/go-shop-auth/internal/application/registration"
	"github.com/go-shop-auth/internal/domain"
)

// RegistrationHandler serves OTP-gated signup for one role per route.
type RegistrationHandler struct {
	svc registration.Service
}

func NewRegistrationHandler(svc registration.Service) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) Register(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registration.Request
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.svc.Request(r.Context(), role, req); err != nil {
			httpError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{
			Success: true,
			Message: "OTP sent to email, please verify your account",
		})
	}
}

func (h *RegistrationHandler) Verify(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registration.ConfirmRequest
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		acc, err := h.svc.Confirm(r.Context(), role, req)
		if err != nil {
			httpError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, accountEnvelope(string(role)+" registered successfully", acc))
	}
}
