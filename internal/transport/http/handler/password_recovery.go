package handler

import (
	"net/http"

	"github.com/go-shop-auth/internal/application/password"
	"github.com/go-shop-auth/internal/domain"
)

// PasswordRecoveryHandler serves the forgot/verify/reset sequence.
type PasswordRecoveryHandler struct {
	svc password.Service
}

func NewPasswordRecoveryHandler(svc password.Service) *PasswordRecoveryHandler {
	return &PasswordRecoveryHandler{svc: svc}
}

func (h *PasswordRecoveryHandler) Forgot(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req password.ForgotRequest
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.svc.Forgot(r.Context(), role, req); err != nil {
			httpError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "OTP sent to email, please verify your account"})
	}
}

func (h *PasswordRecoveryHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req password.VerifyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Verify(r.Context(), req); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "OTP verified, you can reset your password now"})
}

func (h *PasswordRecoveryHandler) Reset(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req password.ResetRequest
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.svc.Reset(r.Context(), role, req); err != nil {
			httpError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "password reset successfully"})
	}
}
