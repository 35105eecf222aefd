package handler

import (
	"net/http"

	"github.com/go-shop-auth/internal/application/session"
	"github.com/go-shop-auth/internal/domain"
	"github.com/go-shop-auth/internal/transport/http/middleware"
)

// SessionHandler handles login, refresh, logout and the logged-in lookups.
type SessionHandler struct {
	svc     session.Service
	cookies CookieOptions
}

func NewSessionHandler(svc session.Service, cookies CookieOptions) *SessionHandler {
	return &SessionHandler{svc: svc, cookies: cookies}
}

func (h *SessionHandler) Login(role domain.Role) http.HandlerFunc {
	names := middleware.CookiesFor(role)
	stale := middleware.CookiesFor(otherRole(role))
	return func(w http.ResponseWriter, r *http.Request) {
		var req session.LoginRequest
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		res, err := h.svc.Login(r.Context(), role, req)
		if err != nil {
			httpError(w, r, err)
			return
		}
		// Stale cookies of the other role would win the refresh lookup.
		h.cookies.clearCookie(w, stale.Access)
		h.cookies.clearCookie(w, stale.Refresh)
		h.cookies.setCookie(w, names.Access, res.AccessToken, res.AccessTTL)
		h.cookies.setCookie(w, names.Refresh, res.RefreshToken, res.RefreshTTL)
		writeJSON(w, http.StatusOK, accountEnvelope("login successful", res.Account))
	}
}

func otherRole(role domain.Role) domain.Role {
	if role == domain.RoleSeller {
		return domain.RoleBuyer
	}
	return domain.RoleSeller
}

// Refresh accepts the refresh token from either role's cookie or a Bearer
// header and sets a new access cookie for the role the token carries.
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	tok := middleware.TokenFromRequest(r, middleware.RefreshCookieOrder...)
	res, err := h.svc.Refresh(r.Context(), tok)
	if err != nil {
		httpError(w, r, err)
		return
	}
	h.cookies.setCookie(w, middleware.CookiesFor(res.Role).Access, res.AccessToken, res.AccessTTL)
	writeJSON(w, http.StatusCreated, MessageEnvelope{Success: true, Message: "access token refreshed"})
}

// Logout clears the token cookies of both roles.
func (h *SessionHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	for _, role := range []domain.Role{domain.RoleBuyer, domain.RoleSeller} {
		names := middleware.CookiesFor(role)
		h.cookies.clearCookie(w, names.Access)
		h.cookies.clearCookie(w, names.Refresh)
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "logged out"})
}

// Me returns the account resolved by the Auth middleware.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	acc, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, accountEnvelope("", acc))
}
