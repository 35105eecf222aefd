package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-shop-auth/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorEnvelope is written for every failed request. RetryAfterSeconds and
// AttemptsLeft are only set for OTP throttle and verification rejections.
type ErrorEnvelope struct {
	Success           bool   `json:"success"`
	Error             string `json:"error"`
	RetryAfterSeconds *int   `json:"retry_after_seconds,omitempty"`
	AttemptsLeft      *int   `json:"attempts_left,omitempty"`
}

// AccountEnvelope wraps responses that return the caller's account.
type AccountEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *SafeAccount `json:"user,omitempty"`
	Seller  *SafeAccount `json:"seller,omitempty"`
}

// SafeAccount is the public view of a buyer or seller.
type SafeAccount struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Role        domain.Role  `json:"role"`
	PhoneNumber string       `json:"phone_number,omitempty"`
	Country     string       `json:"country,omitempty"`
	Shop        *domain.Shop `json:"shop,omitempty"`
}

func toSafeAccount(a *domain.Account) *SafeAccount {
	if a == nil {
		return nil
	}
	sa := &SafeAccount{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
	if a.Seller != nil {
		sa.PhoneNumber = a.Seller.PhoneNumber
		sa.Country = a.Seller.Country
		sa.Shop = a.Seller.Shop
	}
	return sa
}

// accountEnvelope places the account under "user" or "seller" by role.
func accountEnvelope(msg string, a *domain.Account) AccountEnvelope {
	env := AccountEnvelope{Success: true, Message: msg}
	if a != nil && a.Role == domain.RoleSeller {
		env.Seller = toSafeAccount(a)
	} else {
		env.User = toSafeAccount(a)
	}
	return env
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorEnvelope{Error: msg})
}

func decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
