package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-shop-auth/internal/application/otp"
	"github.com/go-shop-auth/internal/domain"
)

// httpError maps a service error onto a status code and error envelope.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	var rej *otp.RejectionError
	if errors.As(err, &rej) {
		env := ErrorEnvelope{Error: rej.Error()}
		if rej.RetryAfter > 0 {
			secs := int(rej.RetryAfter.Seconds())
			env.RetryAfterSeconds = &secs
		}
		if rej.Outcome == otp.Incorrect {
			left := rej.AttemptsLeft
			env.AttemptsLeft = &left
		}
		writeJSON(w, http.StatusBadRequest, env)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, status, "something went wrong, please try again")
		return
	}
	writeError(w, status, err.Error())
}
