package handler

import (
	"net/http"
	"time"
)

// CookieOptions controls the attributes of the token cookies.
type CookieOptions struct {
	Secure bool
}

// setCookie writes an HttpOnly cookie. SameSite=None needs Secure, so
// insecure dev setups fall back to Lax.
func (o CookieOptions) setCookie(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.sameSite(),
	})
}

func (o CookieOptions) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.sameSite(),
	})
}

func (o CookieOptions) sameSite() http.SameSite {
	if o.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
