package middleware

import "github.com/go-shop-auth/internal/domain"

// CookieNames holds the access and refresh cookie names for one role.
type CookieNames struct {
	Access  string
	Refresh string
}

var cookieNames = map[domain.Role]CookieNames{
	domain.RoleBuyer:  {Access: "access_token", Refresh: "refresh_token"},
	domain.RoleSeller: {Access: "seller_access_token", Refresh: "seller_refresh_token"},
}

// CookiesFor returns the cookie names used for role.
func CookiesFor(role domain.Role) CookieNames { return cookieNames[role] }

// RefreshCookieOrder is the order refresh cookies are looked up in.
var RefreshCookieOrder = []string{
	cookieNames[domain.RoleBuyer].Refresh,
	cookieNames[domain.RoleSeller].Refresh,
}
