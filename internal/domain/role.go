package domain

import "fmt"

// Role discriminates the two account kinds that share one token-verification path.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// legacyBuyerRole is the claim value older buyer tokens were signed with.
const legacyBuyerRole = "user"

// ParseRole maps a token or request role value onto a known Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case string(RoleBuyer), legacyBuyerRole:
		return RoleBuyer, nil
	case string(RoleSeller):
		return RoleSeller, nil
	}
	return "", fmt.Errorf("unknown role %q: %w", s, ErrBadRequest)
}

func (r Role) String() string { return string(r) }
