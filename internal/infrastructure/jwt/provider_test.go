package jwtinfra

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-shop-auth/internal/config"
	"github.com/go-shop-auth/internal/domain"
)

func newProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_RequiresDistinctSecrets(t *testing.T) {
	_, err := NewProvider(&config.Config{})
	assert.Error(t, err)
	_, err = NewProvider(&config.Config{AccessTokenSecret: "x", RefreshTokenSecret: "x"})
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	p := newProvider(t)
	tok, err := p.SignAccess("01HBUYER", domain.RoleSeller)
	require.NoError(t, err)

	c, err := p.VerifyAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, "01HBUYER", c.Subject)
	assert.Equal(t, "seller", c.Role)
	assert.NotEmpty(t, c.ID)
	assert.LessOrEqual(t, time.Until(c.ExpiresAt.Time), 15*time.Minute)
}

func TestRefreshToken_Lifetime(t *testing.T) {
	p := newProvider(t)
	tok, err := p.SignRefresh("01HBUYER", domain.RoleBuyer)
	require.NoError(t, err)

	c, err := p.VerifyRefresh(tok)
	require.NoError(t, err)
	remaining := time.Until(c.ExpiresAt.Time)
	assert.LessOrEqual(t, remaining, 7*24*time.Hour)
	assert.Greater(t, remaining, 7*24*time.Hour-time.Minute)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	p := newProvider(t)
	access, _ := p.SignAccess("u1", domain.RoleBuyer)
	refresh, _ := p.SignRefresh("u1", domain.RoleBuyer)

	_, err := p.VerifyRefresh(access)
	assert.Error(t, err)
	_, err = p.VerifyAccess(refresh)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	p := newProvider(t)
	p.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	tok, err := p.SignRefresh("u1", domain.RoleSeller)
	require.NoError(t, err)

	p.now = time.Now
	_, err = p.VerifyRefresh(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	p := newProvider(t)
	claims := Claims{Role: "buyer", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = p.VerifyAccess(tok)
	assert.Error(t, err)
}

func TestVerify_LegacyRolelessToken(t *testing.T) {
	p := newProvider(t)
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("refresh-secret"))
	require.NoError(t, err)

	c, err := p.VerifyRefresh(tok)
	require.NoError(t, err)
	assert.Empty(t, c.Role)
}
