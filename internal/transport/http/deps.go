package http

import (
	"context"
	"time"

	"github.com/go-shop-auth/internal/application/account"
	"github.com/go-shop-auth/internal/domain"
	jwtinfra "github.com/go-shop-auth/internal/infrastructure/jwt"
)

// KVStore holds OTP state. Implemented by the redis and dynamo stores.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// DeliveryChannel sends rendered OTP messages. Implemented by the smtp
// mailer and the sns mirror.
type DeliveryChannel interface {
	Send(ctx context.Context, msg domain.Message) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Buyers      account.BuyerStore
	Sellers     account.SellerStore
	KV          KVStore
	Channel     DeliveryChannel
	JWTProvider *jwtinfra.Provider
}
