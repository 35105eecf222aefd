// Package account resolves buyers and sellers behind one role-tagged
// capability so the flows above it never branch on role themselves.
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/go-shop-auth/internal/domain"
	"github.com/go-shop-auth/internal/pkg/id"
)

// FieldPasswordHash is the stored attribute/column holding the bcrypt hash.
const FieldPasswordHash = "password_hash"

// BuyerStore is implemented by the dynamo and postgres buyer repos.
type BuyerStore interface {
	Get(ctx context.Context, buyerID string) (*domain.Buyer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Buyer, error)
	Put(ctx context.Context, b *domain.Buyer) error
	Update(ctx context.Context, buyerID string, updates map[string]interface{}) error
}

// SellerStore is implemented by the dynamo and postgres seller repos.
// Get loads the seller's shop when withShop is set.
type SellerStore interface {
	Get(ctx context.Context, sellerID string, withShop bool) (*domain.Seller, error)
	GetByEmail(ctx context.Context, email string) (*domain.Seller, error)
	Put(ctx context.Context, s *domain.Seller) error
	Update(ctx context.Context, sellerID string, updates map[string]interface{}) error
}

// Kind is everything the auth flows need from one account variant.
type Kind interface {
	Role() domain.Role
	// FindByEmail returns an error wrapping domain.ErrNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindByID returns an error wrapping domain.ErrNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, na domain.NewAccount) (*domain.Account, error)
	SetPasswordHash(ctx context.Context, id, hash string) error
	// Validate checks the variant-specific registration fields.
	Validate(na domain.NewAccount) error
	ActivationTemplate() domain.TemplateKind
	ResetTemplate() domain.TemplateKind
}

// Directory maps each role to its Kind.
type Directory struct {
	kinds map[domain.Role]Kind
}

func NewDirectory(buyers BuyerStore, sellers SellerStore) *Directory {
	return &Directory{kinds: map[domain.Role]Kind{
		domain.RoleBuyer:  &buyerKind{store: buyers},
		domain.RoleSeller: &sellerKind{store: sellers},
	}}
}

// Kind returns the variant for role.
func (d *Directory) Kind(role domain.Role) (Kind, error) {
	k, ok := d.kinds[role]
	if !ok {
		return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrBadRequest)
	}
	return k, nil
}

// ── buyer ─────────────────────────────────────────────────────────────────────

type buyerKind struct{ store BuyerStore }

func (k *buyerKind) Role() domain.Role { return domain.RoleBuyer }

func (k *buyerKind) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	b, err := k.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return domain.BuyerAccount(b), nil
}

func (k *buyerKind) FindByID(ctx context.Context, buyerID string) (*domain.Account, error) {
	b, err := k.store.Get(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return domain.BuyerAccount(b), nil
}

func (k *buyerKind) Create(ctx context.Context, na domain.NewAccount) (*domain.Account, error) {
	now := time.Now().UTC()
	b := &domain.Buyer{
		BuyerID:      id.New(),
		Name:         na.Name,
		Email:        na.Email,
		PasswordHash: na.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := k.store.Put(ctx, b); err != nil {
		return nil, err
	}
	return domain.BuyerAccount(b), nil
}

func (k *buyerKind) SetPasswordHash(ctx context.Context, buyerID, hash string) error {
	return k.store.Update(ctx, buyerID, map[string]interface{}{FieldPasswordHash: hash})
}

func (k *buyerKind) Validate(domain.NewAccount) error { return nil }

func (k *buyerKind) ActivationTemplate() domain.TemplateKind { return domain.TemplateUserActivation }
func (k *buyerKind) ResetTemplate() domain.TemplateKind      { return domain.TemplateUserReset }

// ── seller ────────────────────────────────────────────────────────────────────

type sellerKind struct{ store SellerStore }

func (k *sellerKind) Role() domain.Role { return domain.RoleSeller }

func (k *sellerKind) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s, err := k.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return domain.SellerAccount(s), nil
}

func (k *sellerKind) FindByID(ctx context.Context, sellerID string) (*domain.Account, error) {
	s, err := k.store.Get(ctx, sellerID, true)
	if err != nil {
		return nil, err
	}
	return domain.SellerAccount(s), nil
}

func (k *sellerKind) Create(ctx context.Context, na domain.NewAccount) (*domain.Account, error) {
	now := time.Now().UTC()
	s := &domain.Seller{
		SellerID:     id.New(),
		Name:         na.Name,
		Email:        na.Email,
		PhoneNumber:  na.PhoneNumber,
		Country:      na.Country,
		PasswordHash: na.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := k.store.Put(ctx, s); err != nil {
		return nil, err
	}
	return domain.SellerAccount(s), nil
}

func (k *sellerKind) SetPasswordHash(ctx context.Context, sellerID, hash string) error {
	return k.store.Update(ctx, sellerID, map[string]interface{}{FieldPasswordHash: hash})
}

func (k *sellerKind) Validate(na domain.NewAccount) error {
	if na.PhoneNumber == "" || na.Country == "" {
		return fmt.Errorf("phone_number and country are required for sellers: %w", domain.ErrBadRequest)
	}
	return nil
}

func (k *sellerKind) ActivationTemplate() domain.TemplateKind { return domain.TemplateSellerActivation }
func (k *sellerKind) ResetTemplate() domain.TemplateKind      { return domain.TemplateSellerReset }
