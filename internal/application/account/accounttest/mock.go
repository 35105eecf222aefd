// Package accounttest provides testify mocks of the account capabilities for
// the flow packages' tests.
package accounttest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/go-shop-auth/internal/application/account"
	"github.com/go-shop-auth/internal/domain"
)

// Kind is a mock account.Kind. Role and the template getters are fixed at
// construction so tests only set expectations on store calls.
type Kind struct {
	mock.Mock
	role domain.Role
}

func NewKind(role domain.Role) *Kind { return &Kind{role: role} }

func (m *Kind) Role() domain.Role { return m.role }

func (m *Kind) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Kind) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Kind) Create(ctx context.Context, na domain.NewAccount) (*domain.Account, error) {
	args := m.Called(ctx, na)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Kind) SetPasswordHash(ctx context.Context, id, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *Kind) Validate(na domain.NewAccount) error {
	if m.role == domain.RoleSeller && (na.PhoneNumber == "" || na.Country == "") {
		return domain.ErrBadRequest
	}
	return nil
}

func (m *Kind) ActivationTemplate() domain.TemplateKind {
	if m.role == domain.RoleSeller {
		return domain.TemplateSellerActivation
	}
	return domain.TemplateUserActivation
}

func (m *Kind) ResetTemplate() domain.TemplateKind {
	if m.role == domain.RoleSeller {
		return domain.TemplateSellerReset
	}
	return domain.TemplateUserReset
}

// Resolver serves a fixed set of mock kinds.
type Resolver map[domain.Role]*Kind

func (r Resolver) Kind(role domain.Role) (account.Kind, error) {
	k, ok := r[role]
	if !ok {
		return nil, domain.ErrBadRequest
	}
	return k, nil
}
