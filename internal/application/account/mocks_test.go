package account

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/go-shop-auth/internal/domain"
)

type mockBuyerStore struct{ mock.Mock }

func (m *mockBuyerStore) Get(ctx context.Context, buyerID string) (*domain.Buyer, error) {
	args := m.Called(ctx, buyerID)
	if b, _ := args.Get(0).(*domain.Buyer); b != nil {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBuyerStore) GetByEmail(ctx context.Context, email string) (*domain.Buyer, error) {
	args := m.Called(ctx, email)
	if b, _ := args.Get(0).(*domain.Buyer); b != nil {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBuyerStore) Put(ctx context.Context, b *domain.Buyer) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBuyerStore) Update(ctx context.Context, buyerID string, updates map[string]interface{}) error {
	return m.Called(ctx, buyerID, updates).Error(0)
}

type mockSellerStore struct{ mock.Mock }

func (m *mockSellerStore) Get(ctx context.Context, sellerID string, withShop bool) (*domain.Seller, error) {
	args := m.Called(ctx, sellerID, withShop)
	if s, _ := args.Get(0).(*domain.Seller); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSellerStore) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	args := m.Called(ctx, email)
	if s, _ := args.Get(0).(*domain.Seller); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSellerStore) Put(ctx context.Context, s *domain.Seller) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSellerStore) Update(ctx context.Context, sellerID string, updates map[string]interface{}) error {
	return m.Called(ctx, sellerID, updates).Error(0)
}
