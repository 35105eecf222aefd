package postgres

import (
	"context"
	"fmt"

	"github.com/go-shop-auth/internal/domain"
	"gorm.io/gorm"
)

type BuyerRepo struct{ db *gorm.DB }

func NewBuyerRepo(db *gorm.DB) *BuyerRepo { return &BuyerRepo{db: db} }

func (r *BuyerRepo) Put(ctx context.Context, b *domain.Buyer) error {
	return translateError(r.db.WithContext(ctx).Create(b).Error)
}

func (r *BuyerRepo) Get(ctx context.Context, buyerID string) (*domain.Buyer, error) {
	var b domain.Buyer
	if err := r.db.WithContext(ctx).First(&b, "buyer_id = ?", buyerID).Error; err != nil {
		return nil, translateError(err)
	}
	return &b, nil
}

func (r *BuyerRepo) GetByEmail(ctx context.Context, email string) (*domain.Buyer, error) {
	var b domain.Buyer
	if err := r.db.WithContext(ctx).First(&b, "email = ?", email).Error; err != nil {
		return nil, translateError(err)
	}
	return &b, nil
}

func (r *BuyerRepo) Update(ctx context.Context, buyerID string, updates map[string]interface{}) error {
	return updateByID(ctx, r.db.Model(&domain.Buyer{}), "buyer_id", buyerID, updates)
}

type SellerRepo struct{ db *gorm.DB }

func NewSellerRepo(db *gorm.DB) *SellerRepo { return &SellerRepo{db: db} }

func (r *SellerRepo) Put(ctx context.Context, s *domain.Seller) error {
	return translateError(r.db.WithContext(ctx).Omit("Shop").Create(s).Error)
}

func (r *SellerRepo) Get(ctx context.Context, sellerID string, withShop bool) (*domain.Seller, error) {
	q := r.db.WithContext(ctx)
	if withShop {
		q = q.Preload("Shop")
	}
	var s domain.Seller
	if err := q.First(&s, "seller_id = ?", sellerID).Error; err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

func (r *SellerRepo) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	var s domain.Seller
	if err := r.db.WithContext(ctx).First(&s, "email = ?", email).Error; err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

func (r *SellerRepo) Update(ctx context.Context, sellerID string, updates map[string]interface{}) error {
	return updateByID(ctx, r.db.Model(&domain.Seller{}), "seller_id", sellerID, updates)
}

func updateByID(ctx context.Context, q *gorm.DB, pk, id string, updates map[string]interface{}) error {
	res := q.WithContext(ctx).Where(pk+" = ?", id).Updates(updates)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", pk, id, domain.ErrNotFound)
	}
	return nil
}
