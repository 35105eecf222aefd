package domain

import "time"

// Buyer is a shopper account (the "users" collection).
type Buyer struct {
	BuyerID      string    `json:"id" dynamodbav:"buyer_id" gorm:"primaryKey;size:26"`
	Name         string    `json:"name" dynamodbav:"name" gorm:"not null"`
	Email        string    `json:"email" dynamodbav:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash" gorm:"not null"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at" gorm:"autoUpdateTime"`
}

// Seller is a merchant account. Shop is only populated by lookups that ask for it.
type Seller struct {
	SellerID     string    `json:"id" dynamodbav:"seller_id" gorm:"primaryKey;size:26"`
	Name         string    `json:"name" dynamodbav:"name" gorm:"not null"`
	Email        string    `json:"email" dynamodbav:"email" gorm:"uniqueIndex;not null"`
	PhoneNumber  string    `json:"phone_number" dynamodbav:"phone_number" gorm:"not null"`
	Country      string    `json:"country" dynamodbav:"country" gorm:"not null"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash" gorm:"not null"`
	Shop         *Shop     `json:"shop,omitempty" dynamodbav:"-" gorm:"foreignKey:SellerID"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at" gorm:"autoUpdateTime"`
}

// Shop belongs to exactly one seller.
type Shop struct {
	ShopID       string    `json:"id" dynamodbav:"shop_id" gorm:"primaryKey;size:26"`
	SellerID     string    `json:"seller_id" dynamodbav:"seller_id" gorm:"uniqueIndex;size:26;not null"`
	Name         string    `json:"name" dynamodbav:"name"`
	Bio          string    `json:"bio" dynamodbav:"bio"`
	Category     string    `json:"category" dynamodbav:"category"`
	Address      string    `json:"address" dynamodbav:"address"`
	OpeningHours string    `json:"opening_hours" dynamodbav:"opening_hours"`
	Website      string    `json:"website,omitempty" dynamodbav:"website"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at" gorm:"autoUpdateTime"`
}

// Account is the role-tagged view of a buyer or seller. Exactly one of
// Buyer and Seller is set, matching Role.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Buyer        *Buyer
	Seller       *Seller
}

func BuyerAccount(b *Buyer) *Account {
	return &Account{
		ID:           b.BuyerID,
		Name:         b.Name,
		Email:        b.Email,
		PasswordHash: b.PasswordHash,
		Role:         RoleBuyer,
		Buyer:        b,
	}
}

func SellerAccount(s *Seller) *Account {
	return &Account{
		ID:           s.SellerID,
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		Role:         RoleSeller,
		Seller:       s,
	}
}

// NewAccount carries the fields collected by registration. PhoneNumber and
// Country are only meaningful for sellers.
type NewAccount struct {
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Country      string
}
