package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-shop-auth/internal/domain"
)

// table holds the item-level operations shared by the account repos.
type table struct {
	client api
	name   string
	pk     string
}

func (t table) put(ctx context.Context, v interface{}) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal %s item: %w", t.name, err)
	}
	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(t.name),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": t.pk},
	})
	return translateError(err)
}

func (t table) get(ctx context.Context, id string, out interface{}) error {
	res, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.name),
		Key:       strKey(t.pk, id),
	})
	if err != nil {
		return err
	}
	if res.Item == nil {
		return fmt.Errorf("%s %s: %w", t.name, id, domain.ErrNotFound)
	}
	return attributevalue.UnmarshalMap(res.Item, out)
}

// queryOne returns the first item of a GSI whose hash key attr equals value.
func (t table) queryOne(ctx context.Context, index, attr, value string, out interface{}) error {
	res, err := t.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(t.name),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return err
	}
	if len(res.Items) == 0 {
		return fmt.Errorf("%s with %s %s: %w", t.name, attr, value, domain.ErrNotFound)
	}
	return attributevalue.UnmarshalMap(res.Items[0], out)
}

func (t table) update(ctx context.Context, id string, updates map[string]interface{}) error {
	fields := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		fields[k] = v
	}
	fields[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(fields)
	if err != nil {
		return err
	}
	ue.Names["#pk"] = t.pk
	_, err = t.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.name),
		Key:                       strKey(t.pk, id),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("update %s %s: %w", t.name, id, domain.ErrNotFound)
	}
	return err
}

// BuyerRepo provides typed DynamoDB operations for the buyers table.
type BuyerRepo struct{ t table }

func NewBuyerRepo(client api, tableName string) *BuyerRepo {
	return &BuyerRepo{t: table{client: client, name: tableName, pk: fieldBuyerID}}
}

func (r *BuyerRepo) Put(ctx context.Context, b *domain.Buyer) error { return r.t.put(ctx, b) }

func (r *BuyerRepo) Get(ctx context.Context, buyerID string) (*domain.Buyer, error) {
	var b domain.Buyer
	if err := r.t.get(ctx, buyerID, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BuyerRepo) GetByEmail(ctx context.Context, email string) (*domain.Buyer, error) {
	var b domain.Buyer
	if err := r.t.queryOne(ctx, emailIndex, fieldEmail, email, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BuyerRepo) Update(ctx context.Context, buyerID string, updates map[string]interface{}) error {
	return r.t.update(ctx, buyerID, updates)
}

// SellerRepo reads and writes sellers. Shops live in their own table, keyed
// by shop_id with a seller_id GSI.
type SellerRepo struct {
	t     table
	shops table
}

func NewSellerRepo(client api, sellersTable, shopsTable string) *SellerRepo {
	return &SellerRepo{
		t:     table{client: client, name: sellersTable, pk: fieldSellerID},
		shops: table{client: client, name: shopsTable, pk: fieldShopID},
	}
}

func (r *SellerRepo) Put(ctx context.Context, s *domain.Seller) error { return r.t.put(ctx, s) }

func (r *SellerRepo) Get(ctx context.Context, sellerID string, withShop bool) (*domain.Seller, error) {
	var s domain.Seller
	if err := r.t.get(ctx, sellerID, &s); err != nil {
		return nil, err
	}
	if withShop {
		shop, err := r.shopOf(ctx, sellerID)
		if err != nil {
			return nil, err
		}
		s.Shop = shop
	}
	return &s, nil
}

func (r *SellerRepo) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	var s domain.Seller
	if err := r.t.queryOne(ctx, emailIndex, fieldEmail, email, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SellerRepo) Update(ctx context.Context, sellerID string, updates map[string]interface{}) error {
	return r.t.update(ctx, sellerID, updates)
}

// shopOf returns nil without error when the seller has not created a shop.
func (r *SellerRepo) shopOf(ctx context.Context, sellerID string) (*domain.Shop, error) {
	var shop domain.Shop
	err := r.shops.queryOne(ctx, sellerIDIndex, fieldSellerID, sellerID, &shop)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}
