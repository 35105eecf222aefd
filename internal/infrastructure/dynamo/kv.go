package dynamo

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// KVStore is an expiring key-value store on a DynamoDB table with TTL enabled
// on expires_at. DynamoDB deletes expired items lazily, so reads also compare
// expires_at against the clock.
// PK: state_key
type KVStore struct {
	client    api
	tableName string
	now       func() time.Time
}

func NewKVStore(client api, tableName string) *KVStore {
	return &KVStore{client: client, tableName: tableName, now: time.Now}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            strKey(fieldStateKey, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, err
	}
	if out.Item == nil {
		return "", false, nil
	}
	exp, ok := out.Item[fieldExpiresAt].(*types.AttributeValueMemberN)
	if !ok {
		return "", false, nil
	}
	expiresAt, err := strconv.ParseInt(exp.Value, 10, 64)
	if err != nil || expiresAt <= s.now().Unix() {
		return "", false, nil
	}
	v, ok := out.Item[fieldValue].(*types.AttributeValueMemberS)
	if !ok {
		return "", false, nil
	}
	return v.Value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	expiresAt := s.now().Add(ttl).Unix()
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			fieldStateKey:  &types.AttributeValueMemberS{Value: key},
			fieldValue:     &types.AttributeValueMemberS{Value: value},
			fieldExpiresAt: &types.AttributeValueMemberN{Value: strconv.FormatInt(expiresAt, 10)},
		},
	})
	return err
}

func (s *KVStore) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(s.tableName),
			Key:       strKey(fieldStateKey, k),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
