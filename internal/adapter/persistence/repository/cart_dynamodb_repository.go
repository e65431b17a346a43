package repository

import (
	"context"
	"encoding/json"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCartsTableName = "carts"

type cartItemRecord struct {
	ID             string `dynamodbav:"id"`
	SKU            string `dynamodbav:"sku"`
	DisplayName    string `dynamodbav:"display_name"`
	Quantity       int    `dynamodbav:"quantity"`
	UnitPriceCents int64  `dynamodbav:"unit_price_cents"`
	MetadataJSON   string `dynamodbav:"metadata_json,omitempty"`
}

type cartRecord struct {
	UserID    string           `dynamodbav:"user_id"`
	ID        string           `dynamodbav:"id"`
	Items     []cartItemRecord `dynamodbav:"items"`
	UpdatedAt string           `dynamodbav:"updated_at"`
}

// CartDynamoRepository persists Cart aggregates in DynamoDB.
//
// Table requirements:
//   - PK: user_id (string) — one cart per user, written whole.
//
// Item metadata is free-form JSON (estimate metrics), kept as a serialized
// string attribute rather than a nested document.
type CartDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICartRepository = (*CartDynamoRepository)(nil)

func NewCartDynamoRepository(ddb *dynamodb.Client) *CartDynamoRepository {
	return &CartDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CARTS_TABLE", defaultCartsTableName),
	}
}

func (r *CartDynamoRepository) GetByUserID(ctx context.Context, userID string) (entities.Cart, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Cart{}, err
	}
	if len(out.Item) == 0 {
		return entities.Cart{}, nil
	}

	var rec cartRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.Cart{}, err
	}
	return fromCartRecord(rec), nil
}

func (r *CartDynamoRepository) Save(ctx context.Context, c entities.Cart) (entities.Cart, error) {
	av, err := attributevalue.MarshalMap(toCartRecord(c))
	if err != nil {
		return entities.Cart{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Cart{}, err
	}
	return c, nil
}

func toCartRecord(c entities.Cart) cartRecord {
	items := make([]cartItemRecord, len(c.Items))
	for i, it := range c.Items {
		rec := cartItemRecord{
			ID:             it.ID,
			SKU:            it.SKU,
			DisplayName:    it.DisplayName,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		}
		if it.Metadata != nil {
			if b, err := json.Marshal(it.Metadata); err == nil {
				rec.MetadataJSON = string(b)
			}
		}
		items[i] = rec
	}
	return cartRecord{
		UserID:    c.UserID,
		ID:        c.ID,
		Items:     items,
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromCartRecord(rec cartRecord) entities.Cart {
	items := make([]entities.CartItem, len(rec.Items))
	for i, it := range rec.Items {
		item := entities.CartItem{
			ID:             it.ID,
			SKU:            it.SKU,
			DisplayName:    it.DisplayName,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		}
		if it.MetadataJSON != "" {
			var meta map[string]any
			if err := json.Unmarshal([]byte(it.MetadataJSON), &meta); err == nil {
				item.Metadata = meta
			}
		}
		items[i] = item
	}
	updatedAt, _ := time.Parse(time.RFC3339Nano, rec.UpdatedAt)
	return entities.Cart{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Items:     items,
		UpdatedAt: updatedAt,
	}
}
