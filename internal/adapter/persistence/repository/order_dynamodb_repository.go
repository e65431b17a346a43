package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName = "orders"
	orderUserIndexName     = "user_id-index"
)

type orderItemRecord struct {
	ID             string `dynamodbav:"id"`
	SKU            string `dynamodbav:"sku"`
	DisplayName    string `dynamodbav:"display_name"`
	Quantity       int    `dynamodbav:"quantity"`
	UnitPriceCents int64  `dynamodbav:"unit_price_cents"`
	MetadataJSON   string `dynamodbav:"metadata_json,omitempty"`
}

type orderRecord struct {
	ID            string            `dynamodbav:"id"`
	UserID        string            `dynamodbav:"user_id"`
	Status        string            `dynamodbav:"status"`
	Currency      string            `dynamodbav:"currency"`
	Notes         string            `dynamodbav:"notes,omitempty"`
	Items         []orderItemRecord `dynamodbav:"items"`
	SubtotalCents int64             `dynamodbav:"subtotal_cents"`
	TaxCents      int64             `dynamodbav:"tax_cents"`
	TotalCents    int64             `dynamodbav:"total_cents"`
	PaymentID     string            `dynamodbav:"payment_id,omitempty"`
	PaymentStatus string            `dynamodbav:"payment_status,omitempty"`
	PaymentRaw    string            `dynamodbav:"payment_raw,omitempty"`
	PlacedAt      string            `dynamodbav:"placed_at"`
	CreatedAt     string            `dynamodbav:"created_at"`
	UpdatedAt     string            `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI1 (user_id-index): user_id
type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderRecord(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var rec orderRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.Order{}, err
	}
	return fromOrderRecord(rec), nil
}

func (r *OrderDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(orderUserIndexName),
		KeyConditionExpression: aws.String("#user_id = :user_id"),
		ExpressionAttributeNames: map[string]string{
			"#user_id": "user_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalOrders(out.Items)
}

func (r *OrderDynamoRepository) ListAll(ctx context.Context) ([]entities.Order, error) {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return unmarshalOrders(items)
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: nowRFC3339()},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}

	var rec orderRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return entities.Order{}, err
	}
	return fromOrderRecord(rec), nil
}

func unmarshalOrders(items []map[string]types.AttributeValue) ([]entities.Order, error) {
	orders := make([]entities.Order, 0, len(items))
	for _, item := range items {
		var rec orderRecord
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return nil, err
		}
		orders = append(orders, fromOrderRecord(rec))
	}
	// Newest first, like the order-history page expects.
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func toOrderRecord(o entities.Order) orderRecord {
	items := make([]orderItemRecord, len(o.Items))
	for i, it := range o.Items {
		rec := orderItemRecord{
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
	return orderRecord{
		ID:            o.ID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		Currency:      o.Currency,
		Notes:         o.Notes,
		Items:         items,
		SubtotalCents: o.SubtotalCents,
		TaxCents:      o.TaxCents,
		TotalCents:    o.TotalCents,
		PaymentID:     o.PaymentID,
		PaymentStatus: o.PaymentStatus,
		PaymentRaw:    string(o.PaymentPayloadRaw),
		PlacedAt:      o.PlacedAt.UTC().Format(time.RFC3339Nano),
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     o.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromOrderRecord(rec orderRecord) entities.Order {
	items := make([]entities.OrderItem, len(rec.Items))
	for i, it := range rec.Items {
		item := entities.OrderItem{
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
	placedAt, _ := time.Parse(time.RFC3339Nano, rec.PlacedAt)
	createdAt, _ := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, rec.UpdatedAt)
	return entities.Order{
		ID:                rec.ID,
		UserID:            rec.UserID,
		Status:            entities.OrderStatus(rec.Status),
		Currency:          rec.Currency,
		Notes:             rec.Notes,
		Items:             items,
		SubtotalCents:     rec.SubtotalCents,
		TaxCents:          rec.TaxCents,
		TotalCents:        rec.TotalCents,
		PaymentID:         rec.PaymentID,
		PaymentStatus:     rec.PaymentStatus,
		PaymentPayloadRaw: rawOrNil(rec.PaymentRaw),
		PlacedAt:          placedAt,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}

func rawOrNil(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}
