package repository

import (
	"context"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultUsersTableName = "users"
	emailIndexName        = "email-index"
)

type userItem struct {
	ID                  string `dynamodbav:"id"`
	Email               string `dynamodbav:"email"`
	Name                string `dynamodbav:"name"`
	Role                string `dynamodbav:"role"`
	AvatarURL           string `dynamodbav:"avatar_url,omitempty"`
	PasswordHash        string `dynamodbav:"password_hash"`
	ResetTokenHash      string `dynamodbav:"reset_token_hash,omitempty"`
	ResetTokenExpiresAt string `dynamodbav:"reset_token_expires_at,omitempty"`
	CreatedAt           string `dynamodbav:"created_at"`
	UpdatedAt           string `dynamodbav:"updated_at"`
}

// UserDynamoRepository persists User entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI1 (email-index): email
type UserDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb *dynamodb.Client) *UserDynamoRepository {
	return &UserDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("USERS_TABLE", defaultUsersTableName),
	}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	av, err := attributevalue.MarshalMap(toUserItem(u))
	if err != nil {
		return entities.User{}, err
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
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(emailIndexName),
		KeyConditionExpression: aws.String("#email = :email"),
		ExpressionAttributeNames: map[string]string{
			"#email": "email",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Items) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.update(ctx, id,
		"SET #password_hash = :password_hash, #updated_at = :updated_at",
		map[string]string{
			"#password_hash": "password_hash",
			"#updated_at":    "updated_at",
		},
		map[string]types.AttributeValue{
			":password_hash": &types.AttributeValueMemberS{Value: passwordHash},
			":updated_at":    &types.AttributeValueMemberS{Value: nowRFC3339()},
		},
	)
}

func (r *UserDynamoRepository) SetAvatar(ctx context.Context, id, avatarURL string) error {
	return r.update(ctx, id,
		"SET #avatar_url = :avatar_url, #updated_at = :updated_at",
		map[string]string{
			"#avatar_url": "avatar_url",
			"#updated_at": "updated_at",
		},
		map[string]types.AttributeValue{
			":avatar_url": &types.AttributeValueMemberS{Value: avatarURL},
			":updated_at": &types.AttributeValueMemberS{Value: nowRFC3339()},
		},
	)
}

func (r *UserDynamoRepository) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	return r.update(ctx, id,
		"SET #reset_token_hash = :hash, #reset_token_expires_at = :expires, #updated_at = :updated_at",
		map[string]string{
			"#reset_token_hash":       "reset_token_hash",
			"#reset_token_expires_at": "reset_token_expires_at",
			"#updated_at":             "updated_at",
		},
		map[string]types.AttributeValue{
			":hash":       &types.AttributeValueMemberS{Value: tokenHash},
			":expires":    &types.AttributeValueMemberS{Value: expiresAt.UTC().Format(time.RFC3339Nano)},
			":updated_at": &types.AttributeValueMemberS{Value: nowRFC3339()},
		},
	)
}

func (r *UserDynamoRepository) ClearResetToken(ctx context.Context, id string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("REMOVE #reset_token_hash, #reset_token_expires_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":                     "id",
			"#reset_token_hash":       "reset_token_hash",
			"#reset_token_expires_at": "reset_token_expires_at",
		},
	})
	return err
}

func (r *UserDynamoRepository) update(ctx context.Context, id, expr string, names map[string]string, values map[string]types.AttributeValue) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ExpressionAttributeValues: values,
	})
	return err
}

func toUserItem(u entities.User) userItem {
	it := userItem{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           string(u.Role),
		AvatarURL:      u.AvatarURL,
		PasswordHash:   u.PasswordHash,
		ResetTokenHash: u.ResetTokenHash,
		CreatedAt:      u.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if !u.ResetTokenExpiresAt.IsZero() {
		it.ResetTokenExpiresAt = u.ResetTokenExpiresAt.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromUserItem(it userItem) entities.User {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	resetExpires, _ := time.Parse(time.RFC3339Nano, it.ResetTokenExpiresAt)
	return entities.User{
		ID:                  it.ID,
		Email:               it.Email,
		Name:                it.Name,
		Role:                entities.UserRole(it.Role),
		AvatarURL:           it.AvatarURL,
		PasswordHash:        it.PasswordHash,
		ResetTokenHash:      it.ResetTokenHash,
		ResetTokenExpiresAt: resetExpires,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}
}
