package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/cloudpeak/authgate/internal/models"
	"github.com/cloudpeak/authgate/internal/repository"
)

var _ repository.UserRepository = (*DynamoUserRepository)(nil)

// DynamoUserRepository stores user records in a DynamoDB table keyed by email.
type DynamoUserRepository struct {
	client *dynamodb.Client
	table  string
}

// NewDynamoUserRepository creates a new DynamoUserRepository.
func NewDynamoUserRepository(client *dynamodb.Client, table string) *DynamoUserRepository {
	return &DynamoUserRepository{client: client, table: table}
}

func (r *DynamoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("marshal user %q: %w", user.Email, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists (email)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return repository.ErrUserExists
		}
		return fmt.Errorf("put user %q: %w", user.Email, err)
	}
	return nil
}

func (r *DynamoUserRepository) GetUser(ctx context.Context, email string) (*models.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", email, err)
	}
	if len(out.Item) == 0 {
		return nil, repository.ErrUserNotFound
	}

	user := new(models.User)
	if err := attributevalue.UnmarshalMap(out.Item, user); err != nil {
		return nil, fmt.Errorf("unmarshal user %q: %w", email, err)
	}
	return user, nil
}

func (r *DynamoUserRepository) MarkVerified(ctx context.Context, email, verifyToken string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
		UpdateExpression:    aws.String("SET verified = :verified"),
		ConditionExpression: aws.String("attribute_exists (email) AND verifyToken = :token"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":verified": &types.AttributeValueMemberBOOL{Value: true},
			":token":    &types.AttributeValueMemberS{Value: verifyToken},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return repository.ErrVerifyTokenMismatch
		}
		return fmt.Errorf("mark user %q verified: %w", email, err)
	}
	return nil
}
