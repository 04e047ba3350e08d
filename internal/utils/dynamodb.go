package utils

import (
	"context"
	"weather-assistant/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDbAPI defines the DynamoDB operations needed by our application
type DynamoDbAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// UserPreferenceRepository defines per-user preference operations
type UserPreferenceRepository interface {
	// SetLanguage creates or replaces the user's record in a single write.
	SetLanguage(ctx context.Context, userID, language string) error
	// GetLanguage returns nil when the user has no record.
	GetLanguage(ctx context.Context, userID string) (*models.UserPreference, error)
}
