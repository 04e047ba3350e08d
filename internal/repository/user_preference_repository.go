package repository

import (
	"context"
	"fmt"
	"weather-assistant/internal/models"
	"weather-assistant/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

type userPreferenceRepository struct {
	logger    *logrus.Entry
	dynamodb  utils.DynamoDbAPI
	tableName string
}

func NewUserPreferenceRepository(logger *logrus.Entry, dynamodb utils.DynamoDbAPI, tableName string) utils.UserPreferenceRepository {
	return &userPreferenceRepository{
		logger:    logger,
		dynamodb:  dynamodb,
		tableName: tableName,
	}
}

// SetLanguage relies on PutItem replacing the item with the same userId key,
// so there is never more than one record per user.
func (r *userPreferenceRepository) SetLanguage(ctx context.Context, userID, language string) error {
	item, err := attributevalue.MarshalMap(models.UserPreference{
		UserID:   userID,
		Language: language,
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to marshal user preference")
		return fmt.Errorf("failed to marshal user preference: %w", err)
	}

	_, err = r.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to save user preference to DynamoDB")
		return fmt.Errorf("failed to save user preference: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"userId":   userID,
		"language": language,
	}).Info("Successfully saved user preference")

	return nil
}

func (r *userPreferenceRepository) GetLanguage(ctx context.Context, userID string) (*models.UserPreference, error) {
	result, err := r.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to get user preference from DynamoDB")
		return nil, fmt.Errorf("failed to get user preference: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var pref models.UserPreference
	if err := attributevalue.UnmarshalMap(result.Item, &pref); err != nil {
		r.logger.WithError(err).Error("Failed to unmarshal user preference")
		return nil, fmt.Errorf("failed to unmarshal user preference: %w", err)
	}
	pref.UserID = userID

	return &pref, nil
}
