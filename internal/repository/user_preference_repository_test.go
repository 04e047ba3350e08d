package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamoDB keeps items keyed by userId, PutItem replaces like the real table does.
type fakeDynamoDB struct {
	items  map[string]map[string]types.AttributeValue
	putErr error
	getErr error
}

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{items: map[string]map[string]types.AttributeValue{}}
}

func keyOf(item map[string]types.AttributeValue) string {
	if attr, ok := item["userId"].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}
	return ""
}

func (f *fakeDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(params.Key)]}, nil
}

func (f *fakeDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.items[keyOf(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoSetLanguage(t *testing.T) {
	ctx := context.Background()

	t.Run("Insert then update", func(t *testing.T) {
		db := newFakeDynamoDB()
		repo := NewUserPreferenceRepository(testLogger(), db, "user-preferences")

		if err := repo.SetLanguage(ctx, "U123", "en"); err != nil {
			t.Fatalf("SetLanguage: %v", err)
		}
		if err := repo.SetLanguage(ctx, "U123", "ja"); err != nil {
			t.Fatalf("SetLanguage: %v", err)
		}

		if len(db.items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(db.items))
		}
		item := db.items["U123"]
		if attr, ok := item["language"].(*types.AttributeValueMemberS); !ok || attr.Value != "ja" {
			t.Errorf("unexpected language attribute: %#v", item["language"])
		}
		if len(item) != 2 {
			t.Errorf("expected only userId and language attributes, got %d", len(item))
		}

		pref, err := repo.GetLanguage(ctx, "U123")
		if err != nil {
			t.Fatalf("GetLanguage: %v", err)
		}
		if pref == nil || pref.UserID != "U123" || pref.Language != "ja" {
			t.Errorf("GetLanguage: got %+v", pref)
		}
	})

	t.Run("Put failure", func(t *testing.T) {
		db := newFakeDynamoDB()
		db.putErr = errors.New("throttled")
		repo := NewUserPreferenceRepository(testLogger(), db, "user-preferences")

		err := repo.SetLanguage(ctx, "U123", "en")
		if !errors.Is(err, db.putErr) {
			t.Errorf("expected wrapped put error, got %v", err)
		}
	})
}

func TestDynamoGetLanguage(t *testing.T) {
	ctx := context.Background()

	t.Run("Not found", func(t *testing.T) {
		repo := NewUserPreferenceRepository(testLogger(), newFakeDynamoDB(), "user-preferences")

		pref, err := repo.GetLanguage(ctx, "U404")
		if err != nil {
			t.Fatalf("GetLanguage: %v", err)
		}
		if pref != nil {
			t.Errorf("expected nil, got %+v", pref)
		}
	})

	t.Run("Get failure", func(t *testing.T) {
		db := newFakeDynamoDB()
		db.getErr = errors.New("unavailable")
		repo := NewUserPreferenceRepository(testLogger(), db, "user-preferences")

		if _, err := repo.GetLanguage(ctx, "U123"); !errors.Is(err, db.getErr) {
			t.Errorf("expected wrapped get error, got %v", err)
		}
	})
}
