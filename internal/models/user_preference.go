package models

type UserPreference struct {
	UserID   string `json:"userId" dynamodbav:"userId"`
	Language string `json:"language" dynamodbav:"language"` // two-letter code, e.g. "en"
}
