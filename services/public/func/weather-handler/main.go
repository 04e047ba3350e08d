package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"weather-assistant/internal/repository"
	"weather-assistant/internal/utils"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	SEVERITY    = "severity"
	MESSAGE     = "message"
	TIMESTAMP   = "timestamp"
	COMPONENT   = "component"
	SERVICENAME = "weather-handler"

	defaultUserDBPath  = "users.db"
	defaultHTTPTimeout = 10 * time.Second
)

type EnvVars struct {
	channelSecret      string
	channelToken       string
	wundergroundAPIKey string
	wundergroundPWSID  string
	userTableName      string
	userDBPath         string
	httpTimeout        time.Duration
}

func getEnvironmentVariables() (envVars *EnvVars, err error) {
	channelSecret := os.Getenv("CHANNEL_SECRET")
	if channelSecret == "" {
		return nil, errors.New("CHANNEL_SECRET is not set")
	}

	channelToken := os.Getenv("CHANNEL_TOKEN")
	if channelToken == "" {
		return nil, errors.New("CHANNEL_TOKEN is not set")
	}

	wundergroundAPIKey := os.Getenv("WUNDERGROUND_API_KEY")
	if wundergroundAPIKey == "" {
		return nil, errors.New("WUNDERGROUND_API_KEY is not set")
	}

	wundergroundPWSID := os.Getenv("WUNDERGROUND_PWS_ID")
	if wundergroundPWSID == "" {
		return nil, errors.New("WUNDERGROUND_PWS_ID is not set")
	}

	// USER_TABLE_NAME selects DynamoDB, otherwise preferences live in a SQLite file.
	userTableName := os.Getenv("USER_TABLE_NAME")

	userDBPath := os.Getenv("USER_DB_PATH")
	if userDBPath == "" {
		userDBPath = defaultUserDBPath
	}

	httpTimeout := defaultHTTPTimeout
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		httpTimeout, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
	}

	return &EnvVars{
		channelSecret:      channelSecret,
		channelToken:       channelToken,
		wundergroundAPIKey: wundergroundAPIKey,
		wundergroundPWSID:  wundergroundPWSID,
		userTableName:      userTableName,
		userDBPath:         userDBPath,
		httpTimeout:        httpTimeout,
	}, nil
}

func newUserPreferenceRepository(logger *logrus.Entry, envVars *EnvVars) (utils.UserPreferenceRepository, error) {
	if envVars.userTableName == "" {
		logger.WithField("path", envVars.userDBPath).Info("Using SQLite user preference store")
		return repository.NewSQLiteUserPreferenceRepository(logger, envVars.userDBPath)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	dynamodbClient := dynamodb.NewFromConfig(cfg)

	logger.WithField("table", envVars.userTableName).Info("Using DynamoDB user preference store")
	return repository.NewUserPreferenceRepository(logger, dynamodbClient, envVars.userTableName), nil
}

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  TIMESTAMP,
			logrus.FieldKeyLevel: SEVERITY,
			logrus.FieldKeyMsg:   MESSAGE,
		},
	})
	logger := logrus.WithField(COMPONENT, SERVICENAME)

	if err := godotenv.Load(); err != nil {
		logger.WithError(err).Debug("No .env file loaded")
	}

	envVars, err := getEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Error("Failed to get environment variables")
		panic(err)
	}

	linebotClient, err := utils.NewLineBotClient(envVars.channelSecret, envVars.channelToken)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize LINE Bot")
		panic(err)
	}

	weatherClient, err := utils.NewWundergroundClient(logger, envVars.wundergroundAPIKey, envVars.wundergroundPWSID,
		utils.WithHTTPClient(&http.Client{Timeout: envVars.httpTimeout}))
	if err != nil {
		logger.WithError(err).Error("Failed to initialize weather client")
		panic(err)
	}

	userPreferenceRepo, err := newUserPreferenceRepository(logger, envVars)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize user preference store")
		panic(err)
	}

	messages, err := utils.LoadMessages()
	if err != nil {
		logger.WithError(err).Error("Failed to load bot messages")
		panic(err)
	}

	handler, err := NewHandler(logger, linebotClient, weatherClient, userPreferenceRepo, messages)
	if err != nil {
		logger.WithError(err).Error("Failed to create handler")
		panic(err)
	}

	lambda.Start(handler.EventHandler)
}
