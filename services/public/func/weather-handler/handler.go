package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"weather-assistant/internal/utils"

	"github.com/aws/aws-lambda-go/events"
	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/sirupsen/logrus"
)

const (
	commandWeather  = "/weather"
	commandLanguage = "/language"
	commandSettings = "/settings"
	commandHelp     = "/help"
)

type Handler struct {
	logger             *logrus.Entry
	linebotClient      utils.LinebotAPI
	weatherClient      utils.WundergroundAPI
	userPreferenceRepo utils.UserPreferenceRepository
	messages           *utils.Messages
}

func NewHandler(logger *logrus.Entry, linebotClient utils.LinebotAPI, weatherClient utils.WundergroundAPI, userPreferenceRepo utils.UserPreferenceRepository, messages *utils.Messages) (*Handler, error) {
	if linebotClient == nil || weatherClient == nil || userPreferenceRepo == nil || messages == nil {
		return nil, fmt.Errorf("handler dependencies must not be nil")
	}
	return &Handler{
		logger:             logger,
		linebotClient:      linebotClient,
		weatherClient:      weatherClient,
		userPreferenceRepo: userPreferenceRepo,
		messages:           messages,
	}, nil
}

func (h *Handler) EventHandler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	messageEvents, err := h.RequestParser(request)
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse request")
		return events.APIGatewayProxyResponse{
			StatusCode: 400,
			Body:       "Bad Request",
		}, nil
	}

	for _, event := range messageEvents {
		userID := ""
		if event.Source != nil {
			userID = event.Source.UserID
		}
		logger := h.logger.WithFields(logrus.Fields{
			"event_type": event.Type,
			"user_id":    userID,
		})
		logger.Info("event handling")

		if event.Type == linebot.EventTypeFollow {
			h.reply(event.ReplyToken, h.messages.Help)
			continue
		}

		if event.Type != linebot.EventTypeMessage {
			continue
		}
		message, ok := event.Message.(*linebot.TextMessage)
		if !ok {
			continue
		}
		logger.WithField("text", message.Text).Info("Received text message")

		if err := h.handleCommand(ctx, event.ReplyToken, userID, message.Text); err != nil {
			logger.WithError(err).Error("Failed to handle command")
			return events.APIGatewayProxyResponse{
				StatusCode: 500,
				Body:       "Internal server error",
			}, nil
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Body:       "OK",
	}, nil
}

// handleCommand dispatches one text message. Plain text that is not a command is ignored.
func (h *Handler) handleCommand(ctx context.Context, replyToken, userID, text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case commandWeather:
		return h.handleWeather(ctx, replyToken)
	case commandLanguage:
		code := ""
		if len(fields) > 1 {
			code = fields[1]
		}
		return h.handleSetLanguage(ctx, replyToken, userID, code)
	case commandSettings:
		return h.handleShowSettings(ctx, replyToken, userID)
	case commandHelp:
		h.reply(replyToken, h.messages.Help)
	default:
		h.reply(replyToken, h.messages.UnknownCommand)
	}
	return nil
}

func (h *Handler) handleWeather(ctx context.Context, replyToken string) error {
	h.logger.Info("weather command received")

	observation, err := h.weatherClient.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current observation: %w", err)
	}

	h.reply(replyToken, utils.FormatWeatherReport(observation))
	return nil
}

func (h *Handler) handleSetLanguage(ctx context.Context, replyToken, userID, code string) error {
	// Group and room members who have not shared their profile arrive without a user id.
	if userID == "" {
		h.logger.Warn("Language command without user id")
		h.reply(replyToken, h.messages.LanguageUnavailable)
		return nil
	}

	if err := utils.ValidateLanguageCode(code); err != nil {
		h.logger.WithError(err).WithField("userID", userID).Warn("Rejected language code")
		h.reply(replyToken, h.messages.InvalidLanguage)
		return nil
	}

	if err := h.userPreferenceRepo.SetLanguage(ctx, userID, code); err != nil {
		return fmt.Errorf("failed to set language: %w", err)
	}

	h.reply(replyToken, utils.WithLanguage(h.messages.LanguageSaved, code))
	return nil
}

func (h *Handler) handleShowSettings(ctx context.Context, replyToken, userID string) error {
	if userID == "" {
		h.logger.Warn("Settings command without user id")
		h.reply(replyToken, h.messages.LanguageUnavailable)
		return nil
	}

	pref, err := h.userPreferenceRepo.GetLanguage(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get language: %w", err)
	}

	if pref == nil {
		h.reply(replyToken, h.messages.SettingsEmpty)
		return nil
	}
	h.reply(replyToken, utils.WithLanguage(h.messages.Settings, pref.Language))
	return nil
}

func (h *Handler) reply(replyToken, message string) {
	if err := h.linebotClient.ReplyMessage(replyToken, message); err != nil {
		h.logger.WithError(err).Error("Failed to reply message")
	}
}

func (h *Handler) RequestParser(request events.APIGatewayProxyRequest) ([]*linebot.Event, error) {
	var bodyJSON interface{}
	if err := json.Unmarshal([]byte(request.Body), &bodyJSON); err != nil {
		h.logger.WithError(err).Error("Failed to parse JSON")
		return nil, err
	}
	h.logger.WithFields(logrus.Fields{
		"webhook_body": bodyJSON,
	}).Debug("Received LINE webhook")

	req, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(request.Body))
	if err != nil {
		return nil, err
	}

	req.Header = make(http.Header)
	for key, value := range request.Headers {
		req.Header.Set(key, value)
	}

	messageEvents, err := h.linebotClient.ParseRequest(req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse webhook request")
		return nil, err
	}

	return messageEvents, nil
}
