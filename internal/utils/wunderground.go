package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"weather-assistant/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const defaultWundergroundBaseURL = "https://api.weather.com"

var (
	ErrProviderStatus = errors.New("unexpected status code from weather provider")
	ErrCircuitOpen    = errors.New("weather provider circuit breaker open")
)

type WundergroundAPI interface {
	// Current returns the latest observation of the configured station.
	// A station without a current observation yields an empty Observation, not an error.
	Current(ctx context.Context) (*models.Observation, error)
}

type WundergroundClient struct {
	logger     *logrus.Entry
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	baseURL    string
	apiKey     string
	stationID  string
}

type WundergroundOption func(*WundergroundClient)

// WithBaseURL points the client at another host, used by tests.
func WithBaseURL(baseURL string) WundergroundOption {
	return func(c *WundergroundClient) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) WundergroundOption {
	return func(c *WundergroundClient) {
		c.httpClient = httpClient
	}
}

func NewWundergroundClient(logger *logrus.Entry, apiKey, stationID string, opts ...WundergroundOption) (WundergroundAPI, error) {
	if apiKey == "" {
		return nil, errors.New("wunderground api key is empty")
	}
	if stationID == "" {
		return nil, errors.New("wunderground station id is empty")
	}

	c := &WundergroundClient{
		logger:     logger,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultWundergroundBaseURL,
		apiKey:     apiKey,
		stationID:  stationID,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Trips after 3 consecutive failures; nothing is retried.
	c.circuit = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "wunderground",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return c, nil
}

func (c *WundergroundClient) Current(ctx context.Context) (*models.Observation, error) {
	values := url.Values{}
	values.Set("stationId", c.stationID)
	values.Set("format", "json")
	values.Set("units", "s")
	values.Set("numericPrecision", "decimal")
	values.Set("apiKey", c.apiKey)

	endpoint := fmt.Sprintf("%s/v2/pws/observations/current?%s", c.baseURL, values.Encode())

	result, err := c.circuit.Execute(func() (interface{}, error) {
		return c.fetch(ctx, endpoint)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, err
	}

	obs, ok := result.(*models.Observation)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return obs, nil
}

func (c *WundergroundClient) fetch(ctx context.Context, endpoint string) (*models.Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	// The provider answers 204 when the station has not reported recently.
	if resp.StatusCode == http.StatusNoContent {
		c.logger.WithField("stationId", c.stationID).Warn("No current observation for station")
		return &models.Observation{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrProviderStatus, resp.StatusCode)
	}

	var payload models.CurrentConditionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error unmarshalling weather API response: %w", err)
	}

	if len(payload.Observations) == 0 {
		c.logger.WithField("stationId", c.stationID).Warn("Weather response contained no observations")
		return &models.Observation{}, nil
	}

	return &payload.Observations[0], nil
}
