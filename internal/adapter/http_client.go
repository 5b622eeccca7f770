// Package adapter contains outbound clients for the telemetry API. It is
// used by the ingestctl command to submit and list readings from the device
// side.
package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/greenhouse-iot/telemetry-api/models"
)

var (
	ErrUnauthorized = errors.New("client unauthorized")
	ErrForbidden    = errors.New("token rejected")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrBadRequest   = errors.New("request rejected by validation")
)

type HTTPClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// APIClient is the device-side view of the telemetry API.
type APIClient interface {
	Health(ctx context.Context) (models.HealthResponse, error)
	SubmitReading(ctx context.Context, req models.CreateReadingRequest) (models.Reading, error)
	ListReadings(ctx context.Context, filter models.ReadingFilter) (models.ReadingsPage, error)
}

type apiClient struct {
	client *resty.Client
}

func NewAPIClient(cfg HTTPClientConfig) APIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8000"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.Token)

	return &apiClient{client: cli}
}

func (c *apiClient) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&health).
		Get("/api/v1/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return health, nil
}

func (c *apiClient) SubmitReading(ctx context.Context, req models.CreateReadingRequest) (models.Reading, error) {
	var reading models.Reading

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&reading).
		Post("/api/v1/readings")
	if err != nil {
		return models.Reading{}, fmt.Errorf("submit reading request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Reading{}, err
	}

	return reading, nil
}

func (c *apiClient) ListReadings(ctx context.Context, filter models.ReadingFilter) (models.ReadingsPage, error) {
	var page models.ReadingsPage

	request := c.client.R().
		SetContext(ctx).
		SetResult(&page).
		SetQueryParam("limit", strconv.Itoa(filter.Limit)).
		SetQueryParam("offset", strconv.Itoa(filter.Offset))

	if filter.DeviceID != "" {
		request.SetQueryParam("device_id", filter.DeviceID)
	}
	if filter.Sensor != "" {
		request.SetQueryParam("sensor", filter.Sensor)
	}

	resp, err := request.Get("/api/v1/readings")
	if err != nil {
		return models.ReadingsPage{}, fmt.Errorf("list readings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ReadingsPage{}, err
	}

	return page, nil
}

// mapHTTPError converts non-success responses into sentinel errors with the
// server's detail message attached when one is present.
func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	detail := resp.Status()
	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Detail != "" {
		detail = body.Detail
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, detail)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, detail)
	case http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: %s", ErrBadRequest, detail)
	default:
		return fmt.Errorf("server returned %s", detail)
	}
}
