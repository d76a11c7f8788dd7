// Package routing estimates driving time between the depot and a customer
// address using an OSRM-compatible routing API.
package routing

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/linsamsir/pro-erp/internal/config"
	"github.com/linsamsir/pro-erp/internal/domain/models"
)

// Client exposes the travel-time estimation used when a job has no manual
// travel-minutes override.
type Client interface {
	EstimateTravelMinutes(ctx context.Context, from, to models.GeoPoint) (float64, error)
}

// OSRMClient is a resty-backed implementation of Client.
type OSRMClient struct {
	httpClient *resty.Client
}

// NewClient builds a routing API client using the provided configuration values.
func NewClient(cfg config.RoutingConfig) *OSRMClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &OSRMClient{httpClient: restyClient}
}

// routeResponse mirrors the successful OSRM route response.
type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

// apiError represents an OSRM error payload.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EstimateTravelMinutes returns the one-way driving duration in minutes.
func (c *OSRMClient) EstimateTravelMinutes(ctx context.Context, from, to models.GeoPoint) (float64, error) {
	if from.IsZero() || to.IsZero() {
		return 0, fmt.Errorf("both endpoints must carry coordinates")
	}

	result := new(routeResponse)
	apiErr := new(apiError)

	// OSRM takes lng,lat pairs.
	path := fmt.Sprintf("/route/v1/driving/%f,%f;%f,%f", from.Lng, from.Lat, to.Lng, to.Lat)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("overview", "false").
		SetResult(result).
		SetError(apiErr).
		Get(path)
	if err != nil {
		return 0, fmt.Errorf("request route: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Code
		}
		return 0, fmt.Errorf("routing api error: status=%d, message=%s", resp.StatusCode(), message)
	}

	if result.Code != "Ok" || len(result.Routes) == 0 {
		return 0, fmt.Errorf("no route found: code=%s", result.Code)
	}

	return result.Routes[0].Duration / 60, nil
}
