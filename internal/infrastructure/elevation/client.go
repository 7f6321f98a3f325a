package elevation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coverage-microservice/internal/config"
	"github.com/coverage-microservice/internal/domain"
	"github.com/coverage-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient creates a client for the batched elevation lookup API
func NewClient(cfg *config.ElevationConfig, logger *zap.Logger) repository.ElevationRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// GetElevations resolves elevations for a batch of points in request order
func (c *client) GetElevations(ctx context.Context, points []domain.GeoPoint) ([]float64, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("points cannot be empty")
	}

	// The API takes pipe-separated "lat,lng" pairs
	locations := make([]string, len(points))
	for i, p := range points {
		locations[i] = fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lng)
	}

	reqURL := fmt.Sprintf("%s/json?locations=%s&key=%s",
		c.baseURL,
		url.QueryEscape(strings.Join(locations, "|")),
		c.apiKey,
	)

	c.logger.Debug("Calling elevation API",
		zap.Int("points_count", len(points)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Elevation API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("elevation API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var elevResp domain.ElevationResponse
	if err := json.NewDecoder(resp.Body).Decode(&elevResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if elevResp.Status != "OK" {
		c.logger.Error("Elevation API returned non-OK status",
			zap.String("status", elevResp.Status))
		return nil, fmt.Errorf("elevation API returned status: %s", elevResp.Status)
	}

	// A short or long result list would silently misalign points,
	// so treat it as a full-batch failure
	if len(elevResp.Results) != len(points) {
		c.logger.Error("Elevation API returned incomplete results",
			zap.Int("expected", len(points)),
			zap.Int("got", len(elevResp.Results)))
		return nil, fmt.Errorf("elevation API returned %d results for %d points",
			len(elevResp.Results), len(points))
	}

	elevations := make([]float64, len(points))
	for i, result := range elevResp.Results {
		elevations[i] = result.Elevation
	}

	c.logger.Debug("Elevation API call successful",
		zap.Int("results", len(elevations)))

	return elevations, nil
}
