package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"calorielens/internal/domain"
)

// Config holds the client settings taken from the application config.
type Config struct {
	APIKey    string
	BaseURL   string
	UserAgent string
	PageSize  int
	Timeout   time.Duration
}

// Client handles communication with the USDA FoodData Central API. It is
// only constructed when an API key is configured; without a key the USDA
// tier is never queried.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	userAgent   string
	pageSize    int
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new USDA API client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	// USDA allows 1000 requests per hour
	// rate.Limit is requests per second, so 1000/3600 ≈ 0.278 requests/sec
	limiter := rate.NewLimiter(rate.Limit(0.278), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		pageSize:    cfg.PageSize,
		rateLimiter: limiter,
		logger:      logger,
	}
}

// Name reports the source tag used in lookup results.
func (c *Client) Name() domain.Source {
	return domain.SourceUSDA
}

// SearchFoods searches for foods in the USDA database
func (c *Client) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/foods/search", c.baseURL)
	params := url.Values{}
	params.Add("query", query)
	params.Add("api_key", c.apiKey)
	params.Add("pageSize", strconv.Itoa(c.pageSize))

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("USDA returned non-200 status",
			zap.Int("status", resp.StatusCode),
			zap.String("query", query))
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var searchResp domain.USDASearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrSourceUnavailable, err)
	}

	return &searchResp, nil
}

// CaloriesPerServing searches USDA and extracts the energy value from the
// first returned food.
func (c *Client) CaloriesPerServing(ctx context.Context, query string) (float64, error) {
	if query == "" {
		return 0, domain.ErrInvalidQuery
	}

	searchResp, err := c.SearchFoods(ctx, query)
	if err != nil {
		return 0, err
	}

	if len(searchResp.Foods) == 0 {
		c.logger.Debug("USDA had no foods for query", zap.String("query", query))
		return 0, domain.ErrNoNutritionData
	}

	kcal, ok := EnergyKcal(searchResp.Foods[0].Nutrients)
	if !ok {
		c.logger.Debug("USDA food had no energy nutrient",
			zap.String("query", query),
			zap.String("description", searchResp.Foods[0].Description))
		return 0, domain.ErrNoNutritionData
	}

	return kcal, nil
}
