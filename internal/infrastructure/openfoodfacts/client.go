package openfoodfacts

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
	BaseURL   string
	UserAgent string
	PageSize  int
	Timeout   time.Duration
}

// Client queries the OpenFoodFacts legacy search endpoint. OpenFoodFacts
// requires no API key but asks for a descriptive User-Agent.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	pageSize    int
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new OpenFoodFacts client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	// The pipeline's fixed inter-request delay is the primary throttle;
	// this limiter only backstops callers that bypass the pipeline.
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		pageSize:    cfg.PageSize,
		rateLimiter: limiter,
		logger:      logger,
	}
}

// Name reports the source tag used in lookup results.
func (c *Client) Name() domain.Source {
	return domain.SourceOpenFoodFacts
}

// Search runs a free-text product search and returns the raw response.
func (c *Client) Search(ctx context.Context, query string) (*domain.OFFSearchResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/cgi/search.pl", c.baseURL)
	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("json", "1")
	params.Add("page_size", strconv.Itoa(c.pageSize))
	params.Add("fields", "nutriments") // only the energy fields are needed

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
		c.logger.Warn("OpenFoodFacts returned non-200 status",
			zap.Int("status", resp.StatusCode),
			zap.String("query", query))
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var searchResp domain.OFFSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrSourceUnavailable, err)
	}

	return &searchResp, nil
}

// CaloriesPerServing returns the first usable kcal value among the search
// hits, preferring the per-serving field over per-100g within each hit.
// Zero or absent energy fields are not usable.
func (c *Client) CaloriesPerServing(ctx context.Context, query string) (float64, error) {
	if query == "" {
		return 0, domain.ErrInvalidQuery
	}

	searchResp, err := c.Search(ctx, query)
	if err != nil {
		return 0, err
	}

	for _, prod := range searchResp.Products {
		if kcal := prod.Nutriments.EnergyKcalServing; kcal > 0 {
			return float64(kcal), nil
		}
		if kcal := prod.Nutriments.EnergyKcal100g; kcal > 0 {
			return float64(kcal), nil
		}
	}

	c.logger.Debug("OpenFoodFacts had no usable energy value",
		zap.String("query", query),
		zap.Int("products", len(searchResp.Products)))
	return 0, domain.ErrNoNutritionData
}
