package api

// RATE CARD CLIENT

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"glassquote/internal/models"
	"glassquote/internal/pricing"
)

const pricingRulesPath = "/api/pricing-rules"

type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient talks to the company rate-card service. token is sent as a
// bearer token when set.
func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Accept", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}

	return &Client{
		http:   client,
		logger: logger,
	}
}

// FetchRules downloads the ordered rate card. An empty card is rejected with
// pricing.ErrEmptyRuleSet.
func (c *Client) FetchRules(ctx context.Context) ([]models.PricingRule, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(pricingRulesPath)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode())
	}

	var rules []models.PricingRule
	if err := json.Unmarshal(resp.Body(), &rules); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(rules) == 0 {
		return nil, pricing.ErrEmptyRuleSet
	}

	c.logger.Info("Rate card fetched",
		zap.Int("rules", len(rules)),
		zap.Duration("took", resp.Time()))
	return rules, nil
}
