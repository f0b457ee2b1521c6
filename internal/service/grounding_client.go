package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	config "github.com/postpilothq/postpilot/configs"
	"github.com/postpilothq/postpilot/internal/models"
)

// GroundingClient calls the external search-grounded research API. It is
// the production TrendFetcher; the schedule core never talks to it
// directly, only through the trend cache.
type GroundingClient struct {
	cfg    config.Config
	client *http.Client
}

func NewGroundingClient(cfg config.Config) *GroundingClient {
	return &GroundingClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type groundingRequest struct {
	Query string `json:"query"`
}

func (g *GroundingClient) FetchTrends(ctx context.Context, query string) (*models.TrendResult, error) {
	if g.cfg.TrendAPIURL == "" {
		return nil, errors.New("trend research API is not configured")
	}

	body, err := json.Marshal(groundingRequest{Query: query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.TrendAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.TrendAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.TrendAPIKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("trend research API returned status %d", resp.StatusCode)
		slog.Info(err.Error())
		return nil, err
	}

	var result models.TrendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &result, nil
}
