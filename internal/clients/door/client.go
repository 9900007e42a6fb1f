// Package door talks to the physical door controller. The controller
// exposes a single command: open the lock for an area.
package door

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/facegate/facegate/pkg/config"
)

const defaultRetryWaitMax = 5 * time.Second

type ClientInterface interface {
	Open(ctx context.Context, areaID string) error
}

type Client struct {
	client *http.Client
	url    string
}

var _ ClientInterface = (*Client)(nil)

func NewClient(cfg config.Config) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Door.RetryAttempts
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Door.Timeout

	retryClient.Logger = nil

	return &Client{
		client: retryClient.StandardClient(),
		url:    cfg.Door.ControllerURL,
	}
}

type openRequest struct {
	AreaID string `json:"area_id"`
}

// Open commands the controller to release the lock for areaID. Called
// only after a permit verdict; the controller performs no authorization
// of its own.
func (c *Client) Open(ctx context.Context, areaID string) error {
	body, err := json.Marshal(openRequest{AreaID: areaID})
	if err != nil {
		return fmt.Errorf("marshal open command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/open", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build open request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send open command: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("door controller returned status %d", resp.StatusCode)
	}

	return nil
}
