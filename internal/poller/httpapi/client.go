// internal/poller/httpapi/client.go
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/tamzrod/ledbridge/internal/frame"
)

// maxBody caps a collaborator response. Both payloads are tiny.
const maxBody = 1 << 20

// Client implements poller.VisibilitySource and poller.TriggerSource
// against the map server's JSON endpoints.
// This adapter is transport-only: it fetches and decodes, nothing more.
type Client struct {
	http          *http.Client
	visibilityURL string
	triggerURL    string
}

// Config is minimal transport config.
type Config struct {
	VisibilityURL string
	TriggerURL    string
	Timeout       time.Duration
}

// VisibleResponse is GET <visibility-url>.
type VisibleResponse struct {
	MarkerNames []string `json:"marker_names"`
}

// TriggerResponse is GET <trigger-url>. MarkerNumber and ColorRGB are
// informational; the frame in TriggerData is authoritative.
type TriggerResponse struct {
	HasTrigger   bool  `json:"has_trigger"`
	TriggerData  []int `json:"trigger_data"`
	MarkerNumber int   `json:"marker_number"`
	ColorRGB     []int `json:"color_rgb"`
}

// New creates a client. No request is made.
func New(cfg Config) (*Client, error) {
	if cfg.VisibilityURL == "" || cfg.TriggerURL == "" {
		return nil, errors.New("httpapi: visibility and trigger urls required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = cfg.Timeout

	return &Client{
		http:          hc,
		visibilityURL: cfg.VisibilityURL,
		triggerURL:    cfg.TriggerURL,
	}, nil
}

// ---- poller.VisibilitySource ----

// VisibleMarkers returns the indices parsed from marker names.
// Names without a "(<digits>)" suffix are ignored.
func (c *Client) VisibleMarkers(ctx context.Context) ([]int, error) {
	var resp VisibleResponse
	if err := c.getJSON(ctx, c.visibilityURL, &resp); err != nil {
		return nil, err
	}

	out := make([]int, 0, len(resp.MarkerNames))
	for _, name := range resp.MarkerNames {
		if n, ok := frame.LabelIndex(name); ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// ---- poller.TriggerSource ----

// TakeTrigger reads the one-shot trigger. The server clears it on this read.
func (c *Client) TakeTrigger(ctx context.Context) ([]int, bool, error) {
	var resp TriggerResponse
	if err := c.getJSON(ctx, c.triggerURL, &resp); err != nil {
		return nil, false, err
	}
	if !resp.HasTrigger {
		return nil, false, nil
	}
	return resp.TriggerData, true, nil
}

// ---- internal ----

func (c *Client) getJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("httpapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpapi: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return fmt.Errorf("httpapi: GET %s: status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(dst); err != nil {
		return fmt.Errorf("httpapi: decode %s: %w", url, err)
	}
	return nil
}
