// Package extractor talks to the third-party video extraction API.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/utils"
)

const maxBodySize = 4 << 20 // 4MB

// Client performs one GET per lookup. No retry; no timeout of its own.
type Client struct {
	endpoint string
	http     *http.Client
	log      logger.Logger
}

// NewClient creates an extraction API client. A nil httpClient gets the
// shared upstream client.
func NewClient(endpoint string, httpClient *http.Client, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = utils.NewHTTPClient(10 * time.Second)
	}
	return &Client{
		endpoint: endpoint,
		http:     httpClient,
		log:      log.Named("extractor"),
	}
}

// Fetch looks up videoURL. Every failure is a *LookupError.
func (c *Client) Fetch(ctx context.Context, videoURL string) (*Result, error) {
	start := time.Now()
	res, err := c.fetch(ctx, videoURL)
	if err != nil {
		c.log.Warn("lookup failed",
			logger.String("url", videoURL),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err))
		return nil, err
	}
	c.log.Debug("lookup ok",
		logger.String("url", videoURL),
		logger.Int("medias", len(res.Medias)),
		logger.Duration("elapsed", time.Since(start)))
	return res, nil
}

func (c *Client) fetch(ctx context.Context, videoURL string) (*Result, error) {
	target, err := c.requestURL(videoURL)
	if err != nil {
		return nil, lookupErr("invalid endpoint", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, lookupErr("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, lookupErr("transport error", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, lookupErr(fmt.Sprintf("http status %d", resp.StatusCode), nil)
	}

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&env); err != nil {
		return nil, lookupErr("undecodable body", err)
	}
	if !truthy(env.Status) {
		return nil, &LookupError{Reason: "status is false", Upstream: env.Message}
	}

	res, err := validate(env.Result)
	if err != nil {
		return nil, lookupErr("schema violation", err)
	}
	return res, nil
}

func (c *Client) requestURL(videoURL string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("url", videoURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
