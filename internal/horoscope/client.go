package horoscope

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	horoscopePath = "horoscope"

	// MissingFieldText stands in when the provider answers without a horoscope.
	MissingFieldText = "No fortune available today."
)

type dailyResponse struct {
	Horoscope *string `json:"horoscope"`
}

// Client fetches daily sun-sign horoscopes from the RapidAPI provider.
type Client struct {
	cfg        Config
	HTTPClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:        cfg,
		HTTPClient: &http.Client{Timeout: timeout},
		log:        logger.Named("horoscope"),
	}
}

func (c *Client) HasCredential() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

func (c *Client) buildURL(sign string) string {
	query := url.Values{}
	query.Set("day", "today")
	query.Set("sunsign", sign)
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + horoscopePath + "?" + query.Encode()
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
	if parsed, err := url.Parse(c.cfg.BaseURL); err == nil && parsed.Host != "" {
		req.Header.Set("x-rapidapi-host", parsed.Host)
	}
}

// FetchToday returns today's horoscope text for sign. Any non-200 answer is an
// error so the caller can skip the sign.
func (c *Client) FetchToday(ctx context.Context, sign string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(sign), nil)
	if err != nil {
		return "", fmt.Errorf("build horoscope request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("horoscope request for %s: %w", sign, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read horoscope response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("horoscope provider returned non-200 status",
			zap.String("sign", sign),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body_preview", truncate(string(body), 200)),
		)
		return "", fmt.Errorf("horoscope provider error [status=%d] for %s", resp.StatusCode, sign)
	}

	var payload dailyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("horoscope unmarshal failed for %s: %w", sign, err)
	}
	if payload.Horoscope == nil {
		return MissingFieldText, nil
	}
	return *payload.Horoscope, nil
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit] + "..."
}
