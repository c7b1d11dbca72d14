package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-assistant/internal/models"
	"catalog-assistant/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	pageSize        = 250
	defaultMaxPages = 10
	defaultTimeout  = 30 * time.Second
)

var ErrMissingCredentials = errors.New("missing Shopify credentials")

// APIError is returned for non-2xx responses from the Admin API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("shopify API returned status %d: %s", e.StatusCode, body)
}

// FetchResult is the success/products/error envelope exposed to API clients.
type FetchResult struct {
	Success  bool                `json:"success"`
	Products []models.RawProduct `json:"products,omitempty"`
	Error    string              `json:"error,omitempty"`
}

type productsPage struct {
	Products []json.RawMessage `json:"products"`
}

// Client reads the product list from the Shopify Admin REST API.
type Client struct {
	baseURL  string
	token    string
	timeout  time.Duration
	maxPages int
	logger   *zap.Logger
}

func NewClient(cfg *config.ShopifyConfig, logger *zap.Logger) *Client {
	c := &Client{
		token:    cfg.AccessToken,
		timeout:  cfg.Timeout,
		maxPages: cfg.MaxPages,
		logger:   logger,
	}
	if cfg.StoreName != "" {
		c.baseURL = fmt.Sprintf("https://%s.myshopify.com/admin/api/%s", cfg.StoreName, cfg.APIVersion)
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxPages <= 0 {
		c.maxPages = defaultMaxPages
	}
	return c
}

// WithBaseURL points the client at another API root, e.g. a test server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// FetchProducts returns every product, following rel="next" pagination up to
// the configured page limit.
func (c *Client) FetchProducts(ctx context.Context) ([]models.RawProduct, error) {
	raw, err := c.FetchRawProducts(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]models.RawProduct, len(raw))
	for i, item := range raw {
		_ = json.Unmarshal(item, &products[i])
	}
	return products, nil
}

// FetchRawProducts returns the product objects exactly as the API sent them.
func (c *Client) FetchRawProducts(ctx context.Context) ([]json.RawMessage, error) {
	if c.baseURL == "" || c.token == "" {
		return nil, ErrMissingCredentials
	}

	var products []json.RawMessage
	url := fmt.Sprintf("%s/products.json?limit=%d", c.baseURL, pageSize)
	for page := 1; url != "" && page <= c.maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, link, err := c.get(url)
		if err != nil {
			return nil, err
		}

		var resp productsPage
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to decode products page %d: %w", page, err)
		}
		products = append(products, resp.Products...)

		c.logger.Debug("Fetched products page",
			zap.Int("page", page),
			zap.Int("count", len(resp.Products)),
		)
		url = nextPageURL(link)
	}

	if url != "" {
		c.logger.Warn("Product pagination stopped at page limit", zap.Int("max_pages", c.maxPages))
	}
	return products, nil
}

// Fetch wraps FetchProducts in the success/error envelope.
func (c *Client) Fetch(ctx context.Context) FetchResult {
	products, err := c.FetchProducts(ctx)
	if err != nil {
		return FetchResult{Success: false, Error: err.Error()}
	}
	return FetchResult{Success: true, Products: products}
}

func (c *Client) get(url string) ([]byte, string, error) {
	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)

	agent := fiber.Get(url).
		Set("X-Shopify-Access-Token", c.token).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		Timeout(c.timeout)
	agent.SetResponse(resp)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, "", fmt.Errorf("request to storefront failed: %w", errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, "", &APIError{StatusCode: code, Body: string(body)}
	}
	// body aliases resp, which is released on return
	return append([]byte(nil), body...), string(resp.Header.Peek(fiber.HeaderLink)), nil
}

// nextPageURL extracts the rel="next" target from a Link header.
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		target := strings.TrimSpace(segments[0])
		for _, param := range segments[1:] {
			if strings.TrimSpace(param) == `rel="next"` && strings.HasPrefix(target, "<") && strings.HasSuffix(target, ">") {
				return target[1 : len(target)-1]
			}
		}
	}
	return ""
}
